package handlers

import (
	"net/http"
	"strconv"
	"time"

	"timebank/config"
	"timebank/database"
	"timebank/dayoff"
	"timebank/middleware"
	"timebank/models"

	"gorm.io/gorm"
)

type DayOffHandler struct {
	config  *config.Config
	service *dayoff.Service
}

func NewDayOffHandler(cfg *config.Config, service *dayoff.Service) *DayOffHandler {
	return &DayOffHandler{config: cfg, service: service}
}

// Create books a day off funded by the caller's banked overtime.
func (h *DayOffHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req struct {
		Date   string `json:"date"`
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	created, err := h.service.Create(r.Context(), user, dayoff.CreateRequest{
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		writeDayOffError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns the caller's day offs; admin and HR see everyone's. The
// approved query parameter filters by approval state.
func (h *DayOffHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	db := database.GetDB()
	query := db.Preload("Links")

	if user.CanApproveDayOffs() {
		query = query.Preload("User")
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	if approvedStr := r.URL.Query().Get("approved"); approvedStr != "" {
		query = query.Where("approved = ?", approvedStr == "true")
	}

	var dayOffs []models.DayOff
	query.Order("created_at desc").Limit(100).Find(&dayOffs)

	writeJSON(w, http.StatusOK, dayOffs)
}

func (h *DayOffHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day off ID")
		return
	}

	var dayOff models.DayOff
	if err := database.GetDB().Preload("Links").First(&dayOff, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "Day off not found")
		return
	}

	if dayOff.UserID != user.ID && !user.CanApproveDayOffs() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	writeJSON(w, http.StatusOK, dayOff)
}

func (h *DayOffHandler) Approve(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanApproveDayOffs() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req struct {
		ID       uint `json:"id"`
		Approved bool `json:"approved"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var dayOff models.DayOff
	if err := database.GetDB().First(&dayOff, req.ID).Error; err != nil {
		writeError(w, http.StatusNotFound, "Day off not found")
		return
	}

	dayOff.Approved = req.Approved
	if err := database.GetDB().Save(&dayOff).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update day off")
		return
	}

	writeJSON(w, http.StatusOK, dayOff)
}

// Delete removes a day off and its funding links. Consumed overtime hours are
// not restored: once requested, the hours stay spent even if the day off is
// cancelled.
func (h *DayOffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day off ID")
		return
	}

	var dayOff models.DayOff
	if err := database.GetDB().First(&dayOff, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "Day off not found")
		return
	}

	if dayOff.UserID != user.ID && !user.IsAdmin() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_off_id = ?", dayOff.ID).Delete(&models.OvertimeDayOffLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dayOff).Error
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete day off")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
