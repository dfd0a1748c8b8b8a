package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"timebank/config"
	"timebank/database"
	"timebank/middleware"
	"timebank/models"

	"gorm.io/gorm"
)

type OvertimeHandler struct {
	config *config.Config
}

func NewOvertimeHandler(cfg *config.Config) *OvertimeHandler {
	return &OvertimeHandler{config: cfg}
}

// applyPeriodFilter narrows a query to a month and/or year of entry dates.
func applyPeriodFilter(query *gorm.DB, month, year int) *gorm.DB {
	if month > 0 && year > 0 {
		startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		endDate := startDate.AddDate(0, 1, 0)
		return query.Where("overtime_entries.date >= ? AND overtime_entries.date < ?", startDate, endDate)
	} else if month > 0 {
		return query.Where("EXTRACT(MONTH FROM overtime_entries.date) = ?", month)
	} else if year > 0 {
		startDate := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		endDate := startDate.AddDate(1, 0, 0)
		return query.Where("overtime_entries.date >= ? AND overtime_entries.date < ?", startDate, endDate)
	}
	return query
}

func parsePeriod(r *http.Request) (month, year int) {
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y >= 2000 && y <= 2100 {
		year = y
	}
	return month, year
}

// ListEntries returns the caller's overtime entries; admin and HR see
// everyone's. Supports month/year and used/unused filters.
func (h *OvertimeHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	db := database.GetDB()
	query := db.Preload("User")

	if !user.CanViewAllEntries() {
		query = query.Where("user_id = ?", user.ID)
	} else if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		if uid, err := strconv.ParseUint(userIDStr, 10, 32); err == nil && uid > 0 {
			query = query.Where("user_id = ?", uid)
		}
	}

	if usedStr := r.URL.Query().Get("is_used"); usedStr != "" {
		query = query.Where("is_used = ?", usedStr == "true")
	}

	month, year := parsePeriod(r)
	query = applyPeriodFilter(query, month, year)

	var entries []models.OvertimeEntry
	query.Order("overtime_entries.date desc").Limit(100).Find(&entries)

	totalHours := 0
	remainingHours := 0
	for _, entry := range entries {
		totalHours += entry.Hours
		remainingHours += entry.RemainingHours
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries":         entries,
		"total_hours":     totalHours,
		"remaining_hours": remainingHours,
	})
}

func (h *OvertimeHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req struct {
		Date        string `json:"date"`
		Hours       int    `json:"hours"`
		Description string `json:"description"`
		UserID      uint   `json:"user_id"`
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

	if req.Hours < 1 || req.Hours > 24 {
		writeError(w, http.StatusBadRequest, "Hours must be between 1 and 24")
		return
	}

	targetUserID := user.ID
	if req.UserID != 0 && user.IsAdmin() {
		targetUserID = req.UserID
	}

	if !user.CanManageOvertimeFor(targetUserID) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	entry := models.OvertimeEntry{
		UserID:      targetUserID,
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	}

	if err := database.GetDB().Create(&entry).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *OvertimeHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req struct {
		ID          uint   `json:"id"`
		Date        string `json:"date"`
		Hours       int    `json:"hours"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var entry models.OvertimeEntry
	if err := database.GetDB().First(&entry, req.ID).Error; err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	if !user.CanManageOvertimeFor(entry.UserID) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	// Once a day off has consumed hours from the entry, links reference its
	// history and the balance can no longer be rewritten.
	if entry.RemainingHours != entry.Hours {
		writeError(w, http.StatusConflict, "Entry has been partially consumed and can no longer be edited")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	if req.Hours < 1 || req.Hours > 24 {
		writeError(w, http.StatusBadRequest, "Hours must be between 1 and 24")
		return
	}

	entry.Date = date
	entry.Hours = req.Hours
	entry.RemainingHours = req.Hours
	entry.Description = req.Description

	if err := database.GetDB().Save(&entry).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *OvertimeHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var entry models.OvertimeEntry
	if err := database.GetDB().First(&entry, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	if !user.CanManageOvertimeFor(entry.UserID) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if entry.RemainingHours != entry.Hours {
		writeError(w, http.StatusConflict, "Entry has been partially consumed and can no longer be deleted")
		return
	}

	if err := database.GetDB().Delete(&entry).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *OvertimeHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanExport() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		writeError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, 0)

	var entries []models.OvertimeEntry
	database.GetDB().Preload("User").
		Where("overtime_entries.date >= ? AND overtime_entries.date < ?", startDate, endDate).
		Order("overtime_entries.date asc, overtime_entries.user_id asc").
		Find(&entries)

	filename := fmt.Sprintf("overtime_%d_%02d.csv", year, month)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Employee", "Date", "Hours", "Remaining", "Used", "Description"})

	for _, entry := range entries {
		writer.Write([]string{
			entry.User.DisplayName(),
			entry.Date.Format("2006-01-02"),
			strconv.Itoa(entry.Hours),
			strconv.Itoa(entry.RemainingHours),
			strconv.FormatBool(entry.IsUsed),
			entry.Description,
		})
	}
}
