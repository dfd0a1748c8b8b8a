package handlers

import (
	"net/http"
	"strconv"
	"time"

	"timebank/config"
	"timebank/database"
	"timebank/middleware"
	"timebank/models"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	if len(req.NewPassword) < 5 {
		writeError(w, http.StatusBadRequest, "Password must be at least 5 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	// Regenerate token with updated user info
	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var invite models.Invite
	if err := database.GetDB().Where("code = ?", req.Code).First(&invite).Error; err != nil {
		writeError(w, http.StatusBadRequest, "Invalid invite code")
		return
	}

	if !invite.IsValid() {
		writeError(w, http.StatusBadRequest, "Invite has expired or already been used")
		return
	}

	if len(req.Username) < 3 {
		writeError(w, http.StatusBadRequest, "Username must be at least 3 characters")
		return
	}

	if len(req.Password) < 5 {
		writeError(w, http.StatusBadRequest, "Password must be at least 5 characters")
		return
	}

	// Check if username already exists
	var existingUser models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := models.User{
		Username:     req.Username,
		FullName:     invite.FullName,
		PasswordHash: string(hashedPassword),
		Role:         invite.Role,
		WorkSchedule: invite.WorkSchedule,
		// User set their own password during registration
		MustChangePassword: false,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// Mark invite as used
	invite.Used = true
	database.GetDB().Save(&invite)

	// Generate token and log user in
	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.setTokenCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanCreateInvites() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var invites []models.Invite
	database.GetDB().Where("created_by = ?", user.ID).Order("created_at desc").Find(&invites)

	writeJSON(w, http.StatusOK, invites)
}

func (h *AuthHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanCreateInvites() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req struct {
		FullName     string `json:"full_name"`
		Role         string `json:"role"`
		WorkSchedule string `json:"work_schedule"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var role models.Role
	switch req.Role {
	case "EMPLOYEE":
		role = models.RoleEmployee
	case "HR":
		role = models.RoleHR
	default:
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	schedule, ok := models.ParseWorkSchedule(req.WorkSchedule)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid work schedule")
		return
	}

	invite := models.Invite{
		Code:         models.GenerateInviteCode(),
		FullName:     req.FullName,
		Role:         role,
		WorkSchedule: schedule,
		CreatedBy:    user.ID,
		ExpiresAt:    time.Now().Add(h.config.InviteExpiration),
	}

	if err := database.GetDB().Create(&invite).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create invite")
		return
	}

	writeJSON(w, http.StatusCreated, invite)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	database.GetDB().Order("username asc").Find(&users)
	writeJSON(w, http.StatusOK, users)
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID           uint   `json:"id"`
		FullName     string `json:"full_name"`
		Role         string `json:"role"`
		WorkSchedule string `json:"work_schedule"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var target models.User
	if err := database.GetDB().First(&target, req.ID).Error; err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if req.FullName != "" {
		target.FullName = req.FullName
	}
	if req.Role != "" {
		switch models.Role(req.Role) {
		case models.RoleAdmin, models.RoleHR, models.RoleEmployee:
			target.Role = models.Role(req.Role)
		default:
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
	}
	if req.WorkSchedule != "" {
		schedule, ok := models.ParseWorkSchedule(req.WorkSchedule)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid work schedule")
			return
		}
		target.WorkSchedule = schedule
	}

	if err := database.GetDB().Save(&target).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, target)
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if uint(id) == user.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	var target models.User
	if err := database.GetDB().First(&target, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := database.GetDB().Delete(&target).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
