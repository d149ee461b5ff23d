package handlers

import (
	"time"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	User         models.UserSanitized `json:"user"`
	SessionToken string               `json:"sessionToken"`
}

// Login handles user login. On success a server-side session is created and
// its token set as an HTTP-only cookie (and returned for bearer clients).
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid credentials")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	// ExpiresAt records the user's configured session lifetime; resolution
	// does not check it.
	session := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Duration(user.SessionDurationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&session).Error; err != nil {
		utils.InternalServerError(c, "Failed to create session: "+err.Error())
		return
	}

	tokenString, err := utils.GenerateSessionToken(&user, session.ID, h.Cfg.SessionSecret)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate session token: "+err.Error())
		return
	}
	session.Token = tokenString
	if err := h.DB.Save(&session).Error; err != nil {
		utils.InternalServerError(c, "Failed to store session token: "+err.Error())
		return
	}

	// Session cookie: no max age, cleared when the browser closes.
	c.SetCookie(
		"session_token",
		tokenString,
		0,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Login successful", LoginResponse{
		User:         user.Sanitize(),
		SessionToken: tokenString,
	})
}

// Logout handles user logout by revoking the server-side session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, exists := c.Get("sessionID")
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var session models.Session
	if err := h.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Already gone; logout is still a success.
			utils.Success(c, "Logged out successfully", nil)
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	session.IsRevoked = true
	if err := h.DB.Save(&session).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke session: "+err.Error())
		return
	}

	// Clear the session cookie
	c.SetCookie(
		"session_token",
		"",
		-1,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Logged out successfully", nil)
}

// ChangePasswordRequest represents the request body for changing the
// caller's password.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=4"`
}

// ChangePassword rehashes and persists the caller's password and clears the
// first-login flag.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}
	user.IsFirstLogin = false

	if err := h.DB.Save(user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update password: "+err.Error())
		return
	}

	utils.Success(c, "Password changed successfully", nil)
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}
