package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalvguti/family-expenses-be/internal/middleware"
	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and token lifecycle endpoints.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthHandler {
	if accessTTL <= 0 {
		accessTTL = util.DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = util.DefaultRefreshTTL
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// safeUser projects a user without password hash or refresh token.
func safeUser(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"username":  u.Username,
		"email":     u.Email,
		"role":      u.Role,
		"isActive":  u.IsActive,
		"lastLogin": u.LastLogin,
		"createdAt": u.CreatedAt,
	}
}

// issueTokens generates both tokens and persists the refresh token on the user
// row, superseding any previous one.
func (h *AuthHandler) issueTokens(user *models.User, extra map[string]interface{}) (string, string, error) {
	accessToken, err := util.GenerateAccessToken(h.JWTSecret, user.ID, user.Role, h.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := util.GenerateRefreshToken(h.JWTSecret, user.ID, h.RefreshTTL)
	if err != nil {
		return "", "", err
	}

	updates := map[string]interface{}{"refresh_token": refreshToken}
	for k, v := range extra {
		updates[k] = v
	}
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		return "", "", err
	}
	user.RefreshToken = refreshToken
	return accessToken, refreshToken, nil
}

// ---------- register ----------

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=member admin"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide all required fields", err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error registering user")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Username or email already exists")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error registering user")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	user := models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error registering user")
		return
	}

	accessToken, refreshToken, err := h.issueTokens(&user, nil)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error registering user")
		return
	}

	util.Success(c, http.StatusCreated, util.Response{
		"message":      "User registered successfully",
		"user":         safeUser(&user),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide username and password", err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error logging in")
		}
		return
	}

	if !user.IsActive {
		util.Error(c, http.StatusForbidden, "Your account has been deactivated")
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	accessToken, refreshToken, err := h.issueTokens(&user, map[string]interface{}{"last_login": now})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error logging in")
		return
	}
	user.LastLogin = &now

	util.Success(c, http.StatusOK, util.Response{
		"message":      "Login successful",
		"user":         safeUser(&user),
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// ---------- logout ----------

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	if err := h.DB.Model(user).Update("refresh_token", "").Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error logging out")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"message": "Logout successful",
	})
}

// ---------- refresh ----------

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Refresh token required", err)
		return
	}

	claims, err := util.ParseToken(h.JWTSecret, req.RefreshToken)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	var user models.User
	if err := h.DB.First(&user, claims.UserID).Error; err != nil {
		util.Error(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// the presented token must match the stored one; logging in elsewhere
	// overwrites it and invalidates this one
	if user.RefreshToken == "" || user.RefreshToken != req.RefreshToken {
		util.Error(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	if !user.IsActive {
		util.Error(c, http.StatusForbidden, "Your account has been deactivated")
		return
	}

	accessToken, err := util.GenerateAccessToken(h.JWTSecret, user.ID, user.Role, h.AccessTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error refreshing token")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"accessToken": accessToken,
	})
}

// ---------- me ----------

func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"user": safeUser(user),
	})
}

// ---------- change password ----------

type updatePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required. Please log in.")
		return
	}

	var req updatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide current and new password", err)
		return
	}

	if !util.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating password")
		return
	}

	if err := h.DB.Model(user).Update("password_hash", hash).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating password")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"message": "Password updated successfully",
	})
}
