package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalvguti/family-expenses-be/internal/middleware"
	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler serves admin-only user management.
type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// ListUsers returns all users in safe projection, ordered by id.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("id ASC").Find(&users).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching users")
		return
	}

	data := make([]gin.H, 0, len(users))
	for i := range users {
		data = append(data, safeUser(&users[i]))
	}

	util.Success(c, http.StatusOK, util.Response{
		"count": len(data),
		"data":  data,
	})
}

// ToggleUser flips the active flag. Users are deactivated rather than
// hard-deleted; a deactivated user fails authentication on the next request.
func (h *UserHandler) ToggleUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching user")
		}
		return
	}

	if current, ok := middleware.CurrentUser(c); ok && current.ID == user.ID {
		util.Error(c, http.StatusBadRequest, "You cannot deactivate your own account")
		return
	}

	user.IsActive = !user.IsActive
	if err := h.DB.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating user")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"data": safeUser(&user),
	})
}
