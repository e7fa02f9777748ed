package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves the category reference table.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=255"`
	Color       string `json:"color" binding:"omitempty,max=7"`
	Icon        string `json:"icon" binding:"max=64"`
	IsActive    *bool  `json:"isActive"`
}

// ---------- list ----------

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	query := h.DB.Model(&models.Category{})

	if isActive := c.Query("isActive"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching categories")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"count": len(categories),
		"data":  categories,
	})
}

// ---------- read ----------

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, ok := h.findByID(c)
	if !ok {
		return
	}
	util.Success(c, http.StatusOK, util.Response{
		"data": category,
	})
}

// ---------- create ----------

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide a category name", err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	if err := util.ValidateHexColor(color); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if taken, err := h.nameTaken(req.Name, 0); err != nil {
		util.Error(c, http.StatusInternalServerError, "Error creating category")
		return
	} else if taken {
		util.Error(c, http.StatusBadRequest, "Category name already exists")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		Icon:        req.Icon,
		IsActive:    isActive,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusBadRequest, "Error creating category")
		return
	}

	util.Success(c, http.StatusCreated, util.Response{
		"data": category,
	})
}

// ---------- update ----------

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, ok := h.findByID(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationError(c, "Please provide a category name", err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	if req.Color != "" {
		if err := util.ValidateHexColor(req.Color); err != nil {
			util.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		category.Color = req.Color
	}

	if taken, err := h.nameTaken(req.Name, category.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating category")
		return
	} else if taken {
		util.Error(c, http.StatusBadRequest, "Category name already exists")
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Icon = req.Icon
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.DB.Save(category).Error; err != nil {
		util.Error(c, http.StatusBadRequest, "Error updating category")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"data": category,
	})
}

// ---------- delete ----------

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, ok := h.findByID(c)
	if !ok {
		return
	}

	// transactions keep their category label; nothing cascades
	if err := h.DB.Delete(category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error deleting category")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"data": gin.H{},
	})
}

// ---------- toggle ----------

func (h *CategoryHandler) ToggleCategory(c *gin.Context) {
	category, ok := h.findByID(c)
	if !ok {
		return
	}

	category.IsActive = !category.IsActive
	if err := h.DB.Model(category).Update("is_active", category.IsActive).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error updating category")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"data": category,
	})
}

func (h *CategoryHandler) findByID(c *gin.Context) (*models.Category, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid category id")
		return nil, false
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Error fetching category")
		}
		return nil, false
	}
	return &category, true
}

// nameTaken reports whether another category already uses the name.
func (h *CategoryHandler) nameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	query := h.DB.Model(&models.Category{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
