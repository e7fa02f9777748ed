package handler

import (
	"net/http"
	"strconv"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler serves the request audit trail to administrators.
type AuditHandler struct {
	DB *gorm.DB
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{DB: db}
}

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
)

// ListAuditLogs returns the audit trail, newest first, paginated via page and
// pageSize with an optional method filter.
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	switch {
	case pageSize > maxAuditPageSize:
		pageSize = maxAuditPageSize
	case pageSize <= 0:
		pageSize = defaultAuditPageSize
	}

	query := h.DB.Model(&models.AuditLog{})
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching audit logs")
		return
	}

	var logs []models.AuditLog
	if err := query.
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Error fetching audit logs")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"count":    len(logs),
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
		"data":     logs,
	})
}
