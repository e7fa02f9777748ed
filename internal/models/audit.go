package models

import "time"

// AuditLog records authenticated API requests for auditing.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    *uint  `gorm:"index" json:"userId"`
	RequestID string `gorm:"size:36" json:"requestId"`
	Method    string `gorm:"size:16" json:"method"`
	Path      string `gorm:"size:255" json:"path"`
	Status    int    `json:"status"`
	IP        string `gorm:"size:64" json:"ip"`
	UserAgent string `gorm:"size:255" json:"userAgent"`

	CreatedAt time.Time `json:"createdAt"`
}
