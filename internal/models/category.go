package models

import "time"

// DefaultCategoryColor is applied when a category is created without a color.
const DefaultCategoryColor = "#3498db"

// Category represents a spending/earning category used to tag transactions.
// Transactions reference categories by name only, so deleting a category never
// cascades into transaction rows.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Color       string `gorm:"size:7;not null;default:#3498db" json:"color"`
	Icon        string `gorm:"size:64" json:"icon"` // free text, emoji allowed
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
