package models

import "time"

// Role values for User.Role.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:64;not null" json:"name"`
	Username     string `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:member" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`

	LastLogin    *time.Time `json:"lastLogin"`
	RefreshToken string     `gorm:"size:512" json:"-"` // current refresh token; one active session per user

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
