package models

import "time"

// Transaction type discriminator values.
const (
	TypeExpense = "expense"
	TypeEarning = "earning"
)

// Transaction is a single family expense or earning.
// Amounts are stored in cents to avoid float error, e.g. 12.34 = 1234 cents.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	AmountCents int64     `gorm:"not null" json:"-"`
	Category    string    `gorm:"size:64;index;not null" json:"category"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	PaidBy      string    `gorm:"size:64;index;not null" json:"paidBy"`
	Type        string    `gorm:"size:16;index;not null;default:expense" json:"type"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
