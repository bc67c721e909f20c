package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase is the settlement aggregate. It only exists in durable form:
// the reservation coordinator assigns the id and timestamp at commit time,
// after the inventory decrements have been applied. Cancellation removes
// the whole aggregate, so there is no soft delete here.
type Purchase struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	GuestName   string          `gorm:"not null" json:"guest_name"`
	GuestEmail  string          `gorm:"not null" json:"guest_email"`
	PurchasedAt time.Time       `gorm:"not null;index" json:"purchased_at"`
	TotalCost   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_cost"`
	LineItems   []LineItem      `gorm:"constraint:OnDelete:CASCADE" json:"line_items"`
}

func (purchase *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	return
}
