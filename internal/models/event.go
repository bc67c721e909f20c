package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Event struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Title            string          `gorm:"not null" json:"title"`
	Description      string          `json:"description"`
	StartTime        time.Time       `gorm:"not null" json:"start_time"`
	TicketPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"ticket_price"`
	AvailableTickets int             `gorm:"not null;check:available_tickets >= 0" json:"available_tickets"`
	CategoryID       uuid.UUID       `gorm:"type:uuid" json:"category_id"`
	Category         Category        `json:"category,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
