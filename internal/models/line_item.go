package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem records one event's share of a purchase. The composite key
// means an event can appear at most once per purchase; duplicate basket
// entries are merged before commit. UnitPrice is the price read at
// validation time and never changes after commit, even if the event's
// ticket price does.
type LineItem struct {
	EventID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"event_id"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"purchase_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Event      Event           `json:"event,omitempty"`
}
