package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanifkurn/ventix/internal/models"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

// LedgerStore mutates event ticket counts. Both operations are single SQL
// statements, so concurrent reservations against the same event serialize
// on the row and can never interleave a stale read with a write.
type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Reserve decrements available_tickets by qty only if at least qty remain.
func (s *LedgerStore) Reserve(ctx context.Context, eventID uuid.UUID, qty int) error {
	res := conn(ctx, s.db).Model(&models.Event{}).
		Where("id = ? AND available_tickets >= ?", eventID, qty).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the event is gone or the count is short; look once to say which.
		var count int64
		if err := conn(ctx, s.db).Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ticketing.ErrEventNotFound
		}
		return ticketing.ErrInsufficientTickets
	}
	return nil
}

// Release puts qty tickets back. Restoration is unconditional; the system
// tracks no capacity ceiling.
func (s *LedgerStore) Release(ctx context.Context, eventID uuid.UUID, qty int) error {
	res := conn(ctx, s.db).Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ticketing.ErrEventNotFound
	}
	return nil
}
