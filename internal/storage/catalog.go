package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanifkurn/ventix/internal/models"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

// CatalogStore reads event records. Reads are always fresh: reservation
// attempts must see current counts, so nothing is cached here.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	var event models.Event
	err := conn(ctx, s.db).Preload("Category").Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, ticketing.ErrEventNotFound
		}
		return models.Event{}, err
	}
	return event, nil
}

func (s *CatalogStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := conn(ctx, s.db).Preload("Category").Order("start_time ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
