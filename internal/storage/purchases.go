package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanifkurn/ventix/internal/models"
	"github.com/hanifkurn/ventix/internal/ticketing"
)

// PurchaseStore persists committed purchase aggregates.
type PurchaseStore struct {
	db *gorm.DB
}

func NewPurchaseStore(db *gorm.DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

func (s *PurchaseStore) Append(ctx context.Context, purchase *models.Purchase) error {
	return conn(ctx, s.db).Create(purchase).Error
}

func (s *PurchaseStore) Get(ctx context.Context, id uuid.UUID) (models.Purchase, error) {
	var purchase models.Purchase
	err := conn(ctx, s.db).Preload("LineItems.Event").Where("id = ?", id).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Purchase{}, ticketing.ErrPurchaseNotFound
		}
		return models.Purchase{}, err
	}
	return purchase, nil
}

func (s *PurchaseStore) List(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := conn(ctx, s.db).Preload("LineItems.Event").Order("purchased_at DESC").Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *PurchaseStore) Remove(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, s.db)
	if err := db.Where("purchase_id = ?", id).Delete(&models.LineItem{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Purchase{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ticketing.ErrPurchaseNotFound
	}
	return nil
}
