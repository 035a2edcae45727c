package repository

import (
	"context"
	"errors"

	"labquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindBySession(ctx context.Context, sessionID string) ([]model.CartItem, error)
	FindLine(ctx context.Context, sessionID string, productID uuid.UUID) (*model.CartItem, error)
	Upsert(ctx context.Context, item *model.CartItem) error
	DeleteLine(ctx context.Context, sessionID string, itemID uuid.UUID) error
	ClearSession(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindBySession(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	var items []model.CartItem
	if err := GetDB(ctx, r.db).Preload("Product").
		Where("session_id = ?", sessionID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindLine(ctx context.Context, sessionID string, productID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := GetDB(ctx, r.db).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *cartRepository) DeleteLine(ctx context.Context, sessionID string, itemID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("session_id = ? AND id = ?", sessionID, itemID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepository) ClearSession(ctx context.Context, sessionID string) error {
	return GetDB(ctx, r.db).Where("session_id = ?", sessionID).Delete(&model.CartItem{}).Error
}
