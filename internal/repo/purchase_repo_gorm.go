package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gin-gorm-shop/internal/domain"
)

type PurchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepo(db *gorm.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// Create 连同 Products 一起插入
func (r *PurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func itemsOrdered(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }

func (r *PurchaseRepo) FindByID(ctx context.Context, id string) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.WithContext(ctx).Preload("Products", itemsOrdered).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) ListActive(ctx context.Context) ([]domain.Purchase, error) {
	ps := []domain.Purchase{}
	err := r.db.WithContext(ctx).
		Preload("Products", itemsOrdered).
		Where("deleted_at IS NULL").
		Order("purchase_date DESC").
		Find(&ps).Error
	return ps, err
}

func (r *PurchaseRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Purchase{}).Where("id = ? AND deleted_at IS NULL", id).Update("deleted_at", at).Error
}

func (r *PurchaseRepo) SoftDeleteItems(ctx context.Context, purchaseID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.PurchaseProduct{}).
		Where("purchase_id = ? AND deleted_at IS NULL", purchaseID).
		Update("deleted_at", at).Error
}
