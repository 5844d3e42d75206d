package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gin-gorm-shop/internal/domain"
)

type AddressRepo struct{ db *gorm.DB }

func NewAddressRepo(db *gorm.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) Create(ctx context.Context, a *domain.Address) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// UpdateForUser 只更新属于 userID 的地址，返回是否命中
func (r *AddressRepo) UpdateForUser(ctx context.Context, id, userID string, fields map[string]any) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Address{}).Where("id = ? AND user_id = ?", id, userID)
	if len(fields) == 0 {
		var n int64
		err := q.Count(&n).Error
		return n > 0, err
	}
	res := q.Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *AddressRepo) SoftDeleteByUser(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Address{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Update("deleted_at", at).Error
}
