package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gin-gorm-shop/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// List 不过滤 deleted_at
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	ps := []domain.Product{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&ps).Error
	return ps, err
}

// 用 ! 做转义符，各方言的字符串字面量里都无需再转义
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

func (r *ProductRepo) SearchByName(ctx context.Context, term string) ([]domain.Product, error) {
	ps := []domain.Product{}
	like := "%" + likeEscaper.Replace(term) + "%"
	err := r.db.WithContext(ctx).
		Where("name LIKE ? ESCAPE '!'", like).
		Order("created_at ASC").
		Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPricesByIDs 只取未软删商品的当前价格
func (r *ProductRepo) FindPricesByIDs(ctx context.Context, ids []string) ([]domain.ProductPrice, error) {
	out := []domain.ProductPrice{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("id", "price").
		Where("id IN ? AND deleted_at IS NULL", ids).
		Scan(&out).Error
	return out, err
}

func (r *ProductRepo) Updates(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 物理删除
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}
