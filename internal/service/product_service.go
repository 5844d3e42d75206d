package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gin-gorm-shop/internal/core/cache"
	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/pkg/utils"
)

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// ProductPatch nil 字段不更新
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
}

type ProductService struct {
	store domain.Gateway
	pub   events.Publisher
	log   *zap.Logger
	cache *cache.Cache
	ttl   time.Duration
}

func NewProductService(store domain.Gateway, pub events.Publisher, l *zap.Logger) *ProductService {
	if pub == nil {
		pub = events.Nop{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &ProductService{store: store, pub: pub, log: l}
}

// WithCache 打开 FindByID 的读穿缓存
func (s *ProductService) WithCache(c *cache.Cache, ttl time.Duration) *ProductService {
	s.cache = c
	s.ttl = ttl
	return s
}

func productKey(id string) string { return "product:" + id }

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return badRequest("name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return badRequest("description is required")
	}
	if in.Price <= 0 {
		return badRequest("price must be positive")
	}
	if in.Quantity < 0 {
		return badRequest("quantity must not be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	emit(s.pub, events.ProductCreated, p.ID, p)
	return p, nil
}

func (s *ProductService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.store.Products().List(ctx)
}

func (s *ProductService) Search(ctx context.Context, name string) ([]domain.Product, error) {
	return s.store.Products().SearchByName(ctx, name)
}

func (s *ProductService) load(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("product with ID %s not found", id)
	}
	return p, nil
}

func (s *ProductService) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache == nil {
		return s.load(ctx, id)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, productKey(id), s.ttl, func(ctx context.Context) (*domain.Product, error) {
		return s.load(ctx, id)
	})
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productKey(id)); err != nil {
		s.log.Warn("product cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}

func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, badRequest("name must not be empty")
		}
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, badRequest("description must not be empty")
		}
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, badRequest("price must be positive")
		}
		fields["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, badRequest("quantity must not be negative")
		}
		fields["quantity"] = *patch.Quantity
	}

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.Products().Updates(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx, id)

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	emit(s.pub, events.ProductUpdated, id, p)
	return p, nil
}

// Delete 物理删除，返回删除前的快照
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Products().Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx, id)
	emit(s.pub, events.ProductDeleted, id, p)
	return p, nil
}
