package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/core/metrics"
	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/pkg/utils"
)

type LineItemInput struct {
	ProductID string
	Quantity  int
}

type CreatePurchaseInput struct {
	UserID       string
	PurchaseDate time.Time
	Products     []LineItemInput
}

type PurchaseService struct {
	store domain.Gateway
	pub   events.Publisher
	log   *zap.Logger
}

func NewPurchaseService(store domain.Gateway, pub events.Publisher, l *zap.Logger) *PurchaseService {
	if pub == nil {
		pub = events.Nop{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &PurchaseService{store: store, pub: pub, log: l}
}

// CalculateTotal Σ 数量×单价；prices 里没有的商品记 0，结果保留两位小数
func CalculateTotal(items []LineItemInput, prices []domain.ProductPrice) float64 {
	byID := make(map[string]float64, len(prices))
	for _, p := range prices {
		byID[p.ID] = p.Price
	}
	var total float64
	for _, it := range items {
		if price, ok := byID[it.ProductID]; ok {
			total += float64(it.Quantity) * price
		}
	}
	return math.Round(total*100) / 100
}

func distinctProductIDs(items []LineItemInput) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

func validatePurchase(in CreatePurchaseInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return badRequest("userId is required")
	}
	if in.PurchaseDate.IsZero() {
		return badRequest("purchaseDate is required")
	}
	if len(in.Products) == 0 {
		return badRequest("at least one product is required")
	}
	for _, it := range in.Products {
		if strings.TrimSpace(it.ProductID) == "" {
			return badRequest("productId is required")
		}
		if it.Quantity <= 0 {
			return badRequest("quantity must be positive")
		}
	}
	return nil
}

func (s *PurchaseService) Create(ctx context.Context, in CreatePurchaseInput) (*domain.Purchase, error) {
	if err := validatePurchase(in); err != nil {
		return nil, err
	}

	p := &domain.Purchase{
		ID:           utils.NewID(),
		UserID:       in.UserID,
		PurchaseDate: in.PurchaseDate.UTC(),
		Products:     make([]domain.PurchaseProduct, 0, len(in.Products)),
	}
	for _, it := range in.Products {
		p.Products = append(p.Products, domain.PurchaseProduct{
			ID:        utils.NewID(),
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	err := s.store.Transaction(ctx, func(tx domain.Gateway) error {
		owner, err := tx.Users().FindByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return notFound("user with ID %s not found", in.UserID)
		}
		if owner.Deleted() {
			return badRequest("user with ID %s is deleted", in.UserID)
		}
		ids := distinctProductIDs(in.Products)
		prices, err := tx.Products().FindPricesByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load prices: %w", err)
		}
		if len(prices) < len(ids) {
			s.log.Warn("purchase references unknown products", zap.String("purchase", p.ID))
		}
		p.Total = CalculateTotal(in.Products, prices)
		if err := tx.Purchases().Create(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PurchaseAmount.Add(p.Total)
	metrics.PurchaseItems.Observe(float64(len(p.Products)))
	emit(s.pub, events.PurchaseCreated, p.ID, p)
	return p, nil
}

func (s *PurchaseService) FindAll(ctx context.Context) ([]domain.Purchase, error) {
	return s.store.Purchases().ListActive(ctx)
}

func activePurchase(ctx context.Context, gw domain.Gateway, id string) (*domain.Purchase, error) {
	p, err := gw.Purchases().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("purchase with ID %s not found", id)
	}
	if p.Deleted() {
		return nil, badRequest("purchase with ID %s was deleted", id)
	}
	return p, nil
}

func (s *PurchaseService) FindByID(ctx context.Context, id string) (*domain.Purchase, error) {
	return activePurchase(ctx, s.store, id)
}

// Delete 先软删明细再软删订单，同一事务
func (s *PurchaseService) Delete(ctx context.Context, id string) (*domain.Purchase, error) {
	if _, err := activePurchase(ctx, s.store, id); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var out *domain.Purchase
	err := s.store.Transaction(ctx, func(tx domain.Gateway) error {
		if err := tx.Purchases().SoftDeleteItems(ctx, id, now); err != nil {
			return fmt.Errorf("delete purchase items: %w", err)
		}
		if err := tx.Purchases().SoftDelete(ctx, id, now); err != nil {
			return fmt.Errorf("delete purchase: %w", err)
		}
		var err error
		out, err = tx.Purchases().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	emit(s.pub, events.PurchaseDeleted, id, out)
	return out, nil
}
