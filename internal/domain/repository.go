package domain

import (
	"context"
	"time"
)

// 查询方法找不到记录时返回 (nil, nil)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListActive(ctx context.Context) ([]User, error)
	Updates(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	UpdateForUser(ctx context.Context, id, userID string, fields map[string]any) (bool, error)
	SoftDeleteByUser(ctx context.Context, userID string, at time.Time) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]Product, error)
	SearchByName(ctx context.Context, term string) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindPricesByIDs(ctx context.Context, ids []string) ([]ProductPrice, error)
	Updates(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, p *Purchase) error
	FindByID(ctx context.Context, id string) (*Purchase, error)
	ListActive(ctx context.Context) ([]Purchase, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
	SoftDeleteItems(ctx context.Context, purchaseID string, at time.Time) error
}

// Gateway 持久层入口；Transaction 内的 fn 拿到的是绑定同一事务的 Gateway
type Gateway interface {
	Users() UserRepository
	Addresses() AddressRepository
	Products() ProductRepository
	Purchases() PurchaseRepository
	Transaction(ctx context.Context, fn func(tx Gateway) error) error
}
