package repo

import (
	"context"

	"gorm.io/gorm"

	"gin-gorm-shop/internal/domain"
)

// Store 聚合各实体仓储，db 可能是连接池也可能是事务句柄
type Store struct {
	db        *gorm.DB
	users     *UserRepo
	addresses *AddressRepo
	products  *ProductRepo
	purchases *PurchaseRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		users:     NewUserRepo(db),
		addresses: NewAddressRepo(db),
		products:  NewProductRepo(db),
		purchases: NewPurchaseRepo(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() domain.UserRepository         { return s.users }
func (s *Store) Addresses() domain.AddressRepository { return s.addresses }
func (s *Store) Products() domain.ProductRepository   { return s.products }
func (s *Store) Purchases() domain.PurchaseRepository { return s.purchases }

// Transaction fn 返回错误或 panic 时整体回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx domain.Gateway) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate 建表/补列
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(domain.Models()...); err != nil {
		return err
	}
	// mysql 默认排序规则大小写不敏感，邮箱唯一约束要按原样区分大小写
	if s.db.Dialector.Name() == "mysql" {
		return s.db.Exec("ALTER TABLE users MODIFY email VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error
	}
	return nil
}
