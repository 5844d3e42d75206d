package domain

import "time"

type Purchase struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	UserID       string            `gorm:"size:36;index;not null" json:"userId"`
	PurchaseDate time.Time         `gorm:"column:purchase_date;not null" json:"purchaseDate"`
	Total        float64           `gorm:"type:decimal(12,2);not null" json:"total"`
	Products     []PurchaseProduct `gorm:"foreignKey:PurchaseID" json:"products"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	DeletedAt    *time.Time        `gorm:"index" json:"deletedAt"`
}

func (Purchase) TableName() string { return "purchases" }

func (p *Purchase) Deleted() bool { return p.DeletedAt != nil }

// PurchaseProduct 订单行：商品 + 数量，价格在下单时已计入 Purchase.Total
type PurchaseProduct struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	ProductID  string     `gorm:"size:36;index;not null" json:"productId"`
	Quantity   int        `gorm:"not null" json:"quantity"`
	PurchaseID string     `gorm:"size:36;index;not null" json:"purchaseId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `gorm:"index" json:"deletedAt"`
}

func (PurchaseProduct) TableName() string { return "purchase_products" }

// Models 迁移用的全部模型
func Models() []any {
	return []any{&User{}, &Address{}, &Product{}, &Purchase{}, &PurchaseProduct{}}
}
