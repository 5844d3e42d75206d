package domain

import "time"

type Product struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:191;index;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Price       float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int        `gorm:"not null;default:0" json:"quantity"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"index" json:"deletedAt"`
}

func (Product) TableName() string { return "products" }

// ProductPrice 下单计价只需要 id + price
type ProductPrice struct {
	ID    string
	Price float64
}
