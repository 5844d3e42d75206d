package domain

import "time"

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:128;not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string     `gorm:"column:password;size:100;not null" json:"-"`
	Phone        *string    `gorm:"size:32" json:"phone,omitempty"`
	Addresses    []Address  `gorm:"foreignKey:UserID" json:"addresses"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"deletedAt"`
}

func (User) TableName() string { return "users" }

// Deleted 软删标记
func (u *User) Deleted() bool { return u.DeletedAt != nil }

type Address struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Street       string     `gorm:"size:191;not null" json:"street"`
	StreetNumber int        `gorm:"not null" json:"streetNumber"`
	City         string     `gorm:"size:128;not null" json:"city"`
	State        string     `gorm:"size:64;not null" json:"state"`
	Country      string     `gorm:"size:64;not null" json:"country"`
	ZipCode      string     `gorm:"size:16;not null" json:"zipCode"`
	UserID       string     `gorm:"size:36;index;not null" json:"userId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"deletedAt"`
}

func (Address) TableName() string { return "addresses" }
