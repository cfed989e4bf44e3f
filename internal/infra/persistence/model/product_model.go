package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. OwnerID references users.id.
type ProductModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"type:text;not null"`
	ImageURL    string          `gorm:"column:image_url;type:text;not null"`
	OwnerID     uint            `gorm:"not null;index:idx_products_owner_id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
