package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an owner-scoped catalogue record.
type Product struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	OwnerID     uint // Always the authenticated creator, never client input.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFields are the client-mutable product attributes.
type ProductFields struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
}

// NewProduct builds a product owned by ownerID.
func NewProduct(fields ProductFields, ownerID uint) *Product {
	return &Product{
		Name:        fields.Name,
		Price:       fields.Price,
		Description: fields.Description,
		ImageURL:    fields.ImageURL,
		OwnerID:     ownerID,
	}
}

// Apply overwrites all mutable fields. OwnerID is left untouched.
func (p *Product) Apply(fields ProductFields) {
	p.Name = fields.Name
	p.Price = fields.Price
	p.Description = fields.Description
	p.ImageURL = fields.ImageURL
}

// IsOwnedBy reports whether userID created the product.
func (p *Product) IsOwnedBy(userID uint) bool {
	return p.OwnerID == userID
}
