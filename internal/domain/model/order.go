package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultColor labels a line whose color was left blank by a non-HTTP caller.
const DefaultColor = "Standard"

// Order is the persisted order header.
type Order struct {
	ID     int64
	UserID int64
	Date   time.Time
	Total  decimal.Decimal
}

// OrderLine belongs to exactly one order. Name is the display name frozen at
// creation time; nil means the name is resolved from the catalog on read.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Color     string
	Quantity  int
	Name      *string
}

// ProductSummary is the catalog view joined onto a line at read time.
type ProductSummary struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Image string
}

// OwnerSummary is the part of the owning user shown with an order.
type OwnerSummary struct {
	ID         int64
	Username   string
	Name       string
	Email      string
	Address    string
	City       string
	PostalCode string
}

// ComposedLine is an order line with the current catalog state of its product.
// Product is nil when the product no longer exists.
type ComposedLine struct {
	OrderLine
	Product *ProductSummary
}

// DisplayName prefers the frozen line name over the live catalog name.
func (l ComposedLine) DisplayName() string {
	if l.Name != nil && *l.Name != "" {
		return *l.Name
	}
	if l.Product != nil {
		return l.Product.Name
	}
	return ""
}

// UnitPrice returns the current catalog price of the line product.
func (l ComposedLine) UnitPrice() (decimal.Decimal, bool) {
	if l.Product == nil {
		return decimal.Zero, false
	}
	return l.Product.Price, true
}

// Subtotal is the current unit price times the line quantity.
func (l ComposedLine) Subtotal() (decimal.Decimal, bool) {
	price, ok := l.UnitPrice()
	if !ok {
		return decimal.Zero, false
	}
	return price.Mul(decimal.NewFromInt(int64(l.Quantity))), true
}

// ComposedOrder is the unit returned to callers: header, lines and owner.
type ComposedOrder struct {
	Order
	Lines []ComposedLine
	Owner *OwnerSummary
}

// RecipientEmail returns the owner address or an empty string.
func (o *ComposedOrder) RecipientEmail() string {
	if o == nil || o.Owner == nil {
		return ""
	}
	return o.Owner.Email
}

// OrderSummary aggregates the order history of one user.
type OrderSummary struct {
	TotalOrders int64
	TotalSpent  decimal.Decimal
	LastOrder   *Order
}
