package model

import "github.com/shopspring/decimal"

// Product is a catalog entry referenced by order lines.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Image string
}
