package test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// FixtureDate is the order date used by every fixture.
var FixtureDate = time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)

// ComposedOrderFixture returns an order of two mugs owned by ownerID.
func ComposedOrderFixture(orderID, ownerID int64) *model.ComposedOrder {
	return &model.ComposedOrder{
		Order: model.Order{
			ID:     orderID,
			UserID: ownerID,
			Date:   FixtureDate,
			Total:  decimal.RequireFromString("29.98"),
		},
		Owner: &model.OwnerSummary{
			ID:         ownerID,
			Username:   "owner",
			Name:       "Owner",
			Email:      "owner@example.com",
			Address:    "Main St 1",
			City:       "Bilbao",
			PostalCode: "48001",
		},
		Lines: []model.ComposedLine{
			{
				OrderLine: model.OrderLine{ID: 1, OrderID: orderID, ProductID: 7, Color: "black", Quantity: 2},
				Product:   &model.ProductSummary{ID: 7, Name: "Mug", Price: decimal.RequireFromString("14.99"), Image: "mug.png"},
			},
		},
	}
}

// UserFixture returns a user with a random username and the given role.
func UserFixture(id int64, role model.Role) *model.User {
	name := RandomASCIIString(6, 12)
	return &model.User{
		ID:           id,
		Username:     name,
		PasswordHash: "hash:secret",
		Role:         role,
		Name:         name,
		Email:        name + "@example.com",
	}
}
