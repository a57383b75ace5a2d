package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

const dateLayout = "2006-01-02"

// OrderRequest is the cart submitted by a client.
type OrderRequest struct {
	Total decimal.Decimal    `json:"total"`
	Date  string             `json:"fecha"`
	Lines []OrderLineRequest `json:"lineas"`

	// Alias accepted from English-speaking clients; ignored when lineas is set.
	LinesAlias []OrderLineRequest `json:"lines"`
}

// OrderLineRequest is one requested line.
type OrderLineRequest struct {
	ProductID int64   `json:"idprod"`
	Quantity  int     `json:"cant"`
	Color     string  `json:"color"`
	Name      *string `json:"nombre"`
}

// Submission converts the request into the domain submission. The date
// accepts either a calendar date or an RFC 3339 timestamp; ok is false
// when it is present but matches neither.
func (r OrderRequest) Submission() (model.OrderSubmission, bool) {
	lines := r.Lines
	if len(lines) == 0 {
		lines = r.LinesAlias
	}
	sub := model.OrderSubmission{Total: r.Total, Lines: make([]model.LineRequest, 0, len(lines))}
	if r.Date != "" {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			if date, err = time.Parse(time.RFC3339, r.Date); err != nil {
				return model.OrderSubmission{}, false
			}
		}
		sub.Date = &date
	}
	for _, l := range lines {
		sub.Lines = append(sub.Lines, model.LineRequest{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Color:     l.Color,
			Name:      l.Name,
		})
	}
	return sub, true
}

// OrderResponse is a composed order: header, owner and lines.
type OrderResponse struct {
	ID     int64               `json:"id"`
	UserID int64               `json:"iduser"`
	Date   string              `json:"fecha"`
	Total  float64             `json:"total"`
	Owner  *OwnerResponse      `json:"user,omitempty"`
	Lines  []OrderLineResponse `json:"lineas"`
}

// OwnerResponse is the owner block attached to an order.
type OwnerResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	Address    string `json:"direccion"`
	City       string `json:"ciudad"`
	PostalCode string `json:"cp"`
}

// OrderLineResponse carries the frozen line data and the live product view.
type OrderLineResponse struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"idprod"`
	Quantity  int              `json:"cant"`
	Color     string           `json:"color"`
	Name      string           `json:"nombre"`
	UnitPrice *float64         `json:"precio,omitempty"`
	Subtotal  *float64         `json:"subtotal,omitempty"`
	Product   *ProductResponse `json:"producto,omitempty"`
}

// ProductResponse is the catalog state of a line product at read time.
type ProductResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
	Image string  `json:"imagen,omitempty"`
}

// NotificationResponse reports the delivery note outcome of a placement.
type NotificationResponse struct {
	Status    string `json:"status"`
	Recipient string `json:"email,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// PlacementResponse is returned by POST /api/orders.
type PlacementResponse struct {
	Order        OrderResponse        `json:"order"`
	Notification NotificationResponse `json:"notification"`
}

// PaginationResponse describes a page of the admin listing.
type PaginationResponse struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// OrderPageResponse is returned by GET /api/orders.
type OrderPageResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

// OrderHeaderResponse is an order without lines.
type OrderHeaderResponse struct {
	ID    int64   `json:"id"`
	Date  string  `json:"fecha"`
	Total float64 `json:"total"`
}

// SummaryResponse aggregates the caller's order history.
type SummaryResponse struct {
	TotalOrders int64                `json:"total_orders"`
	TotalSpent  float64              `json:"total_spent"`
	LastOrder   *OrderHeaderResponse `json:"last_order"`
}

// ResendResponse confirms a delivery note was sent again.
type ResendResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	OrderID int64  `json:"order_id"`
}

// NewOrderResponse maps a composed order.
func NewOrderResponse(o *model.ComposedOrder) OrderResponse {
	resp := OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		Date:   o.Date.Format(dateLayout),
		Total:  o.Total.InexactFloat64(),
		Lines:  make([]OrderLineResponse, 0, len(o.Lines)),
	}
	if o.Owner != nil {
		resp.Owner = &OwnerResponse{
			ID:         o.Owner.ID,
			Username:   o.Owner.Username,
			Name:       o.Owner.Name,
			Email:      o.Owner.Email,
			Address:    o.Owner.Address,
			City:       o.Owner.City,
			PostalCode: o.Owner.PostalCode,
		}
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, newLineResponse(l))
	}
	return resp
}

func newLineResponse(l model.ComposedLine) OrderLineResponse {
	resp := OrderLineResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Color:     l.Color,
		Name:      l.DisplayName(),
	}
	if price, ok := l.UnitPrice(); ok {
		resp.UnitPrice = floatPtr(price)
	}
	if subtotal, ok := l.Subtotal(); ok {
		resp.Subtotal = floatPtr(subtotal)
	}
	if l.Product != nil {
		resp.Product = &ProductResponse{
			ID:    l.Product.ID,
			Name:  l.Product.Name,
			Price: l.Product.Price.InexactFloat64(),
			Image: l.Product.Image,
		}
	}
	return resp
}

// NewOrderList maps a slice of composed orders, never returning nil.
func NewOrderList(orders []model.ComposedOrder) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, NewOrderResponse(&orders[i]))
	}
	return resp
}

// NewPlacementResponse maps a placement.
func NewPlacementResponse(p *model.Placement) PlacementResponse {
	return PlacementResponse{
		Order: NewOrderResponse(p.Order),
		Notification: NotificationResponse{
			Status:    string(p.Notification.Status),
			Recipient: p.Notification.Recipient,
			Warning:   p.Notification.Warning,
		},
	}
}

// NewOrderPageResponse maps a page of orders.
func NewOrderPageResponse(p *model.OrderPage) OrderPageResponse {
	return OrderPageResponse{
		Orders: NewOrderList(p.Orders),
		Pagination: PaginationResponse{
			Total: p.Total,
			Page:  p.Page,
			Pages: p.Pages,
			Limit: p.Limit,
		},
	}
}

// NewSummaryResponse maps an order summary.
func NewSummaryResponse(s *model.OrderSummary) SummaryResponse {
	resp := SummaryResponse{
		TotalOrders: s.TotalOrders,
		TotalSpent:  s.TotalSpent.InexactFloat64(),
	}
	if s.LastOrder != nil {
		resp.LastOrder = &OrderHeaderResponse{
			ID:    s.LastOrder.ID,
			Date:  s.LastOrder.Date.Format(dateLayout),
			Total: s.LastOrder.Total.InexactFloat64(),
		}
	}
	return resp
}

func floatPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}
