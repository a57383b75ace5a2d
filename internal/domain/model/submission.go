package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSubmission is the raw cart as received from a client.
type OrderSubmission struct {
	Total decimal.Decimal
	Date  *time.Time
	Lines []LineRequest
}

// LineRequest is one requested line of a submission.
type LineRequest struct {
	ProductID int64
	Quantity  int
	Color     string
	Name      *string
}

// OrderDraft is a submission that passed validation and may be persisted.
type OrderDraft struct {
	OwnerID int64
	Date    time.Time
	Total   decimal.Decimal
	Lines   []DraftLine
}

// DraftLine is a validated line ready for insertion.
type DraftLine struct {
	ProductID int64
	Quantity  int
	Color     string
	Name      *string
}

// NewDraftLine builds a draft line, applying the default color when blank.
func NewDraftLine(productID int64, quantity int, color string, name *string) DraftLine {
	if color == "" {
		color = DefaultColor
	}
	return DraftLine{ProductID: productID, Quantity: quantity, Color: color, Name: name}
}
