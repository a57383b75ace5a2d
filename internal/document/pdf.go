// Package document renders the delivery note attached to order notifications.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/pkg/format"
)

const (
	Title = "Delivery note"

	pageMargin = 15.0
	rowHeight  = 7.0
	labelWidth = 35.0
)

// ErrNoOrder is returned when Build is called without an order.
var ErrNoOrder = errors.New("document: order is required")

var lineColumns = []struct {
	title string
	width float64
	align string
}{
	{"Product", 70, "L"},
	{"Color", 30, "L"},
	{"Qty", 20, "R"},
	{"Unit price", 30, "R"},
	{"Subtotal", 30, "R"},
}

// PDFBuilder renders composed orders as A4 delivery notes.
type PDFBuilder struct {
	storeName string
}

// NewPDFBuilder creates a builder that brands documents with storeName.
func NewPDFBuilder(storeName string) *PDFBuilder {
	return &PDFBuilder{storeName: storeName}
}

// Build renders the order. The output depends only on the order, so two
// calls with the same order return identical bytes.
func (b *PDFBuilder) Build(order *model.ComposedOrder) ([]byte, error) {
	if order == nil {
		return nil, ErrNoOrder
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	stamp := order.Date
	if stamp.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("%s #%d", Title, order.ID), true)
	pdf.SetAuthor(b.storeName, true)
	pdf.SetCreator(b.storeName, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	r.header(b.storeName, order.ID)
	r.details(order)
	r.recipient(order.Owner)
	r.lines(order.Lines)
	r.total(order)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render delivery note %d: %w", order.ID, err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) header(store string, orderID int64) {
	r.pdf.SetFont("Helvetica", "B", 18)
	r.pdf.CellFormat(0, 10, r.tr(Title), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 11)
	r.pdf.CellFormat(0, 6, r.tr(format.OrNA(store)), "", 1, "L", false, 0, "")
	r.pdf.CellFormat(0, 6, r.tr("Order #"+strconv.FormatInt(orderID, 10)), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *renderer) details(order *model.ComposedOrder) {
	r.section("Order details")
	r.field("Order", strconv.FormatInt(order.ID, 10))
	r.field("Date", format.Date(order.Date))
	r.field("Total", format.Money(order.Total))
	r.pdf.Ln(4)
}

func (r *renderer) recipient(owner *model.OwnerSummary) {
	r.section("Recipient")
	if owner == nil {
		owner = &model.OwnerSummary{}
	}
	r.field("Name", format.OrNA(owner.Name))
	r.field("Address", format.OrNA(owner.Address))
	r.field("City", format.CityLine(owner.City, owner.PostalCode))
	r.field("Email", format.OrNA(owner.Email))
	r.pdf.Ln(4)
}

func (r *renderer) lines(lines []model.ComposedLine) {
	r.section("Products")

	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.SetFillColor(230, 230, 230)
	for _, col := range lineColumns {
		r.pdf.CellFormat(col.width, rowHeight, r.tr(col.title), "1", 0, col.align, true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		price, known := line.UnitPrice()
		subtotal, _ := line.Subtotal()
		cells := []string{
			format.OrNA(line.DisplayName()),
			format.OrNA(line.Color),
			strconv.Itoa(line.Quantity),
			format.OptionalMoney(price, known),
			format.OptionalMoney(subtotal, known),
		}
		for i, col := range lineColumns {
			r.pdf.CellFormat(col.width, rowHeight, r.fit(cells[i], col.width), "1", 0, col.align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *renderer) total(order *model.ComposedOrder) {
	var labelSpan float64
	for _, col := range lineColumns[:len(lineColumns)-1] {
		labelSpan += col.width
	}
	last := lineColumns[len(lineColumns)-1]

	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.CellFormat(labelSpan, rowHeight, r.tr("Total"), "1", 0, "R", false, 0, "")
	r.pdf.CellFormat(last.width, rowHeight, r.tr(format.Money(order.Total)), "1", 1, "R", false, 0, "")
}

func (r *renderer) section(title string) {
	r.pdf.SetFont("Helvetica", "B", 12)
	r.pdf.CellFormat(0, 8, r.tr(title), "B", 1, "L", false, 0, "")
	r.pdf.Ln(1)
}

func (r *renderer) field(label, value string) {
	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.CellFormat(labelWidth, 6, r.tr(label+":"), "", 0, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.MultiCell(0, 6, r.tr(value), "", "L", false)
}

// fit translates s and trims it with an ellipsis so it stays inside width.
func (r *renderer) fit(s string, width float64) string {
	text := r.tr(s)
	limit := width - 2*r.pdf.GetCellMargin()
	if r.pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := r.tr(string(runes) + "...")
		if r.pdf.GetStringWidth(candidate) <= limit {
			return candidate
		}
	}
	return ""
}
