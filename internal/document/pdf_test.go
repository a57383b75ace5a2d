package document

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

func sampleOrder() *model.ComposedOrder {
	frozen := "Mug (blue edition)"
	return &model.ComposedOrder{
		Order: model.Order{
			ID:     42,
			UserID: 3,
			Date:   time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
			Total:  decimal.RequireFromString("29.98"),
		},
		Owner: &model.OwnerSummary{
			ID:         3,
			Name:       "Ana Pérez",
			Email:      "ana@example.com",
			Address:    "Calle Mayor 1",
			City:       "Bilbao",
			PostalCode: "48001",
		},
		Lines: []model.ComposedLine{
			{
				OrderLine: model.OrderLine{ID: 1, OrderID: 42, ProductID: 10, Color: "Azul", Quantity: 2, Name: &frozen},
				Product:   &model.ProductSummary{ID: 10, Name: "Mug", Price: decimal.RequireFromString("14.99")},
			},
		},
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	builder := NewPDFBuilder("TatooTenda")

	first, err := builder.Build(sampleOrder())
	require.NoError(t, err)
	second, err := builder.Build(sampleOrder())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.Equal(t, first, second)
}

func TestBuildDiffersPerOrder(t *testing.T) {
	builder := NewPDFBuilder("TatooTenda")

	first, err := builder.Build(sampleOrder())
	require.NoError(t, err)

	other := sampleOrder()
	other.ID = 43
	second, err := builder.Build(other)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBuildWithMissingData(t *testing.T) {
	order := &model.ComposedOrder{
		Order: model.Order{ID: 7, Total: decimal.RequireFromString("5.00")},
		Lines: []model.ComposedLine{
			{OrderLine: model.OrderLine{ID: 1, OrderID: 7, ProductID: 99, Quantity: 1}},
		},
	}

	out, err := NewPDFBuilder("").Build(order)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	again, err := NewPDFBuilder("").Build(order)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestBuildRejectsNilOrder(t *testing.T) {
	_, err := NewPDFBuilder("TatooTenda").Build(nil)
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestFitTruncates(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	assert.Equal(t, "Mug", r.fit("Mug", 70))

	long := strings.Repeat("Ceramic mug ", 20)
	fitted := r.fit(long, 30)
	assert.True(t, strings.HasSuffix(fitted, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(fitted), 30.0)
}
