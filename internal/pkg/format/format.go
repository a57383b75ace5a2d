// Package format renders order values the same way in documents and mail.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder stands in for any missing optional value.
const Placeholder = "N/A"

const (
	currencySymbol = "€"
	dateLayout     = "02/01/2006"
)

// Money renders an amount with two decimals and the currency symbol.
func Money(amount decimal.Decimal) string {
	return currencySymbol + " " + amount.StringFixed(2)
}

// OptionalMoney renders the amount, or the placeholder when unknown.
func OptionalMoney(amount decimal.Decimal, known bool) string {
	if !known {
		return Placeholder
	}
	return Money(amount)
}

// Date renders a calendar date as dd/mm/yyyy.
func Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(dateLayout)
}

// OrNA returns the trimmed value or the placeholder when blank.
func OrNA(value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return Placeholder
}

// CityLine joins city and postal code as "city - postal code".
func CityLine(city, postalCode string) string {
	if strings.TrimSpace(city) == "" && strings.TrimSpace(postalCode) == "" {
		return Placeholder
	}
	return OrNA(city) + " - " + OrNA(postalCode)
}

// DocumentFileName is the file name under which a delivery note is served and attached.
func DocumentFileName(orderID int64) string {
	return "delivery_note_" + strconv.FormatInt(orderID, 10) + ".pdf"
}
