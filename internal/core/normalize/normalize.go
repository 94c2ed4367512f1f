// Package normalize coerces raw supplier fields into canonical record values
// Coercion is total: bad input degrades to a sentinel, it never drops data
package normalize

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"partsearch/internal/core/catalog"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains for identity key folding
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(), // unicode case folding
			width.Fold,   // map fullwidth forms to ASCII
		)
	},
}

// fold normalizes s for identity comparison and strips all whitespace
func fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	var b strings.Builder
	b.Grow(len(ns))
	for _, r := range ns {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Key derives the identity key for dedup from part number, category and brand
// it is a pure function of its inputs
func Key(partNumber, brand string, cat catalog.Category) string {
	return fold(partNumber) + "|" + fold(string(cat)) + "|" + fold(brand)
}

// Price coerces a raw price value into a decimal
// strings may carry a currency symbol and thousands separators
// unparsable or negative input returns ok=false meaning price unknown
func Price(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		if x.IsNegative() {
			return decimal.Zero, false
		}
		return x, true
	case float64:
		if x < 0 {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		return Price(float64(x))
	case int:
		return Price(float64(x))
	case int64:
		return Price(float64(x))
	case string:
		s := strings.TrimSpace(x)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// gstRate converts an ex GST price to its GST inclusive equivalent
var gstRate = decimal.NewFromFloat(1.1)

// IncGST derives the GST inclusive price from an ex GST price, rounded to cents
func IncGST(ex decimal.Decimal) decimal.Decimal {
	return ex.Mul(gstRate).Round(2)
}

// QtyInStockUnknown is the sentinel quantity for sources that report stock
// without a count, eg "Available" or "In Stock"
const QtyInStockUnknown = 999

// Quantity coerces a raw availability value into a sortable quantity
// negative or unparsable input becomes 0 and is treated as out of stock
func Quantity(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		if x < 0 {
			return 0
		}
		return x
	case int64:
		return Quantity(int(x))
	case float64:
		// JSON numbers decode as float64
		return Quantity(int(x))
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		switch s {
		case "", "n/a", "-":
			return 0
		case "available", "in stock", "yes":
			return QtyInStockUnknown
		case "call for availability", "call to order", "special order", "not available":
			return 0
		}
		s = strings.TrimSuffix(s, "+")
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

// no-stock labels worth echoing back to the user instead of a flat "Not Available"
var noStockEcho = map[string]struct{}{
	"special order":         {},
	"call for availability": {},
	"call to order":         {},
}

// AvailabilityDisplay renders a user facing availability string from the raw
// supplier value and its coerced quantity
// informative no-stock labels pass through as supplied
func AvailabilityDisplay(raw any, qty int) string {
	switch {
	case qty == QtyInStockUnknown:
		return "Available locally"
	case qty > 0:
		return "Available locally (Qty: " + strconv.Itoa(qty) + ")"
	}
	if s, ok := raw.(string); ok {
		t := strings.TrimSpace(s)
		if _, echo := noStockEcho[strings.ToLower(t)]; echo {
			return t
		}
	}
	return "Not Available"
}

// AbsoluteURL resolves a possibly relative product link against a source base URL
// absolute links and links without a base pass through unchanged
func AbsoluteURL(base, link string) string {
	if link == "" || base == "" || !strings.HasPrefix(link, "/") {
		return link
	}
	return strings.TrimRight(base, "/") + link
}
