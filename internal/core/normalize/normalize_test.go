package normalize

import (
	"testing"

	"partsearch/internal/core/catalog"

	"github.com/shopspring/decimal"
)

func TestKey_CaseAndSpaceInsensitive(t *testing.T) {
	t.Parallel()

	a := Key("F 100", "Ryco", catalog.OilFilter)
	b := Key("f100", "RYCO", catalog.OilFilter)
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}

	c := Key("F100", "Ryco", catalog.AirFilter)
	if a == c {
		t.Fatal("different categories must not collide")
	}

	d := Key("F100", "Bosch", catalog.OilFilter)
	if a == d {
		t.Fatal("different brands must not collide")
	}
}

func TestKey_FoldsFullwidth(t *testing.T) {
	t.Parallel()

	if Key("Ｆ１００", "", catalog.OilFilter) != Key("f100", "", catalog.OilFilter) {
		t.Fatal("fullwidth forms should fold to ASCII")
	}
}

func TestPrice_Coercion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"float", 12.5, "12.5", true},
		{"int", 7, "7", true},
		{"plain string", "11.00", "11", true},
		{"currency string", "$1,234.50", "1234.5", true},
		{"spaces", "  9.99 ", "9.99", true},
		{"zero", "0", "0", true},
		{"negative number", -3.0, "", false},
		{"negative string", "-4.20", "", false},
		{"garbage", "N/A", "", false},
		{"empty", "", "", false},
		{"nil", nil, "", false},
	}
	for _, tc := range cases {
		d, ok := Price(tc.in)
		if ok != tc.ok {
			t.Errorf("%s: Price(%v) ok = %v, want %v", tc.name, tc.in, ok, tc.ok)
			continue
		}
		if ok && d.String() != tc.want {
			t.Errorf("%s: Price(%v) = %s, want %s", tc.name, tc.in, d, tc.want)
		}
	}
}

func TestIncGST(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ex   string
		want string
	}{
		{"100", "110"},
		{"18.95", "20.85"},
		{"17.20", "18.92"},
		{"12.50", "13.75"},
		{"0", "0"},
	}
	for _, tc := range cases {
		ex, err := decimal.NewFromString(tc.ex)
		if err != nil {
			t.Fatalf("bad case %q: %v", tc.ex, err)
		}
		if got := IncGST(ex); got.String() != tc.want {
			t.Errorf("IncGST(%s) = %s, want %s", tc.ex, got, tc.want)
		}
	}
}

func TestQuantity_Coercion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want int
	}{
		{4, 4},
		{float64(10), 10},
		{-1, 0},
		{"14", 14},
		{"10+", 10},
		{"Available", QtyInStockUnknown},
		{"in stock", QtyInStockUnknown},
		{"YES", QtyInStockUnknown},
		{"Call for Availability", 0},
		{"call to order", 0},
		{"Special Order", 0},
		{"not available", 0},
		{"n/a", 0},
		{"-", 0},
		{"", 0},
		{"-5", 0},
		{"banana", 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := Quantity(tc.in); got != tc.want {
			t.Errorf("Quantity(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAvailabilityDisplay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  any
		qty  int
		want string
	}{
		{0, 0, "Not Available"},
		{"0", 0, "Not Available"},
		{nil, -2, "Not Available"},
		{"N/A", 0, "Not Available"},
		{"Special Order", 0, "Special Order"},
		{"Call for Availability", 0, "Call for Availability"},
		{" call to order ", 0, "call to order"},
		{"Available", QtyInStockUnknown, "Available locally"},
		{"10", 10, "Available locally (Qty: 10)"},
		{1, 1, "Available locally (Qty: 1)"},
	}
	for _, tc := range cases {
		if got := AvailabilityDisplay(tc.raw, tc.qty); got != tc.want {
			t.Errorf("AvailabilityDisplay(%v, %d) = %q, want %q", tc.raw, tc.qty, got, tc.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, link, want string
	}{
		{"https://autopartsdirect.example.com", "/parts/f100", "https://autopartsdirect.example.com/parts/f100"},
		{"https://partshubpro.example.com/", "/p/1", "https://partshubpro.example.com/p/1"},
		{"https://x.example.com", "https://cdn.example.com/p/1", "https://cdn.example.com/p/1"},
		{"", "/parts/f100", "/parts/f100"},
		{"https://x.example.com", "", ""},
	}
	for _, tc := range cases {
		if got := AbsoluteURL(tc.base, tc.link); got != tc.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tc.base, tc.link, got, tc.want)
		}
	}
}
