// Package field models the two offer input fields and their hard input
// domain: a price with at most two decimal places and an integer quantity
// clamped to [0, 100]. Non-conforming keystrokes are rejected at input time
// so downstream parsing can assume well-formed values.
package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Editing keys accepted besides digits.
const (
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

const (
	QuantityMin = 0
	QuantityMax = 100
)

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

func isErase(key string) bool {
	return key == KeyBackspace || key == KeyDelete
}

// PriceField accepts digits, at most one decimal point and at most two
// fractional digits. Rejected keystrokes leave the value untouched.
type PriceField struct {
	value string
}

// Press applies one keystroke and reports whether it was accepted.
func (f *PriceField) Press(key string) bool {
	if isErase(key) {
		if f.value != "" {
			f.value = f.value[:len(f.value)-1]
		}
		return true
	}
	if !isDigit(key) && key != "." {
		return false
	}
	if key == "." && strings.Contains(f.value, ".") {
		return false
	}
	if dot := strings.Index(f.value, "."); dot >= 0 && len(f.value)-dot-1 >= 2 {
		return false
	}
	f.value += key
	return true
}

func (f *PriceField) Value() string { return f.value }

func (f *PriceField) Blank() bool { return strings.TrimSpace(f.value) == "" }

func (f *PriceField) Clear() { f.value = "" }

// Amount parses the field into a two-decimal price.
func (f *PriceField) Amount() (decimal.Decimal, error) {
	if f.Blank() {
		return decimal.Zero, fmt.Errorf("field: price is blank")
	}
	d, err := decimal.NewFromString(f.value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field: parse price %q: %w", f.value, err)
	}
	return d.Round(2), nil
}

// QuantityField accepts digits only and clamps its integer value to
// [QuantityMin, QuantityMax] on every input event.
type QuantityField struct {
	value string
}

// Press applies one keystroke, then normalizes the resulting value the same
// way a raw input event would.
func (f *QuantityField) Press(key string) bool {
	if isErase(key) {
		if f.value != "" {
			f.value = f.value[:len(f.value)-1]
		}
		return true
	}
	if !isDigit(key) {
		return false
	}
	f.SetRaw(f.value + key)
	return true
}

// SetRaw handles a whole-value input event: strip non-digit characters and
// clamp the result to the quantity domain.
func (f *QuantityField) SetRaw(raw string) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		f.value = ""
		return
	}

	v, err := strconv.Atoi(cleaned)
	if err != nil {
		// Longer than an int can hold; the clamp below is all that matters.
		v = QuantityMax + 1
	}
	if v < QuantityMin {
		v = QuantityMin
	} else if v > QuantityMax {
		v = QuantityMax
	}
	f.value = strconv.Itoa(v)
}

func (f *QuantityField) Value() string { return f.value }

func (f *QuantityField) Blank() bool { return strings.TrimSpace(f.value) == "" }

func (f *QuantityField) Clear() { f.value = "" }

func (f *QuantityField) Int() (int, error) {
	if f.Blank() {
		return 0, fmt.Errorf("field: quantity is blank")
	}
	v, err := strconv.Atoi(f.value)
	if err != nil {
		return 0, fmt.Errorf("field: parse quantity %q: %w", f.value, err)
	}
	return v, nil
}

// OfferReady decides whether the offer-submit control is enabled. It is
// recomputed after every keystroke on either field.
func OfferReady(price *PriceField, quantity *QuantityField, offerBlocked bool) bool {
	return !price.Blank() && !quantity.Blank() && !offerBlocked
}
