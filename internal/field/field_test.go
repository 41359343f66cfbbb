package field

import "testing"

func TestPriceFieldTwoDecimalLimit(t *testing.T) {
	var f PriceField
	for _, key := range []string{"1", "2", ".", "5", "5"} {
		if !f.Press(key) {
			t.Fatalf("keystroke %q rejected, value %q", key, f.Value())
		}
	}
	if f.Value() != "12.55" {
		t.Fatalf("value = %q, want \"12.55\"", f.Value())
	}

	if f.Press("5") {
		t.Fatal("third fractional digit should be rejected")
	}
	if f.Value() != "12.55" {
		t.Fatalf("rejected keystroke changed value to %q", f.Value())
	}
}

func TestPriceFieldSingleDecimalPoint(t *testing.T) {
	var f PriceField
	f.Press("3")
	f.Press(".")
	if f.Press(".") {
		t.Fatal("second decimal point should be rejected")
	}
	if f.Value() != "3." {
		t.Fatalf("value = %q, want \"3.\"", f.Value())
	}
}

func TestPriceFieldRejectsNonNumeric(t *testing.T) {
	var f PriceField
	for _, key := range []string{"a", "-", " ", "€", "Enter"} {
		if f.Press(key) {
			t.Fatalf("keystroke %q should be rejected", key)
		}
	}
	if f.Value() != "" {
		t.Fatalf("rejected keystrokes produced value %q", f.Value())
	}
}

func TestPriceFieldBackspace(t *testing.T) {
	var f PriceField
	for _, key := range []string{"7", ".", "5"} {
		f.Press(key)
	}
	f.Press(KeyBackspace)
	if f.Value() != "7." {
		t.Fatalf("value = %q, want \"7.\"", f.Value())
	}
	// Erasing below the decimal limit re-admits digits.
	if !f.Press("9") {
		t.Fatal("digit after erase should be accepted")
	}
	if f.Value() != "7.9" {
		t.Fatalf("value = %q, want \"7.9\"", f.Value())
	}
}

func TestPriceAmount(t *testing.T) {
	var f PriceField
	for _, key := range []string{"1", "2", ".", "5", "5"} {
		f.Press(key)
	}
	d, err := f.Amount()
	if err != nil {
		t.Fatalf("Amount: %v", err)
	}
	if d.String() != "12.55" {
		t.Fatalf("Amount = %s, want 12.55", d)
	}
}

func TestQuantityFieldClampsToMax(t *testing.T) {
	var f QuantityField
	f.SetRaw("150")
	if f.Value() != "100" {
		t.Fatalf("value = %q, want \"100\"", f.Value())
	}
}

func TestQuantityFieldStripsNonDigits(t *testing.T) {
	var f QuantityField
	f.SetRaw("4x2")
	if f.Value() != "42" {
		t.Fatalf("value = %q, want \"42\"", f.Value())
	}

	f.SetRaw("abc")
	if f.Value() != "" {
		t.Fatalf("value = %q, want blank", f.Value())
	}
}

func TestQuantityFieldKeystrokes(t *testing.T) {
	var f QuantityField
	if f.Press("x") {
		t.Fatal("letter keystroke should be rejected")
	}
	f.Press("9")
	f.Press("9")
	if f.Value() != "99" {
		t.Fatalf("value = %q, want \"99\"", f.Value())
	}
	// One more digit pushes past the cap; the clamp takes over.
	f.Press("9")
	if f.Value() != "100" {
		t.Fatalf("value = %q, want \"100\"", f.Value())
	}
}

func TestOfferReady(t *testing.T) {
	var price PriceField
	var quantity QuantityField

	if OfferReady(&price, &quantity, false) {
		t.Fatal("blank fields should not be ready")
	}

	price.Press("7")
	if OfferReady(&price, &quantity, false) {
		t.Fatal("blank quantity should not be ready")
	}

	quantity.Press("5")
	if !OfferReady(&price, &quantity, false) {
		t.Fatal("populated fields should be ready")
	}
	if OfferReady(&price, &quantity, true) {
		t.Fatal("offer-blocked state should not be ready")
	}
}
