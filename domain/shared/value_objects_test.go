package shared

import (
	"math"
	"testing"
)

func TestMoneyArithmetic(t *testing.T) {
	a := Won(24000)
	b := Won(6000)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum.Amount() != 30000 {
		t.Errorf("expected 30000, got %d", sum.Amount())
	}
	if sum.Currency() != KRW {
		t.Errorf("expected currency %s, got %s", KRW, sum.Currency())
	}

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	if diff.Amount() != 18000 {
		t.Errorf("expected 18000, got %d", diff.Amount())
	}

	// The original values must be untouched
	if a.Amount() != 24000 || b.Amount() != 6000 {
		t.Error("Money values were mutated by arithmetic")
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	krw := Won(1000)
	usd := NewMoney(1000, "USD")

	if _, err := krw.Add(*usd); err == nil {
		t.Error("expected error adding different currencies")
	}
	if _, err := krw.Subtract(*usd); err == nil {
		t.Error("expected error subtracting different currencies")
	}
}

func TestMoneyMultiply(t *testing.T) {
	price := Won(4500)

	total, err := price.Multiply(3)
	if err != nil {
		t.Fatalf("Multiply failed: %v", err)
	}
	if total.Amount() != 13500 {
		t.Errorf("expected 13500, got %d", total.Amount())
	}

	zero, err := price.Multiply(0)
	if err != nil {
		t.Fatalf("Multiply by zero failed: %v", err)
	}
	if zero.Amount() != 0 {
		t.Errorf("expected 0, got %d", zero.Amount())
	}

	if _, err := price.Multiply(-1); err == nil {
		t.Error("expected error for negative quantity")
	}

	huge := Won(math.MaxInt64 / 2)
	if _, err := huge.Multiply(3); err == nil {
		t.Error("expected overflow error")
	}
}

func TestMoneyComparisons(t *testing.T) {
	a := Won(30000)
	b := Won(29999)

	if !a.IsGreaterThan(b) {
		t.Error("30000 should be greater than 29999")
	}
	if !a.IsGreaterThanOrEqual(Won(30000)) {
		t.Error("30000 should be >= 30000")
	}
	if b.IsGreaterThanOrEqual(a) {
		t.Error("29999 should not be >= 30000")
	}
	if !a.Equals(Won(30000)) {
		t.Error("equal amounts should compare equal")
	}
	if a.Equals(*NewMoney(30000, "USD")) {
		t.Error("different currencies should not compare equal")
	}
}
