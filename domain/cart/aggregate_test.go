package cart

import (
	"errors"
	"testing"
)

func TestAddItemMergesLines(t *testing.T) {
	c, err := NewCart("user-1")
	if err != nil {
		t.Fatalf("NewCart failed: %v", err)
	}

	if err := c.AddItem("p1", 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := c.AddItem("p2", 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := c.AddItem("p1", 3); err != nil {
		t.Fatalf("AddItem merge failed: %v", err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ProductID() != "p1" || items[0].Quantity() != 5 {
		t.Errorf("expected p1 x5, got %s x%d", items[0].ProductID(), items[0].Quantity())
	}
}

func TestAddItemValidation(t *testing.T) {
	c, _ := NewCart("user-1")

	if err := c.AddItem("p1", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.AddItem("p1", -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.AddItem("", 1); err == nil {
		t.Error("expected error for empty product ID")
	}
}

func TestUpdateQuantity(t *testing.T) {
	c, _ := NewCart("user-1")
	_ = c.AddItem("p1", 2)

	if err := c.UpdateQuantity("p1", 7); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	if c.Items()[0].Quantity() != 7 {
		t.Errorf("expected quantity 7, got %d", c.Items()[0].Quantity())
	}

	// Zero removes the line
	if err := c.UpdateQuantity("p1", 0); err != nil {
		t.Fatalf("UpdateQuantity to zero failed: %v", err)
	}
	if !c.IsEmpty() {
		t.Error("expected empty cart after zero-quantity update")
	}

	if err := c.UpdateQuantity("missing", 1); !errors.Is(err, ErrItemNotInCart) {
		t.Errorf("expected ErrItemNotInCart, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	c, _ := NewCart("user-1")
	_ = c.AddItem("p1", 1)
	_ = c.AddItem("p2", 1)

	if err := c.RemoveItem("p1"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].ProductID() != "p2" {
		t.Errorf("expected only p2 to remain")
	}

	if err := c.RemoveItem("p1"); !errors.Is(err, ErrItemNotInCart) {
		t.Errorf("expected ErrItemNotInCart, got %v", err)
	}
}

func TestClear(t *testing.T) {
	c, _ := NewCart("user-1")
	_ = c.AddItem("p1", 2)
	c.PullEvents()

	c.Clear()
	if !c.IsEmpty() {
		t.Error("expected empty cart after Clear")
	}
	if len(c.PullEvents()) != 1 {
		t.Error("expected a cleared event")
	}

	// Clearing an already empty cart records nothing
	c.Clear()
	if len(c.PullEvents()) != 0 {
		t.Error("clearing an empty cart must not record an event")
	}
}
