package memory

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/order"
	"storefront/domain/shared"
)

func testOrder(t *testing.T, userID, number, merchantUID, paymentUID string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.PostOptions{
		UserID:          userID,
		OrderNumber:     number,
		ShippingAddress: "addr",
		RecipientName:   "Kim",
		RecipientPhone:  "010-0000-0000",
		ShippingFee:     shared.Won(order.StandardShippingFee),
		MerchantUID:     merchantUID,
		PaymentUID:      paymentUID,
		Items: []order.ItemSnapshot{
			{ProductID: "p1", ProductName: "Candy", Quantity: 1, UnitPrice: shared.Won(10000)},
		},
	})
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}
	return o
}

func TestSaveEnforcesUniqueness(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	first := testOrder(t, "u1", "20260829000001", "m-1", "imp-1")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := repo.Save(ctx, testOrder(t, "u2", "20260829000002", "m-1", "imp-2")); !errors.Is(err, order.ErrDuplicateSubmission) {
		t.Errorf("duplicate merchant_uid: expected ErrDuplicateSubmission, got %v", err)
	}
	if err := repo.Save(ctx, testOrder(t, "u2", "20260829000003", "m-2", "imp-1")); !errors.Is(err, order.ErrDuplicateSubmission) {
		t.Errorf("duplicate payment_uid: expected ErrDuplicateSubmission, got %v", err)
	}
	if err := repo.Save(ctx, testOrder(t, "u2", "20260829000001", "m-3", "imp-3")); !errors.Is(err, shared.ErrConflict) {
		t.Errorf("duplicate order number: expected conflict, got %v", err)
	}

	// Orders without payment references never collide with each other
	if err := repo.Save(ctx, testOrder(t, "u2", "20260829000004", "", "")); err != nil {
		t.Errorf("Save without references failed: %v", err)
	}
	if err := repo.Save(ctx, testOrder(t, "u3", "20260829000005", "", "")); err != nil {
		t.Errorf("second Save without references failed: %v", err)
	}
}

func TestSaveOptimisticLocking(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	o := testOrder(t, "u1", "20260829000001", "", "")
	if err := repo.Save(ctx, o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if o.Version() != 1 {
		t.Fatalf("expected version 1 after save, got %d", o.Version())
	}

	// A stale copy must be rejected
	stale := order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          o.ID(),
		UserID:      o.UserID(),
		OrderNumber: o.OrderNumber(),
		Items:       o.Items(),
		TotalAmount: o.TotalAmount(),
		ShippingFee: o.ShippingFee(),
		Status:      o.Status(),
		Version:     0, // behind the stored version
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),

		ShippingAddress: o.ShippingAddress(),
		RecipientName:   o.RecipientName(),
		RecipientPhone:  o.RecipientPhone(),
	})
	if err := repo.Save(ctx, stale); !errors.Is(err, order.ErrConcurrentModification) {
		t.Errorf("expected ErrConcurrentModification, got %v", err)
	}

	// The current copy saves fine
	if err := o.ChangeStatus(order.StatusProcessing); err != nil {
		t.Fatalf("ChangeStatus failed: %v", err)
	}
	if err := repo.Save(ctx, o); err != nil {
		t.Errorf("Save of current version failed: %v", err)
	}
	if o.Version() != 2 {
		t.Errorf("expected version 2, got %d", o.Version())
	}
}

func TestFindersAndExistence(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}

	o := testOrder(t, "u1", "20260829000001", "m-1", "imp-1")
	if err := repo.Save(ctx, o); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.FindByID(ctx, o.ID())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.OrderNumber() != o.OrderNumber() {
		t.Errorf("unexpected order returned")
	}

	for _, check := range []struct {
		name   string
		exists func() (bool, error)
	}{
		{"order number", func() (bool, error) { return repo.ExistsByOrderNumber(ctx, "20260829000001") }},
		{"merchant uid", func() (bool, error) { return repo.ExistsByMerchantUID(ctx, "m-1") }},
		{"payment uid", func() (bool, error) { return repo.ExistsByPaymentUID(ctx, "imp-1") }},
	} {
		exists, err := check.exists()
		if err != nil {
			t.Fatalf("%s existence check failed: %v", check.name, err)
		}
		if !exists {
			t.Errorf("%s should exist", check.name)
		}
	}

	exists, err := repo.ExistsByMerchantUID(ctx, "")
	if err != nil {
		t.Fatalf("empty merchant uid check failed: %v", err)
	}
	if exists {
		t.Error("empty merchant uid must never report existence")
	}
}
