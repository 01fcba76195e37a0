package order

import (
	"errors"
	"testing"

	"storefront/domain/shared"
)

func validOptions() PostOptions {
	return PostOptions{
		UserID:          "user-1",
		OrderNumber:     "20260829123456",
		ShippingAddress: "12 Teheran-ro, Seoul",
		RecipientName:   "Kim",
		RecipientPhone:  "010-1234-5678",
		ShippingFee:     shared.Won(StandardShippingFee),
		Items: []ItemSnapshot{
			{ProductID: "p1", ProductName: "Dark Chocolate", Quantity: 2, UnitPrice: shared.Won(12000)},
			{ProductID: "p2", ProductName: "Caramel Box", Quantity: 1, UnitPrice: shared.Won(5000)},
		},
	}
}

func TestNewOrderComputesTotalFromSnapshots(t *testing.T) {
	o, err := NewOrder(validOptions())
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}

	// 2*12000 + 5000 + fee
	want := int64(29000 + StandardShippingFee)
	if o.TotalAmount().Amount() != want {
		t.Errorf("expected total %d, got %d", want, o.TotalAmount().Amount())
	}
	if o.Status() != StatusPending {
		t.Errorf("new order must start pending, got %s", o.Status())
	}
	if !o.IsNew() {
		t.Error("new order must be marked new")
	}
	if o.Version() != 0 {
		t.Errorf("new order must start at version 0, got %d", o.Version())
	}

	items := o.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Subtotal().Amount() != 24000 {
		t.Errorf("expected line subtotal 24000, got %d", items[0].Subtotal().Amount())
	}

	events := o.PullEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 creation event, got %d", len(events))
	}
	if len(o.PullEvents()) != 0 {
		t.Error("PullEvents must clear the event list")
	}
}

func TestNewOrderValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*PostOptions)
		wantErr error
	}{
		{"missing address", func(o *PostOptions) { o.ShippingAddress = "  " }, ErrMissingShippingInfo},
		{"missing recipient", func(o *PostOptions) { o.RecipientName = "" }, ErrMissingShippingInfo},
		{"missing phone", func(o *PostOptions) { o.RecipientPhone = "" }, ErrMissingShippingInfo},
		{"no items", func(o *PostOptions) { o.Items = nil }, ErrEmptyOrderItems},
		{"zero quantity", func(o *PostOptions) { o.Items[0].Quantity = 0 }, ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := validOptions()
			tc.mutate(&opts)
			if _, err := NewOrder(opts); !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewOrderRejectsNonPositiveTotal(t *testing.T) {
	opts := validOptions()
	opts.ShippingFee = shared.Won(0)
	opts.Items = []ItemSnapshot{
		{ProductID: "p1", ProductName: "Freebie", Quantity: 1, UnitPrice: shared.Won(0)},
	}

	if _, err := NewOrder(opts); !errors.Is(err, ErrOrderTotalAmountNotPositive) {
		t.Errorf("expected ErrOrderTotalAmountNotPositive, got %v", err)
	}
}

func TestCancelByOwner(t *testing.T) {
	cases := []struct {
		from    Status
		wantErr error
	}{
		{StatusPending, nil},
		{StatusProcessing, nil},
		{StatusShippingStarted, nil},
		{StatusShipped, ErrAlreadyShipped},
		{StatusDelivered, ErrAlreadyShipped},
		{StatusCancelled, ErrAlreadyCancelled},
	}

	for _, tc := range cases {
		t.Run(string(tc.from), func(t *testing.T) {
			o, err := NewOrder(validOptions())
			if err != nil {
				t.Fatalf("NewOrder failed: %v", err)
			}
			if tc.from != StatusPending {
				if err := o.ChangeStatus(tc.from); err != nil {
					t.Fatalf("ChangeStatus failed: %v", err)
				}
			}
			o.PullEvents()

			err = o.CancelByOwner()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("from %s: expected %v, got %v", tc.from, tc.wantErr, err)
			}
			if tc.wantErr == nil {
				if o.Status() != StatusCancelled {
					t.Errorf("expected cancelled, got %s", o.Status())
				}
				if len(o.PullEvents()) != 1 {
					t.Error("expected a cancellation event")
				}
			} else if o.Status() != tc.from {
				t.Errorf("failed cancel must not change status, got %s", o.Status())
			}
		})
	}
}

func TestChangeStatus(t *testing.T) {
	o, err := NewOrder(validOptions())
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}

	if err := o.ChangeStatus(Status("teleported")); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}

	// Operators may move backwards to correct mistakes
	if err := o.ChangeStatus(StatusDelivered); err != nil {
		t.Fatalf("ChangeStatus to delivered failed: %v", err)
	}
	if err := o.ChangeStatus(StatusShippingStarted); err != nil {
		t.Fatalf("operator correction failed: %v", err)
	}

	// Setting the same status is a no-op without an event
	o.PullEvents()
	if err := o.ChangeStatus(StatusShippingStarted); err != nil {
		t.Fatalf("no-op status change failed: %v", err)
	}
	if len(o.PullEvents()) != 0 {
		t.Error("no-op status change must not record an event")
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "processing", "shipping_started", "shipped", "delivered", "cancelled"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Errorf("ParseStatus(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseStatus("PENDING"); err == nil {
		t.Error("status values are lowercase; uppercase must be rejected")
	}
}

func TestOwnershipAndVersioning(t *testing.T) {
	o, err := NewOrder(validOptions())
	if err != nil {
		t.Fatalf("NewOrder failed: %v", err)
	}

	if !o.IsOwnedBy("user-1") {
		t.Error("expected order to be owned by user-1")
	}
	if o.IsOwnedBy("user-2") {
		t.Error("order must not be owned by another user")
	}

	o.IncrementVersionForSave()
	o.ClearDirtyTracking()
	if o.Version() != 1 {
		t.Errorf("expected version 1 after save, got %d", o.Version())
	}
	if o.IsNew() {
		t.Error("order must not be new after ClearDirtyTracking")
	}
}
