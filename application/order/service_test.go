package order

import (
	"context"
	"errors"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier scripts gateway answers per payment UID.
// err simulates an unreachable gateway.
type stubVerifier struct {
	results map[string]*payment.Result
	err     error
	calls   int
}

func (v *stubVerifier) Verify(ctx context.Context, paymentUID string, expected shared.Money) (*payment.Result, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	if r, ok := v.results[paymentUID]; ok {
		return r, nil
	}
	return payment.ValidResult(&payment.GatewayPayment{
		PaymentUID: paymentUID,
		Status:     "paid",
		Amount:     expected.Amount(),
	}), nil
}

type fixture struct {
	service  *ApplicationService
	orders   *memory.OrderRepository
	carts    *memory.CartRepository
	products *memory.ProductRepository
	verifier *stubVerifier
}

func newFixture(t *testing.T, policy payment.Policy) *fixture {
	t.Helper()

	f := &fixture{
		orders:   memory.NewOrderRepository(),
		carts:    memory.NewCartRepository(),
		products: memory.NewProductRepository(),
		verifier: &stubVerifier{results: map[string]*payment.Result{}},
	}
	f.service = NewApplicationService(
		f.orders,
		f.carts,
		f.products,
		f.verifier,
		policy,
		memory.NewUnitOfWorkFactory(nil),
	)
	return f
}

// seedProduct puts a product in the catalog and returns its id
func (f *fixture) seedProduct(t *testing.T, sku, name string, price int64) string {
	t.Helper()
	p, err := catalog.NewProduct(sku, name, shared.Won(price), "chocolate", "/img/"+sku+".jpg", "")
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p.ID()
}

// seedCart fills a user's cart with product/quantity pairs, reusing an
// existing cart the way the cart service does
func (f *fixture) seedCart(t *testing.T, userID string, lines map[string]int) {
	t.Helper()
	c, err := f.carts.FindByUserID(context.Background(), userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		c, err = cart.NewCart(userID)
	}
	require.NoError(t, err)
	for productID, qty := range lines {
		require.NoError(t, c.AddItem(productID, qty))
	}
	require.NoError(t, f.carts.Save(context.Background(), c))
}

func createReq(merchantUID, paymentUID string) CreateOrderRequest {
	return CreateOrderRequest{
		ShippingAddress: "12 Teheran-ro, Seoul",
		RecipientName:   "Kim",
		RecipientPhone:  "010-1234-5678",
		MerchantUID:     merchantUID,
		PaymentUID:      paymentUID,
	}
}

func TestValidateCheckoutQuotesShippingFee(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		qty      int
		subtotal int64
		fee      int64
	}{
		{"below free-shipping threshold", 24001, 1, 24001, order.StandardShippingFee},
		{"above free-shipping threshold", 35000, 1, 35000, 0},
		{"exactly at threshold", 15000, 2, 30000, 0},
		{"one won short of threshold", 29999, 1, 29999, order.StandardShippingFee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, payment.PolicyStrict)
			pid := f.seedProduct(t, "sku-"+tc.name, "Candy", tc.price)
			f.seedCart(t, "user-1", map[string]int{pid: tc.qty})

			quote, err := f.service.ValidateCheckout(context.Background(), "user-1", ValidateCheckoutRequest{
				ShippingAddress: "addr",
				RecipientName:   "Kim",
				RecipientPhone:  "010-0000-0000",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.subtotal, quote.Subtotal)
			assert.Equal(t, tc.fee, quote.ShippingFee)
			assert.Equal(t, tc.subtotal+tc.fee, quote.FinalTotal)
			assert.Equal(t, tc.qty, quote.ItemCount)
		})
	}
}

func TestValidateCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)

	_, err := f.service.ValidateCheckout(context.Background(), "user-1", ValidateCheckoutRequest{
		ShippingAddress: "addr",
		RecipientName:   "Kim",
		RecipientPhone:  "010-0000-0000",
	})
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestCreateOrderSuccessClearsCart(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Dark Chocolate", 12000)
	f.seedCart(t, "user-1", map[string]int{pid: 2})

	resp, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(24000+order.StandardShippingFee), resp.TotalAmount.Amount)
	assert.Equal(t, "m-1", resp.MerchantUID)
	assert.Equal(t, "imp-1", resp.PaymentUID)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "Dark Chocolate", resp.Items[0].ProductName)
	assert.Equal(t, 1, f.verifier.calls)

	// Cart is cleared in the same workflow
	c, err := f.carts.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// The order is findable
	got, err := f.service.GetOrder(context.Background(), "user-1", false, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.OrderNumber, got.OrderNumber)
}

func TestCreateOrderEmptyCartFails(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)

	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Zero(t, f.verifier.calls, "gateway must not be consulted for an empty cart")
}

func TestCreateOrderDuplicateMerchantUID(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})

	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-dup", "imp-1"))
	require.NoError(t, err)

	// Refill the cart and submit the same merchant reference again
	f.seedCart(t, "user-2", map[string]int{pid: 3})
	_, err = f.service.CreateOrder(context.Background(), "user-2", createReq("m-dup", "imp-2"))
	assert.ErrorIs(t, err, order.ErrDuplicateSubmission)

	// The duplicate attempt left its cart intact
	c, err := f.carts.FindByUserID(context.Background(), "user-2")
	require.NoError(t, err)
	assert.False(t, c.IsEmpty())

	// Exactly one order exists for the reference
	orders, err := f.service.GetAllOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCreateOrderFailedVerificationLeavesEverything(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})
	f.verifier.results["imp-bad"] = payment.NotCompleted("ready")

	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-bad"))
	assert.ErrorIs(t, err, order.ErrPaymentVerificationFailed)

	// Nothing was created and the cart is untouched
	orders, err := f.service.GetAllOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, orders)

	c, err := f.carts.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, c.IsEmpty())
}

func TestCreateOrderAmountMismatchFails(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})
	f.verifier.results["imp-short"] = payment.AmountMismatch(100, 10001)

	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("", "imp-short"))
	assert.ErrorIs(t, err, order.ErrPaymentVerificationFailed)
}

func TestCreateOrderUnreachableGatewayPolicies(t *testing.T) {
	t.Run("strict fails the checkout", func(t *testing.T) {
		f := newFixture(t, payment.PolicyStrict)
		pid := f.seedProduct(t, "sku-1", "Candy", 10000)
		f.seedCart(t, "user-1", map[string]int{pid: 1})
		f.verifier.err = errors.New("connection refused")

		_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
		assert.ErrorIs(t, err, order.ErrPaymentVerificationFailed)
	})

	t.Run("permissive proceeds", func(t *testing.T) {
		f := newFixture(t, payment.PolicyPermissive)
		pid := f.seedProduct(t, "sku-1", "Candy", 10000)
		f.seedCart(t, "user-1", map[string]int{pid: 1})
		f.verifier.err = errors.New("connection refused")

		resp, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("permissive still rejects an invalid answer", func(t *testing.T) {
		f := newFixture(t, payment.PolicyPermissive)
		pid := f.seedProduct(t, "sku-1", "Candy", 10000)
		f.seedCart(t, "user-1", map[string]int{pid: 1})
		f.verifier.results["imp-bad"] = payment.NotCompleted("cancelled")

		_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-bad"))
		assert.ErrorIs(t, err, order.ErrPaymentVerificationFailed)
	})
}

func TestCreateOrderWithoutPaymentUIDSkipsGateway(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})

	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", ""))
	require.NoError(t, err)
	assert.Zero(t, f.verifier.calls)
}

func TestCreateOrderRemovedProductFails(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})
	require.NoError(t, f.products.Remove(context.Background(), pid))

	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestGetOrderOwnershipMasking(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})

	resp, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	require.NoError(t, err)

	// A stranger gets not-found, never forbidden
	_, err = f.service.GetOrder(context.Background(), "user-2", false, resp.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	// An operator sees everything
	got, err := f.service.GetOrder(context.Background(), "user-2", true, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}

func TestCancelOrderMatrix(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})

	resp, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	require.NoError(t, err)

	// A stranger cannot cancel and learns nothing
	_, err = f.service.CancelOrder(context.Background(), "user-2", resp.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	// Pending cancels fine
	cancelled, err := f.service.CancelOrder(context.Background(), "user-1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	// Shipped orders cannot be cancelled
	f.seedCart(t, "user-1", map[string]int{pid: 1})
	resp2, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-2", "imp-2"))
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(context.Background(), resp2.ID, UpdateStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	_, err = f.service.CancelOrder(context.Background(), "user-1", resp2.ID)
	assert.ErrorIs(t, err, order.ErrAlreadyShipped)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)
	f.seedCart(t, "user-1", map[string]int{pid: 1})

	resp, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(context.Background(), resp.ID, UpdateStatusRequest{Status: "processing"})
	require.NoError(t, err)
	assert.Equal(t, "processing", updated.Status)

	_, err = f.service.UpdateStatus(context.Background(), resp.ID, UpdateStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestGetAllOrdersStatusFilter(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)

	f.seedCart(t, "user-1", map[string]int{pid: 1})
	first, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", "imp-1"))
	require.NoError(t, err)

	f.seedCart(t, "user-1", map[string]int{pid: 2})
	_, err = f.service.CreateOrder(context.Background(), "user-1", createReq("m-2", "imp-2"))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), first.ID, UpdateStatusRequest{Status: "shipped"})
	require.NoError(t, err)

	shipped, err := f.service.GetAllOrders(context.Background(), "shipped")
	require.NoError(t, err)
	assert.Len(t, shipped, 1)

	all, err := f.service.GetAllOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.service.GetAllOrders(context.Background(), "bogus")
	assert.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestGetUserOrdersNewestFirst(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)
	pid := f.seedProduct(t, "sku-1", "Candy", 10000)

	f.seedCart(t, "user-1", map[string]int{pid: 1})
	_, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-1", ""))
	require.NoError(t, err)

	f.seedCart(t, "user-1", map[string]int{pid: 1})
	second, err := f.service.CreateOrder(context.Background(), "user-1", createReq("m-2", ""))
	require.NoError(t, err)

	orders, err := f.service.GetUserOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)

	other, err := f.service.GetUserOrders(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreateOrderMissingShippingInfo(t *testing.T) {
	f := newFixture(t, payment.PolicyStrict)

	req := createReq("m-1", "imp-1")
	req.RecipientPhone = "   "
	_, err := f.service.CreateOrder(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, order.ErrMissingShippingInfo)
}
