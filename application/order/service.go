/*
Package order Application Layer - checkout workflow orchestration.

The two-phase checkout:
 1. Validate prices the current cart and returns server-computed totals so
    the client can start the gateway payment for the right amount.
 2. Create re-runs the same computation, guards against duplicate
    submissions, confirms the charge with the gateway, and persists the
    order and the cart clear atomically through the unit of work.

Application services do not publish events. The unit of work collects
events from registered aggregates and saves them to the outbox table
inside the business transaction; the relay worker publishes them later.
*/
package order

import (
	"context"
	"errors"
	"strings"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// orderNumberAttempts bounds collision retries for the date-prefixed
// random order number.
const orderNumberAttempts = 5

// ApplicationService order application service
type ApplicationService struct {
	orderRepo   order.Repository
	cartRepo    cart.Repository
	productRepo catalog.Repository
	verifier    payment.Verifier
	policy      payment.Policy
	uowFactory  shared.UnitOfWorkFactory
}

// NewApplicationService Create order application service.
// policy decides what an unreachable gateway does to checkout; it is fixed
// at startup and never read from ambient environment state.
func NewApplicationService(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	productRepo catalog.Repository,
	verifier payment.Verifier,
	policy payment.Policy,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		verifier:    verifier,
		policy:      policy,
		uowFactory:  uowFactory,
	}
}

// checkoutSnapshot server-side pricing of the cart at a point in time
type checkoutSnapshot struct {
	items      []order.ItemSnapshot
	subtotal   shared.Money
	fee        shared.Money
	finalTotal shared.Money
	itemCount  int
}

// ValidateCheckout prices the cart against the shipping details.
// Read-only: nothing is created or mutated.
func (s *ApplicationService) ValidateCheckout(ctx context.Context, userID string, req ValidateCheckoutRequest) (*CheckoutQuoteResponse, error) {
	if err := validateShippingFields(req.ShippingAddress, req.RecipientName, req.RecipientPhone); err != nil {
		return nil, err
	}

	snap, err := s.snapshotCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CheckoutQuoteResponse{
		Subtotal:    snap.subtotal.Amount(),
		ShippingFee: snap.fee.Amount(),
		FinalTotal:  snap.finalTotal.Amount(),
		ItemCount:   snap.itemCount,
		Currency:    shared.KRW,
	}, nil
}

// CreateOrder runs phase B of the checkout.
// The server total is recomputed from the cart and catalog; client-supplied
// amounts are never trusted. On success the order is persisted with status
// pending and the cart is cleared in the same transaction.
func (s *ApplicationService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResponse, error) {
	if err := validateShippingFields(req.ShippingAddress, req.RecipientName, req.RecipientPhone); err != nil {
		return nil, err
	}

	snap, err := s.snapshotCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ClientPaidAmount != 0 && req.ClientPaidAmount != snap.finalTotal.Amount() {
		logger.Warn("Client-reported paid amount disagrees with server total",
			zap.String("user_id", userID),
			zap.Int64("client_paid_amount", req.ClientPaidAmount),
			zap.Int64("server_total", snap.finalTotal.Amount()),
		)
	}

	if err := s.guardDuplicateSubmission(ctx, req.MerchantUID, req.PaymentUID); err != nil {
		return nil, err
	}

	if req.PaymentUID != "" {
		if err := s.verifyPayment(ctx, req.PaymentUID, snap.finalTotal); err != nil {
			return nil, err
		}
	}

	var o *order.Order
	var createErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		orderNumber, err := s.nextOrderNumber(ctx)
		if err != nil {
			return nil, err
		}

		o, createErr = s.persistOrder(ctx, userID, orderNumber, snap, req)
		if createErr == nil {
			return s.convertToResponse(o), nil
		}
		// A conflict on the order number means another checkout won the
		// same random suffix; regenerate and retry. Anything else is final.
		if errors.Is(createErr, shared.ErrConflict) && !errors.Is(createErr, order.ErrDuplicateSubmission) {
			continue
		}
		return nil, createErr
	}

	return nil, createErr
}

// persistOrder creates the aggregate and commits order + cart clear + events
// in a single unit of work.
func (s *ApplicationService) persistOrder(ctx context.Context, userID, orderNumber string, snap *checkoutSnapshot, req CreateOrderRequest) (*order.Order, error) {
	var o *order.Order

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = order.NewOrder(order.PostOptions{
			UserID:          userID,
			OrderNumber:     orderNumber,
			Items:           snap.items,
			ShippingAddress: req.ShippingAddress,
			RecipientName:   req.RecipientName,
			RecipientPhone:  req.RecipientPhone,
			ShippingFee:     snap.fee,
			Notes:           req.Notes,
			MerchantUID:     req.MerchantUID,
			PaymentUID:      req.PaymentUID,
		})
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		c, err := s.cartRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		c.Clear()
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}

		uow.RegisterNew(o)
		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return o, nil
}

// verifyPayment consults the gateway and applies the configured policy.
// An invalid answer always rejects; only an unreachable gateway is subject
// to policy.
func (s *ApplicationService) verifyPayment(ctx context.Context, paymentUID string, expected shared.Money) error {
	// Logged before the call: a crash between here and persistence leaves a
	// verified charge without an order, and this line is the breadcrumb.
	logger.Info("Verifying payment with gateway",
		zap.String("payment_uid", paymentUID),
		zap.Int64("expected_amount", expected.Amount()),
	)

	result, err := s.verifier.Verify(ctx, paymentUID, expected)
	if err != nil {
		if s.policy == payment.PolicyPermissive {
			logger.Warn("Payment gateway unreachable, proceeding per permissive policy",
				zap.String("payment_uid", paymentUID),
				zap.Error(err),
			)
			return nil
		}
		return order.NewPaymentVerificationError("gateway unreachable: " + err.Error())
	}

	if !result.Valid {
		logger.Warn("Payment verification rejected",
			zap.String("payment_uid", paymentUID),
			zap.String("reason", result.Reason),
		)
		return order.NewPaymentVerificationError(result.Reason)
	}

	return nil
}

// guardDuplicateSubmission rejects references already attached to an order.
// The unique indexes behind Save are the race net for submissions that slip
// past these checks concurrently.
func (s *ApplicationService) guardDuplicateSubmission(ctx context.Context, merchantUID, paymentUID string) error {
	if merchantUID != "" {
		exists, err := s.orderRepo.ExistsByMerchantUID(ctx, merchantUID)
		if err != nil {
			return err
		}
		if exists {
			return order.NewDuplicateSubmissionError("merchant_uid", merchantUID)
		}
	}
	if paymentUID != "" {
		exists, err := s.orderRepo.ExistsByPaymentUID(ctx, paymentUID)
		if err != nil {
			return err
		}
		if exists {
			return order.NewDuplicateSubmissionError("payment_uid", paymentUID)
		}
	}
	return nil
}

// nextOrderNumber generates a date-prefixed number not currently taken
func (s *ApplicationService) nextOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number := order.GenerateOrderNumber()
		exists, err := s.orderRepo.ExistsByOrderNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", shared.NewConflictError("order", "could not allocate a unique order number")
}

// snapshotCart loads the cart and freezes its lines at current catalog
// prices. An absent or empty cart fails the checkout; so does a line whose
// product no longer exists.
func (s *ApplicationService) snapshotCart(ctx context.Context, userID string) (*checkoutSnapshot, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil, cart.ErrEmptyCart
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	items := c.Items()
	snaps := make([]order.ItemSnapshot, len(items))
	subtotal := shared.Won(0)
	itemCount := 0

	for i, item := range items {
		p, err := s.productRepo.FindByID(ctx, item.ProductID())
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, shared.NewValidationError("order", "items",
					"product no longer available: "+item.ProductID())
			}
			return nil, err
		}

		snaps[i] = order.ItemSnapshot{
			ProductID:   p.ID(),
			ProductName: p.Name(),
			Quantity:    item.Quantity(),
			UnitPrice:   p.Price(),
		}

		lineSubtotal, err := p.Price().Multiply(item.Quantity())
		if err != nil {
			return nil, err
		}
		sum, err := subtotal.Add(*lineSubtotal)
		if err != nil {
			return nil, err
		}
		subtotal = *sum
		itemCount += item.Quantity()
	}

	fee := order.ShippingFeeFor(subtotal)
	finalTotal, err := subtotal.Add(fee)
	if err != nil {
		return nil, err
	}

	return &checkoutSnapshot{
		items:      snaps,
		subtotal:   subtotal,
		fee:        fee,
		finalTotal: *finalTotal,
		itemCount:  itemCount,
	}, nil
}

// GetOrder returns an order visible to the caller. Owners see their own
// orders; operators see everything.
func (s *ApplicationService) GetOrder(ctx context.Context, userID string, isAdmin bool, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.IsOwnedBy(userID) {
		// Not-found rather than forbidden: do not confirm the order exists
		return nil, order.NewOrderNotFoundError(orderID)
	}
	return s.convertToResponse(o), nil
}

// GetUserOrders returns the caller's orders, newest first
func (s *ApplicationService) GetUserOrders(ctx context.Context, userID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.convertToResponses(orders), nil
}

// GetAllOrders lists every order, optionally filtered by status.
// Operator-only; the API layer enforces the admin guard.
func (s *ApplicationService) GetAllOrders(ctx context.Context, status string) ([]*OrderResponse, error) {
	var statusFilter order.Status
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		statusFilter = parsed
	}

	orders, err := s.orderRepo.FindAll(ctx, statusFilter)
	if err != nil {
		return nil, err
	}
	return s.convertToResponses(orders), nil
}

// UpdateStatus sets an order's status on behalf of an operator
func (s *ApplicationService) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*OrderResponse, error) {
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.ChangeStatus(status); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.convertToResponse(o), nil
}

// CancelOrder cancels an order on behalf of its owner
func (s *ApplicationService) CancelOrder(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !o.IsOwnedBy(userID) {
			return order.NewOrderNotFoundError(orderID)
		}
		if err := o.CancelByOwner(); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.convertToResponse(o), nil
}

func validateShippingFields(address, name, phone string) error {
	if strings.TrimSpace(address) == "" ||
		strings.TrimSpace(name) == "" ||
		strings.TrimSpace(phone) == "" {
		return order.ErrMissingShippingInfo
	}
	return nil
}

// convertToResponse Convert order aggregate to response DTO
func (s *ApplicationService) convertToResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice: MoneyResponse{
				Amount:   item.UnitPrice().Amount(),
				Currency: item.UnitPrice().Currency(),
			},
			Subtotal: MoneyResponse{
				Amount:   item.Subtotal().Amount(),
				Currency: item.Subtotal().Currency(),
			},
		}
	}

	return &OrderResponse{
		ID:              o.ID(),
		UserID:          o.UserID(),
		OrderNumber:     o.OrderNumber(),
		Items:           items,
		ShippingAddress: o.ShippingAddress(),
		RecipientName:   o.RecipientName(),
		RecipientPhone:  o.RecipientPhone(),
		TotalAmount: MoneyResponse{
			Amount:   o.TotalAmount().Amount(),
			Currency: o.TotalAmount().Currency(),
		},
		ShippingFee: MoneyResponse{
			Amount:   o.ShippingFee().Amount(),
			Currency: o.ShippingFee().Currency(),
		},
		Notes:       o.Notes(),
		MerchantUID: o.MerchantUID(),
		PaymentUID:  o.PaymentUID(),
		Status:      string(o.Status()),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func (s *ApplicationService) convertToResponses(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = s.convertToResponse(o)
	}
	return responses
}
