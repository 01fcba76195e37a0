package cart

import "time"

// CartClearedEvent recorded when a cart is emptied (checkout or explicit clear)
type CartClearedEvent struct {
	cartID     string
	userID     string
	occurredOn time.Time
}

func NewCartClearedEvent(cartID, userID string) *CartClearedEvent {
	return &CartClearedEvent{
		cartID:     cartID,
		userID:     userID,
		occurredOn: time.Now(),
	}
}

func (e *CartClearedEvent) EventName() string      { return "cart.cleared" }
func (e *CartClearedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *CartClearedEvent) GetAggregateID() string { return e.cartID }
func (e *CartClearedEvent) CartID() string         { return e.cartID }
func (e *CartClearedEvent) UserID() string         { return e.userID }
