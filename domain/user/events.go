package user

import "time"

// UserRegisteredEvent recorded when a new account is created
type UserRegisteredEvent struct {
	userID     string
	email      string
	occurredOn time.Time
}

func NewUserRegisteredEvent(userID, email string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		userID:     userID,
		email:      email,
		occurredOn: time.Now(),
	}
}

func (e *UserRegisteredEvent) EventName() string      { return "user.registered" }
func (e *UserRegisteredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *UserRegisteredEvent) GetAggregateID() string { return e.userID }
func (e *UserRegisteredEvent) UserID() string         { return e.userID }
func (e *UserRegisteredEvent) Email() string          { return e.email }
