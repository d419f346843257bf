package identity

import (
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated     = "UserCreated"
	EventTypeUserDeactivated = "UserDeactivated"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email  string     `json:"email"`
	Status UserStatus `json:"status"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.TenantID),
		Email:           user.Email,
		Status:          user.Status,
	}
}

// UserDeactivatedEvent is published when a user is deactivated
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserDeactivatedEvent creates a new UserDeactivatedEvent
func NewUserDeactivatedEvent(user *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeactivated, AggregateTypeUser, user.ID, user.TenantID),
		Email:           user.Email,
	}
}
