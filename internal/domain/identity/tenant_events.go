package identity

import (
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant for Tenant
const AggregateTypeTenant = "Tenant"

// Tenant domain event types
const (
	EventTypeTenantCreated       = "TenantCreated"
	EventTypeTenantStatusChanged = "TenantStatusChanged"
)

// TenantCreatedEvent is published when a tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Name string     `json:"name"`
	Plan TenantPlan `json:"plan"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Name:            tenant.Name,
		Plan:            tenant.Plan,
	}
}

// TenantStatusChangedEvent is published when a tenant's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Name   string       `json:"name"`
	Status TenantStatus `json:"status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(tenant *Tenant) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Name:            tenant.Name,
		Status:          tenant.Status,
	}
}
