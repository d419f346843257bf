package identity

import (
	"strings"
	"time"

	"github.com/stockflow/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusTrial     TenantStatus = "trial"
)

// TenantPlan represents the subscription plan of a tenant
type TenantPlan string

const (
	TenantPlanFree       TenantPlan = "free"
	TenantPlanStandard   TenantPlan = "standard"
	TenantPlanEnterprise TenantPlan = "enterprise"
)

// Tenant represents an organization in the multi-tenant system.
// It is the aggregate root for tenant-related operations.
type Tenant struct {
	shared.BaseAggregateRoot
	Name         string       `gorm:"type:varchar(200);not null;uniqueIndex"`
	Status       TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Plan         TenantPlan   `gorm:"type:varchar(20);not null;default:'free'"`
	ContactEmail string       `gorm:"type:varchar(200)"`
	TrialEndsAt  *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant with required fields
func NewTenant(name string) (*Tenant, error) {
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Status:            TenantStatusActive,
		Plan:              TenantPlanFree,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// NewTrialTenant creates a new tenant in trial status
func NewTrialTenant(name string, trialDays int) (*Tenant, error) {
	if trialDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TRIAL_DAYS", "Trial days must be positive")
	}

	tenant, err := NewTenant(name)
	if err != nil {
		return nil, err
	}

	tenant.Status = TenantStatusTrial
	trialEnds := time.Now().AddDate(0, 0, trialDays)
	tenant.TrialEndsAt = &trialEnds

	return tenant, nil
}

// Update updates the tenant's basic information
func (t *Tenant) Update(name, contactEmail string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}
	if contactEmail != "" && len(contactEmail) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Contact email cannot exceed 200 characters")
	}

	t.Name = strings.TrimSpace(name)
	t.ContactEmail = strings.TrimSpace(contactEmail)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// ChangePlan changes the tenant's subscription plan
func (t *Tenant) ChangePlan(plan TenantPlan) error {
	switch plan {
	case TenantPlanFree, TenantPlanStandard, TenantPlanEnterprise:
	default:
		return shared.NewDomainError("INVALID_PLAN", "Unknown subscription plan")
	}

	t.Plan = plan
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Activate activates the tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	t.Status = TenantStatusActive
	t.TrialEndsAt = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))

	return nil
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}

	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))

	return nil
}

// IsActive returns true if the tenant can use the system
func (t *Tenant) IsActive() bool {
	if t.Status == TenantStatusTrial {
		return t.TrialEndsAt == nil || time.Now().Before(*t.TrialEndsAt)
	}
	return t.Status == TenantStatusActive
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
