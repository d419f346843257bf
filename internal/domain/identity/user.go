package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusPending     UserStatus = "pending"
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a user in the system.
// It is the aggregate root for user-related operations; email is the
// login identifier and is unique within a tenant.
type User struct {
	shared.TenantAggregateRoot
	Email        string `gorm:"type:varchar(200);not null"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	DisplayName  string `gorm:"type:varchar(200)"`
	Status       UserStatus
	RoleIDs      []uuid.UUID `gorm:"-"` // stored in user_roles, loaded by the repository
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserRole represents the many-to-many relationship between users and roles
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (UserRole) TableName() string {
	return "user_roles"
}

// NewUser creates a new active user with required fields
func NewUser(tenantID uuid.UUID, email, password string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:        passwordHash,
		Status:              UserStatusActive,
		RoleIDs:             make([]uuid.UUID, 0),
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// SetDisplayName sets the user's display name
func (u *User) SetDisplayName(displayName string) error {
	if displayName != "" && len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// AssignRole assigns a role to the user
func (u *User) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROLE_ID", "Role ID cannot be empty")
	}

	for _, rid := range u.RoleIDs {
		if rid == roleID {
			return shared.NewDomainError("ROLE_ALREADY_ASSIGNED", "User already has this role")
		}
	}

	u.RoleIDs = append(u.RoleIDs, roleID)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RemoveRole removes a role from the user
func (u *User) RemoveRole(roleID uuid.UUID) error {
	found := false
	newRoleIDs := make([]uuid.UUID, 0, len(u.RoleIDs))
	for _, rid := range u.RoleIDs {
		if rid != roleID {
			newRoleIDs = append(newRoleIDs, rid)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("ROLE_NOT_ASSIGNED", "User does not have this role")
	}

	u.RoleIDs = newRoleIDs
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRoles replaces the user's roles
func (u *User) SetRoles(roleIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool)
	unique := make([]uuid.UUID, 0, len(roleIDs))
	for _, rid := range roleIDs {
		if rid == uuid.Nil {
			return shared.NewDomainError("INVALID_ROLE_ID", "Role ID cannot be empty")
		}
		if !seen[rid] {
			seen[rid] = true
			unique = append(unique, rid)
		}
	}

	u.RoleIDs = unique
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// HasRole checks if user has a specific role
func (u *User) HasRole(roleID uuid.UUID) bool {
	for _, rid := range u.RoleIDs {
		if rid == roleID {
			return true
		}
	}
	return false
}

// Activate activates the user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserDeactivatedEvent(u))

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// IsActive returns true if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
