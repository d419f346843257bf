package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// DeleteForTenant deletes a user and its role assignments within a tenant
func (r *GormUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&identity.User{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&identity.UserRole{}, "user_id = ?", id).Error
	})
}

// FindByIDForTenant finds a user by ID within a tenant
func (r *GormUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadUserRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email within a tenant
func (r *GormUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.LoadUserRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAllForTenant finds all users for a tenant with pagination
func (r *GormUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*identity.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&identity.User{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("email ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*identity.User
	query := applyOrdering(base, filter, UserSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ExistsByEmail checks if an email is already taken within a tenant
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveUserRoles replaces the user's role assignments
func (r *GormUserRepository) SaveUserRoles(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&identity.UserRole{}, "user_id = ?", user.ID).Error; err != nil {
			return err
		}
		if len(user.RoleIDs) == 0 {
			return nil
		}

		assignments := make([]identity.UserRole, 0, len(user.RoleIDs))
		now := time.Now()
		for _, roleID := range user.RoleIDs {
			assignments = append(assignments, identity.UserRole{
				UserID:    user.ID,
				RoleID:    roleID,
				TenantID:  user.TenantID,
				CreatedAt: now,
			})
		}
		return tx.Create(&assignments).Error
	})
}

// LoadUserRoles loads the user's role assignments
func (r *GormUserRepository) LoadUserRoles(ctx context.Context, user *identity.User) error {
	var assignments []identity.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Find(&assignments).Error; err != nil {
		return err
	}

	user.RoleIDs = make([]uuid.UUID, 0, len(assignments))
	for _, assignment := range assignments {
		user.RoleIDs = append(user.RoleIDs, assignment.RoleID)
	}
	return nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
