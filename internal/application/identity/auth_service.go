package identity

import (
	"context"
	"errors"

	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/auth"
)

// AuthService handles authentication: login, token refresh, and logout
type AuthService struct {
	userRepo   identity.UserRepository
	tenantRepo identity.TenantRepository
	roleRepo   identity.RoleRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	tenantRepo identity.TenantRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// Login authenticates a user and issues a token pair. Credential
// failures all surface as the same error so callers cannot probe which
// part was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	tenant, err := s.tenantRepo.FindByName(ctx, req.TenantName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")
		}
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("FORBIDDEN", "Tenant is suspended")
	}

	user, err := s.userRepo.FindByEmail(ctx, tenant.ID, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("FORBIDDEN", "User account is deactivated")
	}

	roleNames, err := s.roleNames(ctx, user)
	if err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Email:    user.Email,
		Roles:    roleNames,
	})
	if err != nil {
		return nil, err
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Refresh validates a refresh token and rotates it: the old refresh
// token is blacklisted and a fresh pair is issued
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
	}

	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("FORBIDDEN", "User account is deactivated")
	}

	roleNames, err := s.roleNames(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Roles:    roleNames,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Logout revokes the caller's tokens. Invalid or already-expired
// tokens are ignored so logout never fails for the client.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.jwtService.ValidateAccessToken(accessToken); err == nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			return err
		}
	}

	if refreshToken == "" {
		return nil
	}
	if claims, err := s.jwtService.ValidateRefreshToken(refreshToken); err == nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			return err
		}
	}

	return nil
}

func (s *AuthService) roleNames(ctx context.Context, user *identity.User) ([]string, error) {
	if len(user.RoleIDs) == 0 {
		return nil, nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, user.TenantID, user.RoleIDs)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}
