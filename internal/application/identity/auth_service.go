package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID, tenantID uuid.UUID, role string) (token string, expiresAt time.Time, err error)
}

// AuthService handles back-office authentication
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login verifies credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, tenantID uuid.UUID, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, tenantID, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("USER_INACTIVE", "User account is disabled")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.TenantID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// CreateUser adds a back-office user to the tenant
func (s *AuthService) CreateUser(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := identity.NewUser(tenantID, req.Email, req.Name, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers returns the tenant's back-office users
func (s *AuthService) ListUsers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UserResponse, error) {
	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, ToUserResponse(&users[i]))
	}
	return items, nil
}

// ToggleUser activates or deactivates a user
func (s *AuthService) ToggleUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if user.IsActive() {
		user.Deactivate()
	} else {
		user.Activate()
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}
