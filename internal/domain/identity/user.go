package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// UserRole represents the back-office role of a user
type UserRole string

const (
	UserRoleOwner    UserRole = "owner"    // Full access including tenant settings
	UserRoleManager  UserRole = "manager"  // Catalog, coupons, delivery areas, orders
	UserRoleOperator UserRole = "operator" // Orders and stock only
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a back-office user of a tenant
type User struct {
	shared.TenantAggregateRoot
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_tenant_email,priority:2"`
	Name         string     `gorm:"type:varchar(200);not null"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'operator'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(tenantID uuid.UUID, email, name, password string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = UserRoleOperator
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		Name:                name,
		PasswordHash:        string(hash),
		Role:                role,
		Status:              UserStatusActive,
	}, nil
}

// CheckPassword verifies the given password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLogin stores the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Deactivate disables the user
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Activate re-enables the user
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsActive returns true if the user may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
