package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
)

// TenantRepository defines the persistence interface for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	FindByDomain(ctx context.Context, domain string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByDomain(ctx context.Context, domain string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
