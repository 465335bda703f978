package identity

import (
	"context"

	"github.com/google/uuid"
)

// ModuleRepository defines the persistence interface for modules and
// their tenant associations
type ModuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Module, error)
	FindByCode(ctx context.Context, code string) (*Module, error)
	FindAll(ctx context.Context) ([]Module, error)
	FindEnabledForTenant(ctx context.Context, tenantID uuid.UUID) ([]Module, error)
	Save(ctx context.Context, module *Module) error
	Attach(ctx context.Context, tenantID, moduleID uuid.UUID) error
	Detach(ctx context.Context, tenantID, moduleID uuid.UUID) error
	IsEnabled(ctx context.Context, tenantID, moduleID uuid.UUID) (bool, error)
}
