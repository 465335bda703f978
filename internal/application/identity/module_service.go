package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
)

// ModuleService manages which platform modules each tenant may use
type ModuleService struct {
	moduleRepo identity.ModuleRepository
	tenantRepo identity.TenantRepository
}

// NewModuleService creates a new ModuleService
func NewModuleService(moduleRepo identity.ModuleRepository, tenantRepo identity.TenantRepository) *ModuleService {
	return &ModuleService{
		moduleRepo: moduleRepo,
		tenantRepo: tenantRepo,
	}
}

// ListForTenant returns all modules annotated with the tenant's enablement
func (s *ModuleService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]ModuleResponse, error) {
	all, err := s.moduleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	enabled, err := s.moduleRepo.FindEnabledForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	enabledSet := make(map[uuid.UUID]bool, len(enabled))
	for _, m := range enabled {
		enabledSet[m.ID] = true
	}

	items := make([]ModuleResponse, 0, len(all))
	for _, m := range all {
		items = append(items, ModuleResponse{
			ID:      m.ID,
			Code:    m.Code,
			Name:    m.Name,
			Enabled: enabledSet[m.ID],
		})
	}
	return items, nil
}

// Enable attaches a module to a tenant
func (s *ModuleService) Enable(ctx context.Context, tenantID, moduleID uuid.UUID) error {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return err
	}
	if _, err := s.moduleRepo.FindByID(ctx, moduleID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("MODULE_NOT_FOUND", "Module not found")
		}
		return err
	}

	already, err := s.moduleRepo.IsEnabled(ctx, tenantID, moduleID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	return s.moduleRepo.Attach(ctx, tenantID, moduleID)
}

// Disable detaches a module from a tenant
func (s *ModuleService) Disable(ctx context.Context, tenantID, moduleID uuid.UUID) error {
	enabled, err := s.moduleRepo.IsEnabled(ctx, tenantID, moduleID)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	return s.moduleRepo.Detach(ctx, tenantID, moduleID)
}

// RequireEnabled returns ErrForbidden when the tenant lacks the module
func (s *ModuleService) RequireEnabled(ctx context.Context, tenantID uuid.UUID, code string) error {
	module, err := s.moduleRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		return err
	}

	enabled, err := s.moduleRepo.IsEnabled(ctx, tenantID, module.ID)
	if err != nil {
		return err
	}
	if !enabled {
		return shared.ErrForbidden
	}
	return nil
}
