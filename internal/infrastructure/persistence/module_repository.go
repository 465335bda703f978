package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormModuleRepository implements identity.ModuleRepository using GORM
type GormModuleRepository struct {
	db *gorm.DB
}

// NewGormModuleRepository creates a new GormModuleRepository
func NewGormModuleRepository(db *gorm.DB) *GormModuleRepository {
	return &GormModuleRepository{db: db}
}

// FindByID finds a module by ID
func (r *GormModuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Module, error) {
	var module identity.Module
	if err := r.db.WithContext(ctx).First(&module, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &module, nil
}

// FindByCode finds a module by its code
func (r *GormModuleRepository) FindByCode(ctx context.Context, code string) (*identity.Module, error) {
	var module identity.Module
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(code)).
		First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &module, nil
}

// FindAll returns the full module catalog
func (r *GormModuleRepository) FindAll(ctx context.Context) ([]identity.Module, error) {
	var modules []identity.Module
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// FindEnabledForTenant returns the modules enabled for a tenant
func (r *GormModuleRepository) FindEnabledForTenant(ctx context.Context, tenantID uuid.UUID) ([]identity.Module, error) {
	var modules []identity.Module
	if err := r.db.WithContext(ctx).
		Joins("JOIN tenant_modules tm ON tm.module_id = modules.id").
		Where("tm.tenant_id = ? AND modules.active = true", tenantID).
		Order("modules.code ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// Save persists a module
func (r *GormModuleRepository) Save(ctx context.Context, module *identity.Module) error {
	return r.db.WithContext(ctx).Save(module).Error
}

// Attach enables a module for a tenant. Attaching twice is a no-op.
func (r *GormModuleRepository) Attach(ctx context.Context, tenantID, moduleID uuid.UUID) error {
	link := identity.TenantModule{TenantID: tenantID, ModuleID: moduleID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// Detach disables a module for a tenant
func (r *GormModuleRepository) Detach(ctx context.Context, tenantID, moduleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&identity.TenantModule{}, "tenant_id = ? AND module_id = ?", tenantID, moduleID).Error
}

// IsEnabled reports whether a module is enabled for a tenant
func (r *GormModuleRepository) IsEnabled(ctx context.Context, tenantID, moduleID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.TenantModule{}).
		Where("tenant_id = ? AND module_id = ?", tenantID, moduleID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.ModuleRepository = (*GormModuleRepository)(nil)
