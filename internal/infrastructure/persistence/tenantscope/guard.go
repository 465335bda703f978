// Package tenantscope guards tenant isolation at the persistence layer.
// Repositories filter every query by tenant id; this plugin backs them up
// by refusing to insert a tenant-scoped row whose tenant id was never set.
package tenantscope

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ErrMissingTenant is returned when a tenant-scoped model reaches the
// database with a zero tenant id.
var ErrMissingTenant = shared.NewDomainError("MISSING_TENANT", "Tenant id is required for this record")

const tenantColumn = "tenant_id"

// Guard is a gorm plugin that rejects creates of tenant-scoped models
// with an unset tenant id. Models without a tenant_id column pass through.
type Guard struct{}

// New returns the tenant guard plugin.
func New() *Guard {
	return &Guard{}
}

// Name implements gorm.Plugin.
func (g *Guard) Name() string {
	return "tenantscope:guard"
}

// Initialize registers the guard before gorm's create callback.
func (g *Guard) Initialize(db *gorm.DB) error {
	return db.Callback().Create().Before("gorm:create").Register("tenantscope:require_tenant", requireTenant)
}

func requireTenant(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}
	field := db.Statement.Schema.LookUpField(tenantColumn)
	if field == nil {
		return
	}

	switch db.Statement.ReflectValue.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < db.Statement.ReflectValue.Len(); i++ {
			if tenantUnset(db, field, db.Statement.ReflectValue.Index(i)) {
				_ = db.AddError(ErrMissingTenant)
				return
			}
		}
	case reflect.Struct:
		if tenantUnset(db, field, db.Statement.ReflectValue) {
			_ = db.AddError(ErrMissingTenant)
		}
	}
}

func tenantUnset(db *gorm.DB, field *schema.Field, rv reflect.Value) bool {
	value, zero := field.ValueOf(db.Statement.Context, rv)
	if zero {
		return true
	}
	id, ok := value.(uuid.UUID)
	return ok && id == uuid.Nil
}
