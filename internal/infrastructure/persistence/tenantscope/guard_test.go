package tenantscope

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type scopedRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null"`
	Name     string
}

type globalRecord struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func newGuardedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.Use(New()))

	return gormDB, mock, mockDB
}

func TestGuard_Create(t *testing.T) {
	t.Run("rejects scoped record without tenant", func(t *testing.T) {
		db, mock, mockDB := newGuardedDB(t)
		defer mockDB.Close()

		err := db.Create(&scopedRecord{ID: uuid.New(), Name: "orphan"}).Error

		assert.ErrorIs(t, err, ErrMissingTenant)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects batch containing a tenantless record", func(t *testing.T) {
		db, mock, mockDB := newGuardedDB(t)
		defer mockDB.Close()

		records := []scopedRecord{
			{ID: uuid.New(), TenantID: uuid.New(), Name: "ok"},
			{ID: uuid.New(), Name: "orphan"},
		}
		err := db.Create(&records).Error

		assert.ErrorIs(t, err, ErrMissingTenant)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allows scoped record with tenant", func(t *testing.T) {
		db, mock, mockDB := newGuardedDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "scoped_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := db.Create(&scopedRecord{
			ID:       uuid.New(),
			TenantID: uuid.New(),
			Name:     "pizza",
		}).Error

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ignores models without a tenant column", func(t *testing.T) {
		db, mock, mockDB := newGuardedDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`INSERT INTO "global_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := db.Create(&globalRecord{ID: uuid.New(), Name: "module"}).Error

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
