package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds product within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "tenant_id", "code", "name", "price", "current_stock", "status", "version",
		}).AddRow(
			productID, tenantID, "PIZ-01", "Pizza Margherita",
			decimal.NewFromInt(45), decimal.NewFromInt(10), catalog.ProductStatusActive, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "PIZ-01", product.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing product to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := newTestProduct(t)
		product.Version = 2

		mock.ExpectExec(`UPDATE "products" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), product)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when the row moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := newTestProduct(t)
		product.Version = 2

		mock.ExpectExec(`UPDATE "products" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), product)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), "PIZ-01", "Pizza Margherita", decimal.NewFromInt(45))
	require.NoError(t, err)
	return product
}
