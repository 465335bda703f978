package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/promotion"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCouponRepository creates a GormCouponRepository with a mocked SQL connection
func newMockCouponRepository(t *testing.T) (*GormCouponRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCouponRepository(gormDB), mock, mockDB
}

func TestGormCouponRepository_FindByCode(t *testing.T) {
	t.Run("normalizes code before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		couponID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "tenant_id", "code", "discount_type", "discount_value",
			"minimum_purchase", "usage_cap", "usage_count", "active", "version",
		}).AddRow(
			couponID, tenantID, "DEZ10", promotion.DiscountPercentage, decimal.NewFromInt(10),
			decimal.Zero, nil, 0, true, 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE tenant_id = \$1 AND code = \$2 AND active = \$3`).
			WithArgs(tenantID, "DEZ10", true, 1).
			WillReturnRows(rows)

		coupon, err := repo.FindByCode(context.Background(), tenantID, "  dez10 ")

		assert.NoError(t, err)
		require.NotNil(t, coupon)
		assert.Equal(t, couponID, coupon.ID)
		assert.Equal(t, "DEZ10", coupon.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing coupon to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE tenant_id = \$1 AND code = \$2 AND active = \$3`).
			WithArgs(tenantID, "NOPE", true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		coupon, err := repo.FindByCode(context.Background(), tenantID, "nope")

		assert.Nil(t, coupon)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("disabled coupon is filtered out like a missing one", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "coupons" WHERE tenant_id = \$1 AND code = \$2 AND active = \$3`).
			WithArgs(tenantID, "DESATIVADO", true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		coupon, err := repo.FindByCode(context.Background(), tenantID, "desativado")

		assert.Nil(t, coupon)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCouponRepository_IncrementUsage(t *testing.T) {
	t.Run("increments below the cap", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		couponID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectExec(`UPDATE "coupons" SET "usage_count"=usage_count \+ 1 WHERE tenant_id = \$1 AND id = \$2 AND \(usage_cap IS NULL OR usage_count < usage_cap\)`).
			WithArgs(tenantID, couponID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementUsage(context.Background(), tenantID, couponID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns exhausted when the cap is reached", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		couponID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectExec(`UPDATE "coupons" SET "usage_count"=usage_count \+ 1`).
			WithArgs(tenantID, couponID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "coupons" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, couponID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.IncrementUsage(context.Background(), tenantID, couponID)

		assert.ErrorIs(t, err, promotion.ErrCouponExhausted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown coupon", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		couponID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectExec(`UPDATE "coupons" SET "usage_count"=usage_count \+ 1`).
			WithArgs(tenantID, couponID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "coupons" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, couponID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.IncrementUsage(context.Background(), tenantID, couponID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCouponRepository_Delete(t *testing.T) {
	t.Run("reports not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCouponRepository(t)
		defer mockDB.Close()

		couponID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectExec(`DELETE FROM "coupons" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, couponID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), tenantID, couponID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
