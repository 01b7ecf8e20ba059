package reservation

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/ptr"
)

var (
	pickup  = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	dropoff = time.Date(2025, 5, 23, 10, 0, 0, 0, time.UTC)
)

func newRepository(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func confirmedRow() *sqlmock.Rows {
	confirmedAt := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(reservationColumns).AddRow(
		int64(42), int64(1001), int64(7), int64(1), int64(2), pickup, dropoff,
		int64(3), nil, "confirmed",
		"50.00", int64(3), "0.00", "150.00", "31.50", "181.50", false,
		"child seat", nil, confirmedAt, nil, confirmedAt, confirmedAt,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepository(t)
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (user_id,vehicle_id,pickup_place_id,dropoff_place_id,pickup_at,dropoff_at,payment_policy_id,promotion_id,status,notes) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id, created_at, updated_at")).
		WithArgs(int64(1001), int64(7), int64(1), int64(2), pickup, dropoff, int64(3), nil, "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Reservation{
		UserID:          1001,
		VehicleID:       7,
		PickupPlaceID:   1,
		DropoffPlaceID:  2,
		PickupAt:        pickup,
		DropoffAt:       dropoff,
		PaymentPolicyID: ptr.Ptr(int64(3)),
		Status:          domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ForeignKeyViolation(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: foreignKeyViolation, Constraint: "reservations_pickup_place_id_fkey"})

	_, err := repo.Create(context.Background(), &domain.Reservation{Status: domain.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Contains(t, err.Error(), "pickup_place_id")
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(confirmedRow())

	reservation, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, reservation.Status)
	assert.True(t, reservation.IsPriced())
	assert.True(t, reservation.Total.Equal(decimal.RequireFromString("181.50")))
	assert.Equal(t, 3, reservation.Days)
	require.NotNil(t, reservation.PaymentPolicyID)
	assert.Equal(t, int64(3), *reservation.PaymentPolicyID)
	assert.Nil(t, reservation.PromotionID)
	require.NotNil(t, reservation.Notes)
	assert.Equal(t, "child seat", *reservation.Notes)
	assert.Nil(t, reservation.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksRowInTransaction(t *testing.T) {
	repo, db, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(42)).
		WillReturnRows(confirmedRow())
	mock.ExpectRollback()

	tx, err := dbmetrics.Wrap(db, nil, "test").BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 42)
	require.NoError(t, err)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("FROM reservations").
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE user_id = $1 AND status = $2 ORDER BY pickup_at DESC, id DESC")).
		WithArgs(int64(1001), "confirmed").
		WillReturnRows(confirmedRow())

	status := domain.StatusConfirmed
	reservations, err := repo.GetByUserID(context.Background(), 1001, &status)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveConfirmation(t *testing.T) {
	repo, _, mock := newRepository(t)
	confirmedAt := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	reservation := &domain.Reservation{ID: 42, ConfirmedAt: &confirmedAt}
	reservation.ApplyPrice(domain.PriceBreakdown{
		DailyRate: decimal.RequireFromString("50.00"),
		Days:      3,
		Discount:  decimal.Zero,
		Subtotal:  decimal.RequireFromString("150.00"),
		Tax:       decimal.RequireFromString("31.50"),
		Total:     decimal.RequireFromString("181.50"),
	})

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SaveConfirmation(context.Background(), reservation))

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $10 AND status = $11")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SaveConfirmation(context.Background(), reservation), ErrStatusConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepository(t)
	cancelledAt := time.Date(2025, 5, 19, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = $1, cancellation_reason = $2, cancelled_at = $3, updated_at = NOW() WHERE id = $4 AND status IN ($5,$6)")).
		WithArgs("cancelled", "plans changed", cancelledAt, int64(42), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 42, ptr.Ptr("plans changed"), cancelledAt))

	mock.ExpectExec("UPDATE reservations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Cancel(context.Background(), 42, nil, cancelledAt), ErrStatusConflict)

	assert.NoError(t, mock.ExpectationsWereMet())
}
