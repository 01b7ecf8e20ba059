package confirm_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/infra/events"
	promotionRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/promotion"
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/M4Y-RentalService/internal/pricing"
	"github.com/m04kA/M4Y-RentalService/pkg/logger"
	"github.com/m04kA/M4Y-RentalService/pkg/ptr"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) SaveConfirmation(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

type mockPromotionRepo struct{ mock.Mock }

func (m *mockPromotionRepo) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Promotion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPromotionRepo) ClaimUsage(ctx context.Context, promotionID, reservationID int64, today types.Date) (bool, error) {
	args := m.Called(ctx, promotionID, reservationID, today)
	return args.Bool(0), args.Error(1)
}

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(ctx context.Context, vehicleID int64, onDate types.Date) (*domain.Tariff, error) {
	args := m.Called(ctx, vehicleID, onDate)
	if t := args.Get(0); t != nil {
		return t.(*domain.Tariff), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

// passThroughTx выполняет функцию без реальной транзакции
type passThroughTx struct{ calls int }

func (p *passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type recordingMetrics struct{ confirmed []bool }

func (r *recordingMetrics) ObserveReservationConfirmed(promotionApplied bool) {
	r.confirmed = append(r.confirmed, promotionApplied)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc           *UseCase
	reservations *mockReservationRepo
	promotions   *mockPromotionRepo
	resolver     *mockResolver
	publisher    *mockPublisher
	tx           *passThroughTx
	metrics      *recordingMetrics
}

var now = time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		promotions:   &mockPromotionRepo{},
		resolver:     &mockResolver{},
		publisher:    &mockPublisher{},
		tx:           &passThroughTx{},
		metrics:      &recordingMetrics{},
	}
	f.uc = NewUseCase(
		f.reservations,
		f.promotions,
		f.resolver,
		pricing.NewCalculator(decimal.RequireFromString("0.21")),
		f.tx,
		f.publisher,
		f.metrics,
		logger.NewNop(),
	)
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        7,
		UserID:    1001,
		VehicleID: 3,
		PickupAt:  time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
		DropoffAt: time.Date(2025, 5, 23, 10, 0, 0, 0, time.UTC),
		Status:    domain.StatusPending,
	}
}

func (f *fixture) withTariff(ctx context.Context) {
	f.resolver.On("Resolve", ctx, int64(3), types.NewDate(2025, 5, 20)).Return(&domain.Tariff{
		ID: 11, PricePerDay: decimal.RequireFromString("50.00"),
	}, nil)
}

func springPromotion() *domain.Promotion {
	return &domain.Promotion{
		ID:              4,
		Code:            "SPRING10",
		DiscountPercent: decimal.NewFromInt(10),
		StartDate:       types.NewDate(2025, 5, 1),
		EndDate:         types.NewDate(2025, 5, 31),
		Active:          true,
		UsageLimit:      ptr.Ptr(1),
		UsageCount:      0,
	}
}

func TestExecute_PricesAndConfirms(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.reservations.On("GetByID", ctx, int64(7)).Return(pendingReservation(), nil)
	f.withTariff(ctx)
	f.reservations.On("SaveConfirmation", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.StatusConfirmed && r.Total.Equal(decimal.RequireFromString("181.50"))
	})).Return(nil)
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeReservationConfirmed
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyConfirmed)

	r := resp.Reservation
	assert.Equal(t, domain.StatusConfirmed, r.Status)
	assert.Equal(t, 3, r.Days)
	assert.Equal(t, "150.00", r.Subtotal.StringFixed(2))
	assert.Equal(t, "31.50", r.Tax.StringFixed(2))
	assert.Equal(t, "181.50", r.Total.StringFixed(2))
	require.NotNil(t, r.ConfirmedAt)
	assert.Equal(t, now, *r.ConfirmedAt)

	assert.Equal(t, []bool{false}, f.metrics.confirmed)
	assert.Equal(t, 1, f.tx.calls)
	f.reservations.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.promotions.AssertNotCalled(t, "ClaimUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ClaimsLastPromotionSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	r := pendingReservation()
	r.PromotionID = ptr.Ptr(int64(4))

	f.reservations.On("GetByID", ctx, int64(7)).Return(r, nil)
	f.withTariff(ctx)
	f.promotions.On("GetByID", ctx, int64(4)).Return(springPromotion(), nil)
	f.promotions.On("ClaimUsage", ctx, int64(4), int64(7), types.NewDate(2025, 5, 10)).Return(true, nil)
	f.reservations.On("SaveConfirmation", ctx, mock.Anything).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.True(t, resp.Reservation.PromotionApplied)
	assert.Equal(t, "15.00", resp.Reservation.Discount.StringFixed(2))
	assert.Equal(t, "163.35", resp.Reservation.Total.StringFixed(2))
	assert.Equal(t, []bool{true}, f.metrics.confirmed)
}

func TestExecute_PromotionNotClaimedPricesWithoutDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	r := pendingReservation()
	r.PromotionID = ptr.Ptr(int64(4))

	f.reservations.On("GetByID", ctx, int64(7)).Return(r, nil)
	f.withTariff(ctx)
	f.promotions.On("GetByID", ctx, int64(4)).Return(springPromotion(), nil)
	f.promotions.On("ClaimUsage", ctx, int64(4), int64(7), mock.Anything).Return(false, nil)
	f.reservations.On("SaveConfirmation", ctx, mock.Anything).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.False(t, resp.Reservation.PromotionApplied)
	assert.Equal(t, "181.50", resp.Reservation.Total.StringFixed(2))
}

func TestExecute_ConcurrentClaim(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	r := pendingReservation()
	r.PromotionID = ptr.Ptr(int64(4))

	f.reservations.On("GetByID", ctx, int64(7)).Return(r, nil)
	f.withTariff(ctx)
	f.promotions.On("GetByID", ctx, int64(4)).Return(springPromotion(), nil)
	f.promotions.On("ClaimUsage", ctx, int64(4), int64(7), mock.Anything).Return(false, promotionRepo.ErrDuplicateUsage)

	_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	assert.ErrorIs(t, err, ErrConcurrentConfirmation)
	f.reservations.AssertNotCalled(t, "SaveConfirmation", mock.Anything, mock.Anything)
}

func TestExecute_AlreadyConfirmedReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	confirmedAt := now.Add(-time.Hour)
	stored := pendingReservation()
	stored.Status = domain.StatusConfirmed
	stored.Total = decimal.RequireFromString("181.50")
	stored.ConfirmedAt = &confirmedAt

	f.reservations.On("GetByID", ctx, int64(7)).Return(stored, nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyConfirmed)
	assert.Same(t, stored, resp.Reservation)

	f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	f.reservations.AssertNotCalled(t, "SaveConfirmation", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Empty(t, f.metrics.confirmed)
}

func TestExecute_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled reservation", func(t *testing.T) {
		f := newFixture()
		r := pendingReservation()
		r.Status = domain.StatusCancelled
		f.reservations.On("GetByID", ctx, int64(7)).Return(r, nil)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrCannotConfirm)
	})

	t.Run("other user", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(pendingReservation(), nil)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 2002})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("no tariff on pickup date", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(pendingReservation(), nil)
		f.resolver.On("Resolve", ctx, int64(3), mock.Anything).Return(nil, pricing.ErrTariffNotFound)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrVehicleUnavailable)
	})

	t.Run("status changed before save", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(pendingReservation(), nil)
		f.withTariff(ctx)
		f.reservations.On("SaveConfirmation", ctx, mock.Anything).Return(reservationRepo.ErrStatusConflict)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrCannotConfirm)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 0, UserID: 1001})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, f.tx.calls)
	})
}

func TestExecute_PublishFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.reservations.On("GetByID", ctx, int64(7)).Return(pendingReservation(), nil)
	f.withTariff(ctx)
	f.reservations.On("SaveConfirmation", ctx, mock.Anything).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("channel closed"))

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
}
