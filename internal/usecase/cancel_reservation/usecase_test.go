package cancel_reservation

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
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/M4Y-RentalService/pkg/logger"
	"github.com/m04kA/M4Y-RentalService/pkg/ptr"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	return m.Called(ctx, id, reason, cancelledAt).Error(0)
}

type mockPenaltyService struct{ mock.Mock }

func (m *mockPenaltyService) Assess(ctx context.Context, r *domain.Reservation, event domain.EventType, at time.Time) (*domain.Penalty, bool, error) {
	args := m.Called(ctx, r, event, at)
	if p := args.Get(0); p != nil {
		return p.(*domain.Penalty), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockPenaltyService) Notify(ctx context.Context, penalty *domain.Penalty) {
	m.Called(ctx, penalty)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	uc           *UseCase
	reservations *mockReservationRepo
	penalties    *mockPenaltyService
	publisher    *mockPublisher
}

// за 10 часов до выдачи
var now = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		penalties:    &mockPenaltyService{},
		publisher:    &mockPublisher{},
	}
	f.uc = NewUseCase(f.reservations, f.penalties, passThroughTx{}, f.publisher, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func reservationWithStatus(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              7,
		UserID:          1001,
		PickupAt:        time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
		DropoffAt:       time.Date(2025, 5, 23, 10, 0, 0, 0, time.UTC),
		PaymentPolicyID: ptr.Ptr(int64(1)),
		Status:          status,
		Total:           decimal.RequireFromString("181.50"),
	}
}

func TestExecute_ConfirmedWithPenalty(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	reason := ptr.Ptr("change of plans")
	penalty := &domain.Penalty{ID: 100, ReservationID: 7, EventType: domain.EventCancellation, Amount: decimal.RequireFromString("90.75"), AppliedAt: now}

	f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusConfirmed), nil)
	f.penalties.On("Assess", ctx, mock.Anything, domain.EventCancellation, now).Return(penalty, true, nil)
	f.reservations.On("Cancel", ctx, int64(7), reason, now).Return(nil)
	f.penalties.On("Notify", ctx, penalty).Return()
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeReservationCancelled
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001, Reason: reason})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Reservation.Status)
	assert.Equal(t, reason, resp.Reservation.CancellationReason)
	require.NotNil(t, resp.Penalty)
	assert.Equal(t, "90.75", resp.Penalty.Amount.StringFixed(2))

	f.penalties.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestExecute_ConfirmedFreeCancellation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusConfirmed), nil)
	f.penalties.On("Assess", ctx, mock.Anything, domain.EventCancellation, now).Return(nil, false, nil)
	f.reservations.On("Cancel", ctx, int64(7), (*string)(nil), now).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.Nil(t, resp.Penalty)
	f.penalties.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestExecute_PendingIsFree(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusPending), nil)
	f.reservations.On("Cancel", ctx, int64(7), (*string)(nil), now).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.Nil(t, resp.Penalty)
	assert.Equal(t, domain.StatusCancelled, resp.Reservation.Status)
	f.penalties.AssertNotCalled(t, "Assess", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_RepeatedPenaltyIsNotNotifiedTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	existing := &domain.Penalty{ID: 100, Amount: decimal.RequireFromString("90.75")}

	f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusConfirmed), nil)
	f.penalties.On("Assess", ctx, mock.Anything, domain.EventCancellation, now).Return(existing, false, nil)
	f.reservations.On("Cancel", ctx, int64(7), mock.Anything, now).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
	require.NoError(t, err)
	assert.Same(t, existing, resp.Penalty)
	f.penalties.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusCancelled), nil)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		f.reservations.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other user", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusConfirmed), nil)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 2002})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("penalty assessment failure rolls back", func(t *testing.T) {
		f := newFixture()
		f.reservations.On("GetByID", ctx, int64(7)).Return(reservationWithStatus(domain.StatusConfirmed), nil)
		f.penalties.On("Assess", ctx, mock.Anything, domain.EventCancellation, now).Return(nil, false, errors.New("db down"))

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001})
		assert.ErrorIs(t, err, ErrInternal)
		f.reservations.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture()
		long := make([]rune, domain.MaxCancellationReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}

		_, err := f.uc.Execute(ctx, &Request{ReservationID: 7, UserID: 1001, Reason: ptr.Ptr(string(long))})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
