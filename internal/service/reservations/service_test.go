package reservations

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
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
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

func (m *mockReservationRepo) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, status)
	if r := args.Get(0); r != nil {
		return r.([]*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPenaltyRepo struct{ mock.Mock }

func (m *mockPenaltyRepo) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Penalty, error) {
	args := m.Called(ctx, reservationID)
	if r := args.Get(0); r != nil {
		return r.([]*domain.Penalty), args.Error(1)
	}
	return nil, args.Error(1)
}

func confirmedReservation() *domain.Reservation {
	confirmedAt := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:          7,
		UserID:      1001,
		VehicleID:   3,
		PickupAt:    time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
		DropoffAt:   time.Date(2025, 5, 23, 10, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
		PricePerDay: decimal.RequireFromString("50"),
		Days:        3,
		Discount:    decimal.Zero,
		Subtotal:    decimal.RequireFromString("150"),
		Tax:         decimal.RequireFromString("31.5"),
		Total:       decimal.RequireFromString("181.5"),
		ConfirmedAt: &confirmedAt,
	}
}

func newService() (*Service, *mockReservationRepo, *mockPenaltyRepo) {
	resRepo := &mockReservationRepo{}
	penRepo := &mockPenaltyRepo{}
	return NewService(resRepo, penRepo, logger.NewNop()), resRepo, penRepo
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner gets priced snapshot", func(t *testing.T) {
		svc, resRepo, _ := newService()
		resRepo.On("GetByID", ctx, int64(7)).Return(confirmedReservation(), nil)

		resp, err := svc.GetByID(ctx, 7, 1001)
		require.NoError(t, err)
		require.NotNil(t, resp.Price)
		assert.Equal(t, "181.50", resp.Price.Total)
		assert.Equal(t, "31.50", resp.Price.Tax)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, "2025-05-20T10:00:00Z", resp.PickupAt)
	})

	t.Run("other user is denied", func(t *testing.T) {
		svc, resRepo, _ := newService()
		resRepo.On("GetByID", ctx, int64(7)).Return(confirmedReservation(), nil)

		_, err := svc.GetByID(ctx, 7, 2002)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, resRepo, _ := newService()
		resRepo.On("GetByID", ctx, int64(7)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := svc.GetByID(ctx, 7, 1001)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, resRepo, _ := newService()
		resRepo.On("GetByID", ctx, int64(7)).Return(nil, errors.New("connection reset"))

		_, err := svc.GetByID(ctx, 7, 1001)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetByID_PendingHasNoPrice(t *testing.T) {
	ctx := context.Background()
	svc, resRepo, _ := newService()
	resRepo.On("GetByID", ctx, int64(8)).Return(&domain.Reservation{ID: 8, UserID: 1001, Status: domain.StatusPending}, nil)

	resp, err := svc.GetByID(ctx, 8, 1001)
	require.NoError(t, err)
	assert.Nil(t, resp.Price)
}

func TestGetUserReservations(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status", func(t *testing.T) {
		svc, resRepo, _ := newService()
		status := domain.StatusConfirmed
		resRepo.On("GetByUserID", ctx, int64(1001), &status).Return([]*domain.Reservation{confirmedReservation()}, nil)

		resp, err := svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: 1001, Status: ptr.Ptr("confirmed")})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		svc, resRepo, _ := newService()
		resRepo.On("GetByUserID", ctx, int64(1001), (*domain.ReservationStatus)(nil)).Return(nil, nil)

		resp, err := svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: 1001})
		require.NoError(t, err)
		assert.NotNil(t, resp.Reservations)
		assert.Empty(t, resp.Reservations)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: 1001, Status: ptr.Ptr("archived")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListPenalties(t *testing.T) {
	ctx := context.Background()
	svc, resRepo, penRepo := newService()
	resRepo.On("GetByID", ctx, int64(7)).Return(confirmedReservation(), nil)
	penRepo.On("ListByReservation", ctx, int64(7)).Return([]*domain.Penalty{{
		ID:            1,
		ReservationID: 7,
		PenaltyTypeID: 2,
		EventType:     domain.EventCancellation,
		Amount:        decimal.RequireFromString("90.75"),
		AppliedAt:     time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
	}}, nil)

	resp, err := svc.ListPenalties(ctx, 7, 1001)
	require.NoError(t, err)
	require.Len(t, resp.Penalties, 1)
	assert.Equal(t, "90.75", resp.Penalties[0].Amount)
	assert.Equal(t, "cancellation", resp.Penalties[0].EventType)
	penRepo.AssertExpectations(t)
}
