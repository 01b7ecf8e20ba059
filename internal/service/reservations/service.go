package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/M4Y-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/M4Y-RentalService/internal/service/reservations/models"
)

// Service сервис чтения бронирований и начисленных штрафов
type Service struct {
	reservationRepo ReservationRepository
	penaltyRepo     PenaltyRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	penaltyRepo PenaltyRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		penaltyRepo:     penaltyRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getOwned(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает бронирования пользователя, опционально фильтруя по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// ListPenalties возвращает штрафы, начисленные по бронированию пользователя
func (s *Service) ListPenalties(ctx context.Context, reservationID int64, userID int64) (*models.PenaltyListResponse, error) {
	s.logger.Info("ListPenalties: fetching penalties for reservation id=%d, user=%d", reservationID, userID)

	if _, err := s.getOwned(ctx, "ListPenalties", reservationID, userID); err != nil {
		return nil, err
	}

	penalties, err := s.penaltyRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		s.logger.Error("ListPenalties: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: ListPenalties - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPenalties: found %d penalties for reservation id=%d", len(penalties), reservationID)
	return models.FromDomainPenaltyList(penalties), nil
}

func (s *Service) getOwned(ctx context.Context, op string, id int64, userID int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if reservation.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to reservation id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return reservation, nil
}
