package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	"github.com/m04kA/M4Y-RentalService/internal/api/middleware"
	createReservation "github.com/m04kA/M4Y-RentalService/internal/usecase/create_reservation"
)

const (
	msgUnauthorized           = "пользователь не авторизован"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateTime        = "некорректный формат даты и времени, ожидается RFC 3339"
	msgInvalidInput           = "некорректные параметры бронирования"
	msgInvalidPeriod          = "дата сдачи должна быть позже даты выдачи"
	msgPickupInPast           = "дата выдачи не может быть в прошлом"
	msgRentalTooLong          = "срок аренды превышает допустимый"
	msgVehicleNotFound        = "автомобиль не найден"
	msgPlaceNotFound          = "пункт выдачи или сдачи не найден"
	msgPolicyNotFound         = "платежная политика не найдена"
	msgPromotionNotFound      = "промокод не найден"
	msgPromotionNotApplicable = "промокод сейчас не действует"
	msgDriverNotFound         = "профиль водителя не найден"
	msgDriverTooYoung         = "возраст водителя меньше минимального для этой группы автомобилей"
	msgVehicleUnavailable     = "автомобиль недоступен на выбранные даты"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidPeriod):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, createReservation.ErrPickupInPast):
			handlers.RespondBadRequest(w, msgPickupInPast)

		case errors.Is(err, createReservation.ErrRentalTooLong):
			handlers.RespondBadRequest(w, msgRentalTooLong)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrVehicleNotFound):
			h.logger.Warn("POST /reservations - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createReservation.ErrPlaceNotFound):
			h.logger.Warn("POST /reservations - Place not found: pickup=%d, dropoff=%d", req.PickupPlaceID, req.DropoffPlaceID)
			handlers.RespondNotFound(w, msgPlaceNotFound)

		case errors.Is(err, createReservation.ErrPolicyNotFound):
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, createReservation.ErrPromotionNotFound):
			handlers.RespondNotFound(w, msgPromotionNotFound)

		case errors.Is(err, createReservation.ErrDriverNotFound):
			h.logger.Warn("POST /reservations - Driver profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgDriverNotFound)

		case errors.Is(err, createReservation.ErrPromotionNotApplicable):
			handlers.RespondBadRequest(w, msgPromotionNotApplicable)

		case errors.Is(err, createReservation.ErrDriverTooYoung):
			h.logger.Warn("POST /reservations - Driver too young: user_id=%d, vehicle_id=%d", userID, req.VehicleID)
			handlers.RespondBadRequest(w, msgDriverTooYoung)

		case errors.Is(err, createReservation.ErrVehicleUnavailable):
			h.logger.Warn("POST /reservations - Vehicle unavailable: vehicle_id=%d", req.VehicleID)
			handlers.RespondConflict(w, msgVehicleUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, vehicle_id=%d, error=%v",
				userID, req.VehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, vehicle_id=%d",
		result.Reservation.ID, userID, req.VehicleID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
