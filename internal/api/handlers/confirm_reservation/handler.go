package confirm_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	"github.com/m04kA/M4Y-RentalService/internal/api/middleware"
	confirmReservation "github.com/m04kA/M4Y-RentalService/internal/usecase/confirm_reservation"
)

const (
	msgUnauthorized         = "пользователь не авторизован"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotConfirm        = "бронирование не может быть подтверждено"
	msgVehicleUnavailable   = "автомобиль недоступен на выбранные даты"
	msgConcurrent           = "бронирование уже подтверждается, повторите запрос"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/confirm - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmReservation.ErrCannotConfirm):
			handlers.RespondConflict(w, msgCannotConfirm)

		case errors.Is(err, confirmReservation.ErrVehicleUnavailable):
			h.logger.Warn("POST /reservations/{id}/confirm - No tariff at pickup: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgVehicleUnavailable)

		case errors.Is(err, confirmReservation.ErrConcurrentConfirmation):
			h.logger.Warn("POST /reservations/{id}/confirm - Concurrent confirmation: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConcurrent)

		case errors.Is(err, confirmReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed to confirm reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Reservation confirmed: reservation_id=%d, total=%s, already_confirmed=%t",
		reservationID, result.Reservation.Total.StringFixed(2), result.AlreadyConfirmed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
