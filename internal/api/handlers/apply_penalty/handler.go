package apply_penalty

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	"github.com/m04kA/M4Y-RentalService/internal/api/middleware"
	applyPenalty "github.com/m04kA/M4Y-RentalService/internal/usecase/apply_penalty"
)

const (
	msgUnauthorized         = "пользователь не авторизован"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат времени события, ожидается RFC 3339"
	msgInvalidInput         = "некорректные параметры события"
	msgUnknownEvent         = "неизвестный тип события, ожидается modification или late_return"
	msgUnsupportedEvent     = "штраф за отмену начисляется только при отмене бронирования"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgNotConfirmed         = "бронирование не подтверждено"
)

type Handler struct {
	useCase ApplyPenaltyUseCase
	logger  Logger
}

func NewHandler(useCase ApplyPenaltyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/penalties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/penalties - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req ApplyPenaltyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/penalties - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, applyPenalty.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, applyPenalty.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/penalties - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, applyPenalty.ErrNotConfirmed):
			h.logger.Warn("POST /reservations/{id}/penalties - Reservation not confirmed: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, applyPenalty.ErrUnknownEvent):
			handlers.RespondBadRequest(w, msgUnknownEvent)

		case errors.Is(err, applyPenalty.ErrUnsupportedEvent):
			handlers.RespondBadRequest(w, msgUnsupportedEvent)

		case errors.Is(err, applyPenalty.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/penalties - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/penalties - Failed to apply penalty: reservation_id=%d, event=%s, error=%v",
				reservationID, req.EventType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /reservations/{id}/penalties - Penalty processed: reservation_id=%d, event=%s, user_id=%d, charged=%t, created=%t",
		reservationID, req.EventType, userID, result.Charged, result.Created)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
