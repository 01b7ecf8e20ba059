package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	quotePrice "github.com/m04kA/M4Y-RentalService/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты и времени, ожидается RFC 3339"
	msgInvalidInput       = "некорректные параметры запроса"
	msgInvalidPeriod      = "дата сдачи должна быть позже даты выдачи"
	msgVehicleNotFound    = "автомобиль не найден"
	msgVehicleUnavailable = "автомобиль недоступен на выбранные даты"
	msgPromotionNotFound  = "промокод не найден"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidPeriod):
			handlers.RespondBadRequest(w, msgInvalidPeriod)
		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, quotePrice.ErrVehicleNotFound):
			handlers.RespondNotFound(w, msgVehicleNotFound)
		case errors.Is(err, quotePrice.ErrPromotionNotFound):
			handlers.RespondNotFound(w, msgPromotionNotFound)
		case errors.Is(err, quotePrice.ErrVehicleUnavailable):
			handlers.RespondConflict(w, msgVehicleUnavailable)
		default:
			h.logger.Error("POST /quotes - Failed to quote price: vehicle_id=%d, error=%v", req.VehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: vehicle_id=%d, total=%s", result.VehicleID, result.Price.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
