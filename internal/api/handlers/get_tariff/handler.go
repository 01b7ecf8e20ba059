package get_tariff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	"github.com/m04kA/M4Y-RentalService/internal/service/catalog"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

const (
	msgInvalidVehicleID   = "некорректный ID автомобиля"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVehicleNotFound    = "автомобиль не найден"
	msgVehicleUnavailable = "автомобиль недоступен на выбранные даты"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/tariff?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil || vehicleID <= 0 {
		h.logger.Warn("GET /vehicles/{vehicleId}/tariff - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	var onDate *types.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := types.NewDateFromString(raw)
		if err != nil {
			h.logger.Warn("GET /vehicles/{vehicleId}/tariff - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		onDate = &date
	}

	tariff, err := h.service.GetTariff(r.Context(), vehicleID, onDate)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{vehicleId}/tariff - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)
		case errors.Is(err, catalog.ErrTariffNotFound):
			h.logger.Warn("GET /vehicles/{vehicleId}/tariff - No tariff: vehicle_id=%d", vehicleID)
			handlers.RespondConflict(w, msgVehicleUnavailable)
		default:
			h.logger.Error("GET /vehicles/{vehicleId}/tariff - Failed to get tariff: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles/{vehicleId}/tariff - Tariff resolved: vehicle_id=%d, tariff_id=%d", vehicleID, tariff.TariffID)
	handlers.RespondJSON(w, http.StatusOK, tariff)
}
