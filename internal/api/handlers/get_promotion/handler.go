package get_promotion

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/internal/service/catalog"
)

const (
	msgInvalidCode       = "некорректный промокод"
	msgPromotionNotFound = "промокод не найден"
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

// Handle GET /api/v1/promotions/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(mux.Vars(r)["code"])
	if code == "" || len(code) > domain.MaxPromotionCodeLength {
		h.logger.Warn("GET /promotions/{code} - Invalid code: %q", code)
		handlers.RespondBadRequest(w, msgInvalidCode)
		return
	}

	promotion, err := h.service.GetPromotion(r.Context(), code)
	if err != nil {
		if errors.Is(err, catalog.ErrPromotionNotFound) {
			h.logger.Warn("GET /promotions/{code} - Promotion not found: code=%s", code)
			handlers.RespondNotFound(w, msgPromotionNotFound)
			return
		}
		h.logger.Error("GET /promotions/{code} - Failed to get promotion: code=%s, error=%v", code, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /promotions/{code} - Promotion found: code=%s, in_effect=%t", code, promotion.InEffect)
	handlers.RespondJSON(w, http.StatusOK, promotion)
}
