package get_payment_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/M4Y-RentalService/internal/api/handlers"
	"github.com/m04kA/M4Y-RentalService/internal/service/catalog"
)

const (
	msgInvalidPolicyID = "некорректный ID платежной политики"
	msgPolicyNotFound  = "платежная политика не найдена"
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

// Handle GET /api/v1/payment-policies/{policyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	policyID, err := strconv.ParseInt(mux.Vars(r)["policyId"], 10, 64)
	if err != nil || policyID <= 0 {
		h.logger.Warn("GET /payment-policies/{policyId} - Invalid policy ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPolicyID)
		return
	}

	policy, err := h.service.GetPolicy(r.Context(), policyID)
	if err != nil {
		if errors.Is(err, catalog.ErrPolicyNotFound) {
			h.logger.Warn("GET /payment-policies/{policyId} - Policy not found: policy_id=%d", policyID)
			handlers.RespondNotFound(w, msgPolicyNotFound)
			return
		}
		h.logger.Error("GET /payment-policies/{policyId} - Failed to get policy: policy_id=%d, error=%v", policyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, policy)
}
