package get_payment_policy

import (
	"context"

	"github.com/m04kA/M4Y-RentalService/internal/service/catalog/models"
)

type CatalogService interface {
	GetPolicy(ctx context.Context, policyID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
