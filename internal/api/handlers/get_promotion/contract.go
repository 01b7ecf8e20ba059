package get_promotion

import (
	"context"

	"github.com/m04kA/M4Y-RentalService/internal/service/catalog/models"
)

type CatalogService interface {
	GetPromotion(ctx context.Context, code string) (*models.PromotionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
