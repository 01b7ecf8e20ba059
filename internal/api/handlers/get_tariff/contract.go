package get_tariff

import (
	"context"

	"github.com/m04kA/M4Y-RentalService/internal/service/catalog/models"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

type CatalogService interface {
	GetTariff(ctx context.Context, vehicleID int64, onDate *types.Date) (*models.TariffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
