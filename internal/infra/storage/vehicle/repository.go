package vehicle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/psqlbuilder"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// Repository репозиторий каталога автомобилей, тарифов и пунктов проката
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает автомобиль вместе с его группой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"v.id",
		"v.category",
		"v.make",
		"v.model",
		"v.fuel_type",
		"v.seats",
		"v.active",
		"v.created_at",
		"v.updated_at",
		"g.id",
		"g.name",
		"g.min_driver_age",
	).
		From("vehicles v").
		Join("vehicle_groups g ON g.id = v.group_id").
		Where(squirrel.Eq{"v.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var vehicle domain.Vehicle
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vehicle.ID,
		&vehicle.Category,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.FuelType,
		&vehicle.Seats,
		&vehicle.Active,
		&createdAt,
		&updatedAt,
		&vehicle.Group.ID,
		&vehicle.Group.Name,
		&vehicle.Group.MinDriverAge,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vehicle: %v", ErrScanRow, err)
	}

	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return &vehicle, nil
}

// GetTariffs получает все тарифы автомобиля, включая исторические
// Выбор действующего тарифа выполняет pricing.SelectTariff
func (r *Repository) GetTariffs(ctx context.Context, vehicleID int64) ([]domain.Tariff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"vehicle_id",
		"valid_from",
		"valid_until",
		"price_per_day",
		"created_at",
	).
		From("tariffs").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("valid_from DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTariffs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTariffs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tariffs := make([]domain.Tariff, 0)
	for rows.Next() {
		var tariff domain.Tariff
		var validUntil types.Date
		var createdAt sql.NullTime

		if err := rows.Scan(
			&tariff.ID,
			&tariff.VehicleID,
			&tariff.ValidFrom,
			&validUntil,
			&tariff.PricePerDay,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetTariffs - scan tariff: %v", ErrScanRow, err)
		}

		if !validUntil.IsZero() {
			tariff.ValidUntil = &validUntil
		}
		tariff.CreatedAt = createdAt.Time

		tariffs = append(tariffs, tariff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTariffs - rows error: %v", ErrScanRow, err)
	}

	return tariffs, nil
}

// GetPlace получает пункт выдачи/возврата по ID
func (r *Repository) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "city", "address").
		From("places").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPlace - build select query: %v", ErrBuildQuery, err)
	}

	var place domain.Place
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&place.ID,
		&place.Name,
		&place.City,
		&place.Address,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPlaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPlace - scan place: %v", ErrScanRow, err)
	}

	return &place, nil
}
