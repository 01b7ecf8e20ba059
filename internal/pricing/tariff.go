package pricing

import (
	"context"
	"fmt"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// TariffSource loads every tariff of a vehicle, historical ones included
type TariffSource interface {
	GetTariffs(ctx context.Context, vehicleID int64) ([]domain.Tariff, error)
}

// TariffResolver picks the daily rate in effect for a vehicle on a date
type TariffResolver struct {
	source TariffSource
}

// NewTariffResolver creates a resolver on top of a tariff source
func NewTariffResolver(source TariffSource) *TariffResolver {
	return &TariffResolver{source: source}
}

// Resolve returns the tariff in effect for vehicleID on onDate.
// Returns ErrTariffNotFound if no tariff covers the date.
func (r *TariffResolver) Resolve(ctx context.Context, vehicleID int64, onDate types.Date) (*domain.Tariff, error) {
	tariffs, err := r.source.GetTariffs(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("pricing: load tariffs for vehicle %d: %w", vehicleID, err)
	}

	return SelectTariff(tariffs, onDate)
}

// SelectTariff returns the tariff covering onDate.
//
// When several tariffs overlap, the one with the latest ValidFrom wins, so an
// open-ended tariff yields to any newer tariff covering the same date. On equal
// ValidFrom a bounded tariff beats an open-ended one, then the greatest ID wins.
func SelectTariff(tariffs []domain.Tariff, onDate types.Date) (*domain.Tariff, error) {
	var best *domain.Tariff
	for i := range tariffs {
		candidate := &tariffs[i]
		if !candidate.Covers(onDate) {
			continue
		}
		if best == nil || outranks(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrTariffNotFound
	}

	result := *best
	return &result, nil
}

func outranks(a, b *domain.Tariff) bool {
	if !a.ValidFrom.Equal(b.ValidFrom) {
		return a.ValidFrom.IsAfter(b.ValidFrom)
	}
	if a.IsOpenEnded() != b.IsOpenEnded() {
		return !a.IsOpenEnded()
	}
	return a.ID > b.ID
}
