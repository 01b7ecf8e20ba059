package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/ptr"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

type stubTariffSource struct {
	tariffs []domain.Tariff
	err     error
}

func (s *stubTariffSource) GetTariffs(ctx context.Context, vehicleID int64) ([]domain.Tariff, error) {
	return s.tariffs, s.err
}

func TestSelectTariff(t *testing.T) {
	may1 := types.NewDate(2025, 5, 1)
	may15 := types.NewDate(2025, 5, 15)

	tests := []struct {
		name    string
		tariffs []domain.Tariff
		date    types.Date
		wantID  int64
		wantErr error
	}{
		{
			name:    "no tariffs",
			date:    may15,
			wantErr: ErrTariffNotFound,
		},
		{
			name: "single bounded tariff covers date",
			tariffs: []domain.Tariff{
				{ID: 1, ValidFrom: may1, ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 31)), PricePerDay: money("50")},
			},
			date:   may15,
			wantID: 1,
		},
		{
			name: "inclusive upper bound",
			tariffs: []domain.Tariff{
				{ID: 1, ValidFrom: may1, ValidUntil: ptr.Ptr(may15)},
			},
			date:   may15,
			wantID: 1,
		},
		{
			name: "tariff expired before date",
			tariffs: []domain.Tariff{
				{ID: 1, ValidFrom: may1, ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 14))},
			},
			date:    may15,
			wantErr: ErrTariffNotFound,
		},
		{
			name: "tariff starts after date",
			tariffs: []domain.Tariff{
				{ID: 1, ValidFrom: types.NewDate(2025, 5, 16)},
			},
			date:    may15,
			wantErr: ErrTariffNotFound,
		},
		{
			name: "overlap resolved by latest valid from",
			tariffs: []domain.Tariff{
				{ID: 7, ValidFrom: may1, ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 31))},
				{ID: 3, ValidFrom: types.NewDate(2025, 5, 10), ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 20))},
			},
			date:   may15,
			wantID: 3,
		},
		{
			name: "open ended loses to newer explicit tariff",
			tariffs: []domain.Tariff{
				{ID: 1, ValidFrom: types.NewDate(2024, 1, 1)},
				{ID: 2, ValidFrom: may1, ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 31))},
			},
			date:   may15,
			wantID: 2,
		},
		{
			name: "newer open ended wins over older bounded",
			tariffs: []domain.Tariff{
				{ID: 1, ValidFrom: types.NewDate(2024, 1, 1), ValidUntil: ptr.Ptr(types.NewDate(2025, 12, 31))},
				{ID: 2, ValidFrom: may1},
			},
			date:   may15,
			wantID: 2,
		},
		{
			name: "same valid from prefers bounded",
			tariffs: []domain.Tariff{
				{ID: 9, ValidFrom: may1},
				{ID: 4, ValidFrom: may1, ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 31))},
			},
			date:   may15,
			wantID: 4,
		},
		{
			name: "same valid from and bounds prefers greatest id",
			tariffs: []domain.Tariff{
				{ID: 4, ValidFrom: may1},
				{ID: 9, ValidFrom: may1},
				{ID: 6, ValidFrom: may1},
			},
			date:   may15,
			wantID: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTariff(tt.tariffs, tt.date)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestSelectTariff_OrderIndependent(t *testing.T) {
	date := types.NewDate(2025, 5, 15)
	a := domain.Tariff{ID: 1, ValidFrom: types.NewDate(2025, 5, 1)}
	b := domain.Tariff{ID: 2, ValidFrom: types.NewDate(2025, 5, 10), ValidUntil: ptr.Ptr(types.NewDate(2025, 5, 20))}

	first, err := SelectTariff([]domain.Tariff{a, b}, date)
	require.NoError(t, err)
	second, err := SelectTariff([]domain.Tariff{b, a}, date)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestTariffResolver_Resolve(t *testing.T) {
	source := &stubTariffSource{
		tariffs: []domain.Tariff{
			{ID: 1, VehicleID: 10, ValidFrom: types.NewDate(2025, 1, 1), PricePerDay: money("50.00")},
		},
	}
	resolver := NewTariffResolver(source)

	tariff, err := resolver.Resolve(context.Background(), 10, types.NewDate(2025, 5, 20))
	require.NoError(t, err)
	assertMoney(t, "50.00", tariff.PricePerDay)

	_, err = resolver.Resolve(context.Background(), 10, types.NewDate(2024, 12, 31))
	assert.ErrorIs(t, err, ErrTariffNotFound)
}

func TestTariffResolver_SourceError(t *testing.T) {
	boom := errors.New("connection refused")
	resolver := NewTariffResolver(&stubTariffSource{err: boom})

	_, err := resolver.Resolve(context.Background(), 10, types.NewDate(2025, 5, 20))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTariffNotFound)
}
