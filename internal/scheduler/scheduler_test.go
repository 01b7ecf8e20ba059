package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/M4Y-RentalService/pkg/logger"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

type mockPromotionRepo struct{ mock.Mock }

func (m *mockPromotionRepo) DeactivateExpired(ctx context.Context, today types.Date) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newRunner(repo PromotionRepository) *JobRunner {
	jr := NewJobRunner(repo, logger.NewNop())
	jr.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 0, 15, 0, 0, time.UTC)}
	return jr
}

func TestDeactivateExpiredPromotions_UsesTodayUTC(t *testing.T) {
	repo := &mockPromotionRepo{}
	repo.On("DeactivateExpired", mock.Anything, types.NewDate(2025, 6, 1)).Return(int64(2), nil)

	newRunner(repo).DeactivateExpiredPromotions()

	repo.AssertExpectations(t)
}

func TestDeactivateExpiredPromotions_RepositoryErrorIsSwallowed(t *testing.T) {
	repo := &mockPromotionRepo{}
	repo.On("DeactivateExpired", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	assert.NotPanics(t, newRunner(repo).DeactivateExpiredPromotions)
	repo.AssertExpectations(t)
}

func TestRunWithRecovery_RecoversPanic(t *testing.T) {
	jr := newRunner(&mockPromotionRepo{})

	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func(ctx context.Context) {
			panic("unexpected")
		})
	})
}

func TestNewScheduler(t *testing.T) {
	jr := newRunner(&mockPromotionRepo{})

	s, err := NewScheduler(Config{ExpirePromotionsSpec: "0 15 0 * * *"}, jr, logger.NewNop())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)

	s.Start()
	s.Stop()

	_, err = NewScheduler(Config{ExpirePromotionsSpec: "every night"}, jr, logger.NewNop())
	assert.Error(t, err)
}
