package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

func policyWith(rules ...domain.PolicyPenaltyRule) *domain.PaymentPolicy {
	return &domain.PaymentPolicy{ID: 1, Title: "Standard", PenaltyRules: rules}
}

func rule(id int64, event domain.EventType, kind domain.RateKind, value string, hours int) domain.PolicyPenaltyRule {
	return domain.PolicyPenaltyRule{
		ID:       id,
		PolicyID: 1,
		PenaltyType: domain.PenaltyType{
			ID:        id * 10,
			Name:      event,
			RateKind:  kind,
			RateValue: money(value),
		},
		HoursBeforeEvent: hours,
	}
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        42,
		PickupAt:  at("2025-05-20T10:00:00Z"),
		DropoffAt: at("2025-05-23T10:00:00Z"),
		Status:    domain.StatusConfirmed,
		Days:      3,
		Total:     money("181.50"),
	}
}

func TestEvaluate_CancellationScenario(t *testing.T) {
	evaluator := NewPenaltyEvaluator()
	policy := policyWith(rule(1, domain.EventCancellation, domain.RatePercentage, "50", 24))
	reservation := confirmedReservation()

	eventAt := reservation.PickupAt.Add(-10 * time.Hour)
	penalty, charged, err := evaluator.Evaluate(policy, domain.EventCancellation, reservation.HoursBefore(eventAt), reservation, eventAt)
	require.NoError(t, err)
	require.True(t, charged)
	assertMoney(t, "90.75", penalty.Amount)
	assert.Equal(t, int64(42), penalty.ReservationID)
	assert.Equal(t, int64(10), penalty.PenaltyTypeID)
	assert.Equal(t, domain.EventCancellation, penalty.EventType)
	assert.Equal(t, eventAt, penalty.AppliedAt)

	eventAt = reservation.PickupAt.Add(-48 * time.Hour)
	penalty, charged, err = evaluator.Evaluate(policy, domain.EventCancellation, reservation.HoursBefore(eventAt), reservation, eventAt)
	require.NoError(t, err)
	assert.False(t, charged)
	assert.Equal(t, domain.Penalty{}, penalty)
}

func TestEvaluate_ThresholdIsFree(t *testing.T) {
	evaluator := NewPenaltyEvaluator()
	policy := policyWith(rule(1, domain.EventCancellation, domain.RateFixed, "30", 24))

	_, charged, err := evaluator.Evaluate(policy, domain.EventCancellation, 24, confirmedReservation(), at("2025-05-19T10:00:00Z"))
	require.NoError(t, err)
	assert.False(t, charged)

	_, charged, err = evaluator.Evaluate(policy, domain.EventCancellation, 23.99, confirmedReservation(), at("2025-05-19T10:00:36Z"))
	require.NoError(t, err)
	assert.True(t, charged)
}

func TestEvaluate_PicksClosestThreshold(t *testing.T) {
	evaluator := NewPenaltyEvaluator()
	policy := policyWith(
		rule(1, domain.EventCancellation, domain.RateFixed, "10", 72),
		rule(2, domain.EventCancellation, domain.RateFixed, "50", 24),
		rule(3, domain.EventCancellation, domain.RateFixed, "90", 6),
	)

	tests := []struct {
		name   string
		hours  float64
		charge bool
		amount string
	}{
		{"more notice than any threshold", 100, false, ""},
		{"between 72 and 24", 48, true, "10.00"},
		{"between 24 and 6", 10, true, "50.00"},
		{"less than smallest", 2, true, "90.00"},
		{"after pickup", -5, true, "90.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			penalty, charged, err := evaluator.Evaluate(policy, domain.EventCancellation, tt.hours, confirmedReservation(), at("2025-05-18T10:00:00Z"))
			require.NoError(t, err)
			assert.Equal(t, tt.charge, charged)
			if tt.charge {
				assertMoney(t, tt.amount, penalty.Amount)
			}
		})
	}
}

func TestEvaluate_IgnoresOtherEvents(t *testing.T) {
	evaluator := NewPenaltyEvaluator()
	policy := policyWith(rule(1, domain.EventModification, domain.RateFixed, "25", 48))

	_, charged, err := evaluator.Evaluate(policy, domain.EventCancellation, 1, confirmedReservation(), at("2025-05-20T09:00:00Z"))
	require.NoError(t, err)
	assert.False(t, charged)

	penalty, charged, err := evaluator.Evaluate(policy, domain.EventModification, 1, confirmedReservation(), at("2025-05-20T09:00:00Z"))
	require.NoError(t, err)
	assert.True(t, charged)
	assertMoney(t, "25.00", penalty.Amount)
}

func TestEvaluate_NoPolicy(t *testing.T) {
	_, charged, err := NewPenaltyEvaluator().Evaluate(nil, domain.EventCancellation, 1, confirmedReservation(), at("2025-05-20T09:00:00Z"))
	assert.ErrorIs(t, err, ErrPolicyNotFound)
	assert.False(t, charged)
}

func TestEvaluate_PerDay(t *testing.T) {
	evaluator := NewPenaltyEvaluator()
	reservation := confirmedReservation()

	cancellation := policyWith(rule(1, domain.EventCancellation, domain.RatePerDay, "12.50", 48))
	lateReturn := policyWith(rule(2, domain.EventLateReturn, domain.RatePerDay, "40", 0))

	tests := []struct {
		name    string
		policy  *domain.PaymentPolicy
		event   domain.EventType
		eventAt time.Time
		amount  string
	}{
		{
			name:    "cancelled before pickup pays all rental days",
			policy:  cancellation,
			event:   domain.EventCancellation,
			eventAt: at("2025-05-19T22:00:00Z"),
			amount:  "37.50",
		},
		{
			name:    "cancelled mid rental pays remaining started days",
			policy:  cancellation,
			event:   domain.EventCancellation,
			eventAt: at("2025-05-21T20:00:00Z"),
			amount:  "25.00",
		},
		{
			name:    "returned a few hours late pays one day",
			policy:  lateReturn,
			event:   domain.EventLateReturn,
			eventAt: at("2025-05-23T13:00:00Z"),
			amount:  "40.00",
		},
		{
			name:    "returned thirty hours late pays two days",
			policy:  lateReturn,
			event:   domain.EventLateReturn,
			eventAt: at("2025-05-24T16:00:00Z"),
			amount:  "80.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := reservation.HoursBefore(tt.eventAt)
			if tt.event == domain.EventLateReturn {
				hours = reservation.DropoffAt.Sub(tt.eventAt).Hours()
			}

			penalty, charged, err := evaluator.Evaluate(tt.policy, tt.event, hours, reservation, tt.eventAt)
			require.NoError(t, err)
			require.True(t, charged)
			assertMoney(t, tt.amount, penalty.Amount)
		})
	}
}

func TestEvaluate_PercentageRoundsHalfUp(t *testing.T) {
	reservation := confirmedReservation()
	reservation.Total = money("100.05")
	policy := policyWith(rule(1, domain.EventCancellation, domain.RatePercentage, "50", 24))

	penalty, charged, err := NewPenaltyEvaluator().Evaluate(policy, domain.EventCancellation, 1, reservation, at("2025-05-20T09:00:00Z"))
	require.NoError(t, err)
	require.True(t, charged)
	assertMoney(t, "50.03", penalty.Amount)
}

func TestEvaluate_InvalidRate(t *testing.T) {
	evaluator := NewPenaltyEvaluator()

	negative := policyWith(rule(1, domain.EventCancellation, domain.RateFixed, "-5", 24))
	_, charged, err := evaluator.Evaluate(negative, domain.EventCancellation, 1, confirmedReservation(), at("2025-05-20T09:00:00Z"))
	assert.ErrorIs(t, err, ErrInvalidRate)
	assert.False(t, charged)

	unknown := policyWith(rule(1, domain.EventCancellation, domain.RateKind("tiered"), "5", 24))
	_, _, err = evaluator.Evaluate(unknown, domain.EventCancellation, 1, confirmedReservation(), at("2025-05-20T09:00:00Z"))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestSelectRule(t *testing.T) {
	rules := []domain.PolicyPenaltyRule{
		rule(1, domain.EventCancellation, domain.RateFixed, "1", 12),
		rule(2, domain.EventCancellation, domain.RateFixed, "1", 48),
	}

	selected, ok := SelectRule(rules, 20)
	require.True(t, ok)
	assert.Equal(t, int64(2), selected.ID)

	_, ok = SelectRule(rules, 48)
	assert.False(t, ok)

	_, ok = SelectRule(nil, 0)
	assert.False(t, ok)
}
