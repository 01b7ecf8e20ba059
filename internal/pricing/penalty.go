package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// PenaltyEvaluator decides which penalty rule of a payment policy fires for an
// event and how much it costs. It is stateless; storing the result is up to the caller.
type PenaltyEvaluator struct{}

// NewPenaltyEvaluator creates a penalty evaluator
func NewPenaltyEvaluator() *PenaltyEvaluator {
	return &PenaltyEvaluator{}
}

// Evaluate returns the penalty for event happening at `at` with hoursBeforeEvent
// hours of notice. charged is false for the free outcome, in which case the
// returned Penalty is empty.
//
// A rule fires when the notice is strictly less than its threshold. Among the
// firing rules the one with the smallest threshold is applied.
func (e *PenaltyEvaluator) Evaluate(
	policy *domain.PaymentPolicy,
	event domain.EventType,
	hoursBeforeEvent float64,
	reservation *domain.Reservation,
	at time.Time,
) (domain.Penalty, bool, error) {
	if policy == nil {
		return domain.Penalty{}, false, ErrPolicyNotFound
	}

	rule, ok := SelectRule(policy.RulesFor(event), hoursBeforeEvent)
	if !ok {
		return domain.Penalty{}, false, nil
	}

	amount, err := penaltyAmount(rule.PenaltyType, event, reservation, at)
	if err != nil {
		return domain.Penalty{}, false, err
	}

	return domain.Penalty{
		ReservationID: reservation.ID,
		PenaltyTypeID: rule.PenaltyType.ID,
		EventType:     event,
		Amount:        amount,
		AppliedAt:     at,
	}, true, nil
}

// SelectRule picks the rule with the smallest threshold still above the observed notice
func SelectRule(rules []domain.PolicyPenaltyRule, hoursBeforeEvent float64) (domain.PolicyPenaltyRule, bool) {
	var (
		best  domain.PolicyPenaltyRule
		found bool
	)
	for _, rule := range rules {
		if hoursBeforeEvent >= float64(rule.HoursBeforeEvent) {
			continue
		}
		if !found || rule.HoursBeforeEvent < best.HoursBeforeEvent {
			best = rule
			found = true
		}
	}
	return best, found
}

func penaltyAmount(
	pt domain.PenaltyType,
	event domain.EventType,
	reservation *domain.Reservation,
	at time.Time,
) (decimal.Decimal, error) {
	if pt.RateValue.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}

	var amount decimal.Decimal
	switch pt.RateKind {
	case domain.RatePercentage:
		amount = reservation.Total.Mul(pt.RateValue).Div(hundred)
	case domain.RateFixed:
		amount = pt.RateValue
	case domain.RatePerDay:
		amount = pt.RateValue.Mul(decimal.NewFromInt(int64(chargeableDays(event, reservation, at))))
	default:
		return decimal.Zero, ErrInvalidRate
	}

	return amount.Round(domain.MoneyScale), nil
}

// chargeableDays is the day count a per-day penalty is multiplied by.
// Late returns pay for every started day past drop-off. Other events pay for
// the rental days not yet consumed at the moment of the event.
func chargeableDays(event domain.EventType, reservation *domain.Reservation, at time.Time) int {
	if event == domain.EventLateReturn {
		overdue := ceilDays(at.Sub(reservation.DropoffAt))
		if overdue < 1 {
			return 1
		}
		return overdue
	}

	if !at.After(reservation.PickupAt) {
		days := reservation.Days
		if days == 0 {
			days, _ = RentalDays(reservation.PickupAt, reservation.DropoffAt)
		}
		return days
	}

	return ceilDays(reservation.DropoffAt.Sub(at))
}
