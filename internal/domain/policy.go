package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownEventType возвращается при разборе неизвестного типа события
var ErrUnknownEventType = errors.New("unknown penalty event type")

// RateKind defines how a penalty amount is computed
type RateKind string

const (
	RatePercentage RateKind = "percentage" // percent of the reservation total
	RateFixed      RateKind = "fixed"      // flat amount
	RatePerDay     RateKind = "per_day"    // amount per remaining rental day
)

// IsValid returns true for known rate kinds
func (k RateKind) IsValid() bool {
	switch k {
	case RatePercentage, RateFixed, RatePerDay:
		return true
	default:
		return false
	}
}

// EventType is the reservation event a penalty rule reacts to
type EventType string

const (
	EventCancellation EventType = "cancellation"
	EventModification EventType = "modification"
	EventLateReturn   EventType = "late_return"
)

// ParseEventType converts a string to EventType with validation
func ParseEventType(s string) (EventType, error) {
	switch e := EventType(s); e {
	case EventCancellation, EventModification, EventLateReturn:
		return e, nil
	default:
		return "", ErrUnknownEventType
	}
}

// PenaltyType is shared across policies; its Name is the event it applies to
type PenaltyType struct {
	ID          int64
	Name        EventType
	RateKind    RateKind
	RateValue   decimal.Decimal
	Description string
}

// PolicyPenaltyRule binds a penalty type to a policy with a notice threshold.
// The rule fires when the customer acts with less than HoursBeforeEvent hours of notice.
type PolicyPenaltyRule struct {
	ID               int64
	PolicyID         int64
	PenaltyType      PenaltyType
	HoursBeforeEvent int
}

// PolicyItem is a coverage line of a payment policy
type PolicyItem struct {
	ID       int64
	PolicyID int64
	Text     string
	Included bool
	Position int
}

// PaymentPolicy bundles coverage terms and penalty rules attached to a reservation
type PaymentPolicy struct {
	ID              int64
	Title           string
	Deductible      decimal.Decimal
	SecurityDeposit decimal.Decimal
	Items           []PolicyItem
	PenaltyRules    []PolicyPenaltyRule
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RulesFor returns the penalty rules for an event ordered by threshold ascending
func (p *PaymentPolicy) RulesFor(event EventType) []PolicyPenaltyRule {
	rules := make([]PolicyPenaltyRule, 0, len(p.PenaltyRules))
	for _, rule := range p.PenaltyRules {
		if rule.PenaltyType.Name == event {
			rules = append(rules, rule)
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].HoursBeforeEvent < rules[j].HoursBeforeEvent
	})
	return rules
}

// IncludedItems returns items covered by the policy
func (p *PaymentPolicy) IncludedItems() []PolicyItem {
	return p.filterItems(true)
}

// ExcludedItems returns items not covered by the policy
func (p *PaymentPolicy) ExcludedItems() []PolicyItem {
	return p.filterItems(false)
}

func (p *PaymentPolicy) filterItems(included bool) []PolicyItem {
	items := make([]PolicyItem, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Included == included {
			items = append(items, item)
		}
	}
	return items
}
