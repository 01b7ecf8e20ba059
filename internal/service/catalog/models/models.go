package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// TariffResponse действующий тариф автомобиля
type TariffResponse struct {
	TariffID    int64   `json:"tariffId"`
	VehicleID   int64   `json:"vehicleId"`
	VehicleName string  `json:"vehicleName"`
	Group       string  `json:"group"`
	Date        string  `json:"date"`
	ValidFrom   string  `json:"validFrom"`
	ValidUntil  *string `json:"validUntil,omitempty"`
	PricePerDay string  `json:"pricePerDay"`
}

// PolicyResponse платежная политика
type PolicyResponse struct {
	ID              int64                 `json:"id"`
	Title           string                `json:"title"`
	Deductible      string                `json:"deductible"`
	SecurityDeposit string                `json:"securityDeposit"`
	Included        []string              `json:"included"`
	Excluded        []string              `json:"excluded"`
	PenaltyRules    []PenaltyRuleResponse `json:"penaltyRules"`
	Active          bool                  `json:"active"`
}

// PenaltyRuleResponse правило штрафа политики
type PenaltyRuleResponse struct {
	EventType        string `json:"eventType"`
	RateKind         string `json:"rateKind"`
	RateValue        string `json:"rateValue"`
	HoursBeforeEvent int    `json:"hoursBeforeEvent"`
	Description      string `json:"description,omitempty"`
}

// PromotionResponse промоакция
type PromotionResponse struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	DiscountPercent string `json:"discountPercent"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	UsageLimit      *int   `json:"usageLimit,omitempty"`
	UsageCount      int    `json:"usageCount"`
	InEffect        bool   `json:"inEffect"`
}

// FromDomainTariff конвертирует тариф в DTO
func FromDomainTariff(vehicle *domain.Vehicle, tariff *domain.Tariff, date types.Date) *TariffResponse {
	resp := &TariffResponse{
		TariffID:    tariff.ID,
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.DisplayName(),
		Group:       vehicle.Group.Name,
		Date:        date.String(),
		ValidFrom:   tariff.ValidFrom.String(),
		PricePerDay: money(tariff.PricePerDay),
	}
	if tariff.ValidUntil != nil {
		until := tariff.ValidUntil.String()
		resp.ValidUntil = &until
	}
	return resp
}

// FromDomainPolicy конвертирует политику в DTO
func FromDomainPolicy(p *domain.PaymentPolicy) *PolicyResponse {
	resp := &PolicyResponse{
		ID:              p.ID,
		Title:           p.Title,
		Deductible:      money(p.Deductible),
		SecurityDeposit: money(p.SecurityDeposit),
		Included:        itemTexts(p.IncludedItems()),
		Excluded:        itemTexts(p.ExcludedItems()),
		PenaltyRules:    make([]PenaltyRuleResponse, 0, len(p.PenaltyRules)),
		Active:          p.Active,
	}
	for _, rule := range p.PenaltyRules {
		resp.PenaltyRules = append(resp.PenaltyRules, PenaltyRuleResponse{
			EventType:        string(rule.PenaltyType.Name),
			RateKind:         string(rule.PenaltyType.RateKind),
			RateValue:        money(rule.PenaltyType.RateValue),
			HoursBeforeEvent: rule.HoursBeforeEvent,
			Description:      rule.PenaltyType.Description,
		})
	}
	return resp
}

// FromDomainPromotion конвертирует промоакцию в DTO
func FromDomainPromotion(p *domain.Promotion, inEffect bool) *PromotionResponse {
	return &PromotionResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		DiscountPercent: money(p.DiscountPercent),
		StartDate:       p.StartDate.String(),
		EndDate:         p.EndDate.String(),
		UsageLimit:      p.UsageLimit,
		UsageCount:      p.UsageCount,
		InEffect:        inEffect,
	}
}

func itemTexts(items []domain.PolicyItem) []string {
	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Text)
	}
	return texts
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyScale)
}
