package quote_price

import (
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	quotePrice "github.com/m04kA/M4Y-RentalService/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	VehicleID     int64   `json:"vehicleId"`
	PickupAt      string  `json:"pickupAt"`  // RFC 3339
	DropoffAt     string  `json:"dropoffAt"` // RFC 3339
	PromotionCode *string `json:"promotionCode,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	VehicleID              int64   `json:"vehicleId"`
	TariffID               int64   `json:"tariffId"`
	PickupAt               string  `json:"pickupAt"`
	DropoffAt              string  `json:"dropoffAt"`
	Days                   int     `json:"days"`
	PricePerDay            string  `json:"pricePerDay"`
	SubtotalBeforeDiscount string  `json:"subtotalBeforeDiscount"`
	Discount               string  `json:"discount"`
	Subtotal               string  `json:"subtotal"`
	TaxRate                string  `json:"taxRate"`
	Tax                    string  `json:"tax"`
	Total                  string  `json:"total"`
	PromotionCode          *string `json:"promotionCode,omitempty"`
	PromotionApplied       bool    `json:"promotionApplied"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() (*quotePrice.Request, error) {
	pickup, err := time.Parse(time.RFC3339, r.PickupAt)
	if err != nil {
		return nil, err
	}

	dropoff, err := time.Parse(time.RFC3339, r.DropoffAt)
	if err != nil {
		return nil, err
	}

	return &quotePrice.Request{
		VehicleID:     r.VehicleID,
		PickupAt:      pickup,
		DropoffAt:     dropoff,
		PromotionCode: r.PromotionCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	p := resp.Price
	return &QuoteResponse{
		VehicleID:              resp.VehicleID,
		TariffID:               resp.TariffID,
		PickupAt:               resp.PickupAt.UTC().Format(time.RFC3339),
		DropoffAt:              resp.DropoffAt.UTC().Format(time.RFC3339),
		Days:                   p.Days,
		PricePerDay:            p.DailyRate.StringFixed(domain.MoneyScale),
		SubtotalBeforeDiscount: p.SubtotalBeforeDiscount.StringFixed(domain.MoneyScale),
		Discount:               p.Discount.StringFixed(domain.MoneyScale),
		Subtotal:               p.Subtotal.StringFixed(domain.MoneyScale),
		TaxRate:                resp.TaxRate,
		Tax:                    p.Tax.StringFixed(domain.MoneyScale),
		Total:                  p.Total.StringFixed(domain.MoneyScale),
		PromotionCode:          resp.PromotionCode,
		PromotionApplied:       p.DiscountApplied,
	}
}
