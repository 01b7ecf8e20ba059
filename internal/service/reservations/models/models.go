package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
// Денежные суммы передаются строками с двумя знаками после запятой
type ReservationResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	VehicleID       int64  `json:"vehicleId"`
	PickupPlaceID   int64  `json:"pickupPlaceId"`
	DropoffPlaceID  int64  `json:"dropoffPlaceId"`
	PickupAt        string `json:"pickupAt"`  // RFC 3339
	DropoffAt       string `json:"dropoffAt"` // RFC 3339
	PaymentPolicyID *int64 `json:"paymentPolicyId,omitempty"`
	PromotionID     *int64 `json:"promotionId,omitempty"`
	Status          string `json:"status"`

	// Снимок цены, заполняется при подтверждении
	Price *PriceResponse `json:"price,omitempty"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PriceResponse разбивка цены
type PriceResponse struct {
	PricePerDay      string `json:"pricePerDay"`
	Days             int    `json:"days"`
	Discount         string `json:"discount"`
	Subtotal         string `json:"subtotal"`
	Tax              string `json:"tax"`
	Total            string `json:"total"`
	PromotionApplied bool   `json:"promotionApplied"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// PenaltyResponse начисленный штраф
type PenaltyResponse struct {
	ID            int64  `json:"id"`
	ReservationID int64  `json:"reservationId"`
	PenaltyTypeID int64  `json:"penaltyTypeId"`
	EventType     string `json:"eventType"`
	Amount        string `json:"amount"`
	AppliedAt     string `json:"appliedAt"`
}

// PenaltyListResponse ответ со списком штрафов
type PenaltyListResponse struct {
	Penalties []PenaltyResponse `json:"penalties"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		VehicleID:          r.VehicleID,
		PickupPlaceID:      r.PickupPlaceID,
		DropoffPlaceID:     r.DropoffPlaceID,
		PickupAt:           r.PickupAt.UTC().Format(time.RFC3339),
		DropoffAt:          r.DropoffAt.UTC().Format(time.RFC3339),
		PaymentPolicyID:    r.PaymentPolicyID,
		PromotionID:        r.PromotionID,
		Status:             string(r.Status),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		ConfirmedAt:        formatTime(r.ConfirmedAt),
		CancelledAt:        formatTime(r.CancelledAt),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.IsPriced() {
		resp.Price = &PriceResponse{
			PricePerDay:      money(r.PricePerDay),
			Days:             r.Days,
			Discount:         money(r.Discount),
			Subtotal:         money(r.Subtotal),
			Tax:              money(r.Tax),
			Total:            money(r.Total),
			PromotionApplied: r.PromotionApplied,
		}
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}

// FromDomainPenalty конвертирует штраф в DTO
func FromDomainPenalty(p *domain.Penalty) *PenaltyResponse {
	if p == nil {
		return nil
	}
	return &PenaltyResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		PenaltyTypeID: p.PenaltyTypeID,
		EventType:     string(p.EventType),
		Amount:        money(p.Amount),
		AppliedAt:     p.AppliedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainPenaltyList конвертирует список штрафов в DTO
func FromDomainPenaltyList(penalties []*domain.Penalty) *PenaltyListResponse {
	resp := &PenaltyListResponse{
		Penalties: make([]PenaltyResponse, 0, len(penalties)),
	}
	for _, p := range penalties {
		resp.Penalties = append(resp.Penalties, *FromDomainPenalty(p))
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в статус бронирования
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch s := domain.ReservationStatus(status); s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyScale)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
