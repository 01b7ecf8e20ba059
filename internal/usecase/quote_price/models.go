package quote_price

import (
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// Request модель запроса на предварительный расчет цены
type Request struct {
	VehicleID     int64     // ID автомобиля
	PickupAt      time.Time // Время выдачи
	DropoffAt     time.Time // Время сдачи
	PromotionCode *string   // Промокод (опционально)
}

// Response модель ответа с расчетом
type Response struct {
	VehicleID     int64
	TariffID      int64
	PickupAt      time.Time
	DropoffAt     time.Time
	Price         domain.PriceBreakdown
	PromotionCode *string // Промокод, если он был указан
	TaxRate       string  // Ставка налога, например "0.21"
}
