package create_reservation

import (
	"time"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64     // ID клиента
	VehicleID       int64     // ID автомобиля
	PickupPlaceID   int64     // ID пункта выдачи
	DropoffPlaceID  int64     // ID пункта сдачи
	PickupAt        time.Time // Время выдачи
	DropoffAt       time.Time // Время сдачи
	PaymentPolicyID *int64    // Платежная политика (опционально)
	PromotionCode   *string   // Промокод (опционально)
	Notes           *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation

	// DriverAgeVerified false, если CustomerService был недоступен
	// и возраст водителя не проверялся
	DriverAgeVerified bool
}
