package confirm_reservation

import "github.com/m04kA/M4Y-RentalService/internal/domain"

// Request модель запроса на подтверждение бронирования
type Request struct {
	ReservationID int64 // ID бронирования
	UserID        int64 // ID владельца
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	Reservation *domain.Reservation

	// AlreadyConfirmed true, если бронирование было подтверждено ранее
	// и возвращен сохраненный снимок цены
	AlreadyConfirmed bool
}
