package confirm_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("confirm_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("confirm_reservation: access denied")

	// ErrCannotConfirm возвращается, когда бронирование отменено
	ErrCannotConfirm = errors.New("confirm_reservation: reservation cannot be confirmed")

	// ErrVehicleUnavailable возвращается, когда на дату выдачи нет тарифа
	ErrVehicleUnavailable = errors.New("confirm_reservation: vehicle unavailable for these dates")

	// ErrConcurrentConfirmation возвращается, когда бронирование подтверждается параллельно
	ErrConcurrentConfirmation = errors.New("confirm_reservation: reservation is being confirmed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)
