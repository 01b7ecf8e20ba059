package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrInvalidReference возвращается, когда автомобиль, пункт проката или политика не существуют
	ErrInvalidReference = errors.New("reservation.repository: referenced vehicle, place or policy does not exist")

	// ErrStatusConflict возвращается, когда статус бронирования не допускает изменение
	ErrStatusConflict = errors.New("reservation.repository: reservation status does not allow this change")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
