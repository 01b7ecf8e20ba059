package apply_penalty

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("apply_penalty: reservation not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("apply_penalty: access denied")

	// ErrNotConfirmed возвращается, когда бронирование не подтверждено
	ErrNotConfirmed = errors.New("apply_penalty: reservation is not confirmed")

	// ErrUnknownEvent возвращается для неизвестного типа события
	ErrUnknownEvent = errors.New("apply_penalty: unknown penalty event")

	// ErrUnsupportedEvent возвращается для отмены: её штраф начисляется при отмене бронирования
	ErrUnsupportedEvent = errors.New("apply_penalty: cancellation penalties are charged on cancel")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_penalty: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_penalty: internal error")
)
