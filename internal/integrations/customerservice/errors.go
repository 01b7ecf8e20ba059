package customerservice

import "errors"

var (
	// ErrDriverNotFound возвращается, когда у клиента нет данных водителя
	ErrDriverNotFound = errors.New("customer has no driver profile")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что CustomerService недоступен и проверку возраста водителя следует пропустить
	ErrServiceDegraded = errors.New("customerservice unavailable: graceful degradation applied")
)
