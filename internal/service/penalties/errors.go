package penalties

import "errors"

var (
	// ErrInvalidPolicy возвращается, когда правило штрафа политики содержит некорректную ставку
	ErrInvalidPolicy = errors.New("penalties.service: policy has an invalid penalty rate")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("penalties.service: internal error")
)
