package quote_price

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("quote_price: vehicle not found")

	// ErrVehicleUnavailable возвращается, когда автомобиль выведен из парка
	// или на дату выдачи для него нет тарифа
	ErrVehicleUnavailable = errors.New("quote_price: vehicle unavailable for these dates")

	// ErrPromotionNotFound возвращается, когда промокод не найден
	ErrPromotionNotFound = errors.New("quote_price: promotion not found")

	// ErrInvalidPeriod возвращается, когда дата сдачи не позже даты выдачи
	ErrInvalidPeriod = errors.New("quote_price: invalid rental period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
