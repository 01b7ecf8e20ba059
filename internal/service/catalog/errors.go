package catalog

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrTariffNotFound возвращается, когда на дату нет действующего тарифа
	ErrTariffNotFound = errors.New("no tariff in effect for this date")

	// ErrPolicyNotFound возвращается, когда платежная политика не найдена
	ErrPolicyNotFound = errors.New("payment policy not found")

	// ErrPromotionNotFound возвращается, когда промокод не найден
	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
