package create_reservation

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_reservation: vehicle not found")

	// ErrVehicleUnavailable возвращается, когда автомобиль выведен из парка
	// или на дату выдачи для него нет тарифа
	ErrVehicleUnavailable = errors.New("create_reservation: vehicle unavailable for these dates")

	// ErrPlaceNotFound возвращается, когда пункт выдачи или сдачи не найден
	ErrPlaceNotFound = errors.New("create_reservation: place not found")

	// ErrPolicyNotFound возвращается, когда платежная политика не найдена или не активна
	ErrPolicyNotFound = errors.New("create_reservation: payment policy not found")

	// ErrPromotionNotFound возвращается, когда промокод не найден
	ErrPromotionNotFound = errors.New("create_reservation: promotion not found")

	// ErrPromotionNotApplicable возвращается, когда промоакция сегодня не действует
	ErrPromotionNotApplicable = errors.New("create_reservation: promotion is not in effect")

	// ErrDriverNotFound возвращается, когда у клиента нет профиля водителя
	ErrDriverNotFound = errors.New("create_reservation: customer has no driver profile")

	// ErrDriverTooYoung возвращается, когда водитель младше минимального возраста группы автомобиля
	ErrDriverTooYoung = errors.New("create_reservation: driver is below the minimum age for this vehicle group")

	// ErrInvalidPeriod возвращается, когда дата сдачи не позже даты выдачи
	ErrInvalidPeriod = errors.New("create_reservation: invalid rental period")

	// ErrPickupInPast возвращается, когда время выдачи уже прошло
	ErrPickupInPast = errors.New("create_reservation: pickup time is in the past")

	// ErrRentalTooLong возвращается, когда срок аренды превышает максимальный
	ErrRentalTooLong = errors.New("create_reservation: rental period is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
