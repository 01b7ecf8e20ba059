package promotion

import "errors"

var (
	// ErrPromotionNotFound возвращается, когда промоакция не найдена
	ErrPromotionNotFound = errors.New("promotion.repository: promotion not found")

	// ErrDuplicateUsage возвращается при повторной записи использования промоакции для одной брони
	ErrDuplicateUsage = errors.New("promotion.repository: promotion already used by reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("promotion.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("promotion.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("promotion.repository: failed to scan row")
)
