package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/psqlbuilder"
)

// foreignKeyViolation код ошибки PostgreSQL при нарушении внешнего ключа
const foreignKeyViolation = "23503"

var reservationColumns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"pickup_place_id",
	"dropoff_place_id",
	"pickup_at",
	"dropoff_at",
	"payment_policy_id",
	"promotion_id",
	"status",
	"price_per_day",
	"days",
	"discount",
	"subtotal",
	"tax",
	"total",
	"promotion_applied",
	"notes",
	"cancellation_reason",
	"confirmed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование в статусе pending
// Цена не заполняется: она фиксируется при подтверждении
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"vehicle_id",
			"pickup_place_id",
			"dropoff_place_id",
			"pickup_at",
			"dropoff_at",
			"payment_policy_id",
			"promotion_id",
			"status",
			"notes",
		).
		Values(
			reservation.UserID,
			reservation.VehicleID,
			reservation.PickupPlaceID,
			reservation.DropoffPlaceID,
			reservation.PickupAt,
			reservation.DropoffAt,
			reservation.PaymentPolicyID,
			reservation.PromotionID,
			reservation.Status,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
			return nil, fmt.Errorf("%w: %s", ErrInvalidReference, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы подтверждение
// и отмена одного бронирования выполнялись последовательно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("pickup_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// SaveConfirmation сохраняет снимок цены и переводит бронирование в confirmed
// Обновляет только бронирования в статусе pending
func (r *Repository) SaveConfirmation(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusConfirmed).
		Set("price_per_day", reservation.PricePerDay).
		Set("days", reservation.Days).
		Set("discount", reservation.Discount).
		Set("subtotal", reservation.Subtotal).
		Set("tax", reservation.Tax).
		Set("total", reservation.Total).
		Set("promotion_applied", reservation.PromotionApplied).
		Set("confirmed_at", reservation.ConfirmedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveConfirmation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingleRow(ctx, executor, "SaveConfirmation", query, args)
}

// Cancel отменяет бронирование с указанием причины
// Отменить можно только бронирование в статусе pending или confirmed
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": activeStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingleRow(ctx, executor, "Cancel", query, args)
}

func (r *Repository) execSingleRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var policyID, promotionID sql.NullInt64
	var notes, cancellationReason sql.NullString
	var confirmedAt, cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.VehicleID,
		&reservation.PickupPlaceID,
		&reservation.DropoffPlaceID,
		&reservation.PickupAt,
		&reservation.DropoffAt,
		&policyID,
		&promotionID,
		&reservation.Status,
		&reservation.PricePerDay,
		&reservation.Days,
		&reservation.Discount,
		&reservation.Subtotal,
		&reservation.Tax,
		&reservation.Total,
		&reservation.PromotionApplied,
		&notes,
		&cancellationReason,
		&confirmedAt,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if policyID.Valid {
		reservation.PaymentPolicyID = &policyID.Int64
	}
	if promotionID.Valid {
		reservation.PromotionID = &promotionID.Int64
	}
	if notes.Valid {
		reservation.Notes = &notes.String
	}
	if cancellationReason.Valid {
		reservation.CancellationReason = &cancellationReason.String
	}
	if confirmedAt.Valid {
		reservation.ConfirmedAt = &confirmedAt.Time
	}
	if cancelledAt.Valid {
		reservation.CancelledAt = &cancelledAt.Time
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}
