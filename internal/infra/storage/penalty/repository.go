package penalty

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/psqlbuilder"
)

var penaltyColumns = []string{
	"id",
	"reservation_id",
	"penalty_type_id",
	"event_type",
	"amount",
	"applied_at",
}

// Repository репозиторий начисленных штрафов
// Штрафы только добавляются, изменение и удаление не поддерживаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория штрафов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIdempotent сохраняет штраф, если для пары (бронирование, событие) его еще нет
// Возвращает сохраненный штраф и true, либо уже существующий штраф и false
func (r *Repository) CreateIdempotent(ctx context.Context, penalty *domain.Penalty) (*domain.Penalty, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("penalties").
		Columns("reservation_id", "penalty_type_id", "event_type", "amount", "applied_at").
		Values(penalty.ReservationID, penalty.PenaltyTypeID, penalty.EventType, penalty.Amount, penalty.AppliedAt).
		Suffix("ON CONFLICT (reservation_id, event_type) DO NOTHING RETURNING id").
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: CreateIdempotent - build insert query: %v", ErrBuildQuery, err)
	}

	created := *penalty
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID)
	if err == nil {
		return &created, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("%w: CreateIdempotent - execute insert: %v", ErrExecQuery, err)
	}

	// Конфликт: штраф за это событие уже начислен
	existing, err := r.GetByEvent(ctx, penalty.ReservationID, penalty.EventType)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

// GetByEvent получает штраф по бронированию и типу события
func (r *Repository) GetByEvent(ctx context.Context, reservationID int64, event domain.EventType) (*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(penaltyColumns...).
		From("penalties").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"event_type": event}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEvent - build select query: %v", ErrBuildQuery, err)
	}

	var penalty domain.Penalty
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&penalty.ID,
		&penalty.ReservationID,
		&penalty.PenaltyTypeID,
		&penalty.EventType,
		&penalty.Amount,
		&penalty.AppliedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPenaltyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEvent - scan penalty: %v", ErrScanRow, err)
	}

	return &penalty, nil
}

// ListByReservation получает все штрафы бронирования в порядке начисления
func (r *Repository) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(penaltyColumns...).
		From("penalties").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("applied_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	penalties := make([]*domain.Penalty, 0)
	for rows.Next() {
		var penalty domain.Penalty
		if err := rows.Scan(
			&penalty.ID,
			&penalty.ReservationID,
			&penalty.PenaltyTypeID,
			&penalty.EventType,
			&penalty.Amount,
			&penalty.AppliedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByReservation - scan penalty: %v", ErrScanRow, err)
		}
		penalties = append(penalties, &penalty)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - rows error: %v", ErrScanRow, err)
	}

	return penalties, nil
}
