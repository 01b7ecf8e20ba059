package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/psqlbuilder"
	"github.com/m04kA/M4Y-RentalService/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolation = "23505"

var promotionColumns = []string{
	"id",
	"code",
	"name",
	"discount_percent",
	"start_date",
	"end_date",
	"active",
	"usage_limit",
	"usage_count",
	"created_at",
	"updated_at",
}

// Repository репозиторий промоакций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промоакций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает промоакцию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает промоакцию по коду (без учета регистра)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"UPPER(code)": strings.ToUpper(code)})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var promotion domain.Promotion
	var usageLimit sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promotion.ID,
		&promotion.Code,
		&promotion.Name,
		&promotion.DiscountPercent,
		&promotion.StartDate,
		&promotion.EndDate,
		&promotion.Active,
		&usageLimit,
		&promotion.UsageCount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan promotion: %v", ErrScanRow, op, err)
	}

	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		promotion.UsageLimit = &limit
	}
	promotion.CreatedAt = createdAt.Time
	promotion.UpdatedAt = updatedAt.Time

	return &promotion, nil
}

// ClaimUsage засчитывает использование промоакции бронированием
// Возвращает true, если промоакция засчитана (сейчас или ранее для этой же брони),
// и false, если она неактивна, вне срока действия или лимит исчерпан.
//
// Должен вызываться внутри транзакции: проверка, инкремент счетчика и запись
// использования выполняются как одно целое.
func (r *Repository) ClaimUsage(ctx context.Context, promotionID, reservationID int64, today types.Date) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Повторное подтверждение той же брони не увеличивает счетчик
	existsQuery, existsArgs, err := psqlbuilder.Select("1").
		From("promotion_usages").
		Where(squirrel.Eq{"promotion_id": promotionID}).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ClaimUsage - build exists query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
	if err == nil {
		return true, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("%w: ClaimUsage - check usage: %v", ErrExecQuery, err)
	}

	// 2. Атомарный инкремент только для действующей промоакции
	updateQuery, updateArgs, err := psqlbuilder.Update("promotions").
		Set("usage_count", squirrel.Expr("usage_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": promotionID}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.LtOrEq{"start_date": today}).
		Where(squirrel.GtOrEq{"end_date": today}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": nil},
			squirrel.Expr("usage_count < usage_limit"),
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ClaimUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return false, fmt.Errorf("%w: ClaimUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ClaimUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return false, nil
	}

	// 3. Фиксируем использование
	insertQuery, insertArgs, err := psqlbuilder.Insert("promotion_usages").
		Columns("promotion_id", "reservation_id").
		Values(promotionID, reservationID).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ClaimUsage - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return false, ErrDuplicateUsage
		}
		return false, fmt.Errorf("%w: ClaimUsage - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// DeactivateExpired выключает активные промоакции, срок действия которых закончился до today
// Возвращает количество выключенных промоакций
func (r *Repository) DeactivateExpired(ctx context.Context, today types.Date) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promotions").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Lt{"end_date": today}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateExpired - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
