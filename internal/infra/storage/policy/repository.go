package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
	"github.com/m04kA/M4Y-RentalService/pkg/dbmetrics"
	"github.com/m04kA/M4Y-RentalService/pkg/psqlbuilder"
)

// Repository репозиторий платежных политик
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает политику вместе с пунктами покрытия и правилами штрафов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PaymentPolicy, error) {
	policy, err := r.getPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.Items, err = r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}

	policy.PenaltyRules, err = r.getPenaltyRules(ctx, id)
	if err != nil {
		return nil, err
	}

	return policy, nil
}

func (r *Repository) getPolicy(ctx context.Context, id int64) (*domain.PaymentPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"deductible",
		"security_deposit",
		"active",
		"created_at",
		"updated_at",
	).
		From("payment_policies").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.PaymentPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.Title,
		&policy.Deductible,
		&policy.SecurityDeposit,
		&policy.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan policy: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

func (r *Repository) getItems(ctx context.Context, policyID int64) ([]domain.PolicyItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "policy_id", "text", "included", "position").
		From("policy_items").
		Where(squirrel.Eq{"policy_id": policyID}).
		OrderBy("position ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.PolicyItem, 0)
	for rows.Next() {
		var item domain.PolicyItem
		if err := rows.Scan(&item.ID, &item.PolicyID, &item.Text, &item.Included, &item.Position); err != nil {
			return nil, fmt.Errorf("%w: getItems - scan item: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

func (r *Repository) getPenaltyRules(ctx context.Context, policyID int64) ([]domain.PolicyPenaltyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.policy_id",
		"r.hours_before_event",
		"t.id",
		"t.name",
		"t.rate_kind",
		"t.rate_value",
		"t.description",
	).
		From("policy_penalty_rules r").
		Join("penalty_types t ON t.id = r.penalty_type_id").
		Where(squirrel.Eq{"r.policy_id": policyID}).
		OrderBy("r.hours_before_event ASC", "r.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getPenaltyRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPenaltyRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.PolicyPenaltyRule, 0)
	for rows.Next() {
		var rule domain.PolicyPenaltyRule
		var description sql.NullString

		if err := rows.Scan(
			&rule.ID,
			&rule.PolicyID,
			&rule.HoursBeforeEvent,
			&rule.PenaltyType.ID,
			&rule.PenaltyType.Name,
			&rule.PenaltyType.RateKind,
			&rule.PenaltyType.RateValue,
			&description,
		); err != nil {
			return nil, fmt.Errorf("%w: getPenaltyRules - scan rule: %v", ErrScanRow, err)
		}

		rule.PenaltyType.Description = description.String
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPenaltyRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
