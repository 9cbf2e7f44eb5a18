package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/errs"
)

const categoryTableName = `category`

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	SoftDelete(ctx context.Context, id int64) error
}

type categoryRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewCategoryRepository(db *sqlx.DB, log *zap.Logger) CategoryRepository {
	return &categoryRepo{db: db, log: log.Named("category-repo")}
}

func (r *categoryRepo) Create(ctx context.Context, category *domain.Category) (int64, error) {
	q, args, err := qb.Insert(categoryTableName).
		Columns("name", "max_loan_days", "penalty_per_day").
		Values(category.Name(), category.MaxLoanDays(), category.PenaltyPerDay()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, q, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrConflict
		}
		return 0, errors.Wrap(err, "create category")
	}
	category.SetID(id)
	return id, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	q, args, err := qb.Select("id", "name", "max_loan_days", "penalty_per_day").
		From(categoryTableName).
		Where(sq.Eq{"id": id}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var row categoryRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find category")
	}
	return row.toDomain()
}

func (r *categoryRepo) SoftDelete(ctx context.Context, id int64) error {
	q, args, err := qb.Update(categoryTableName).
		Set("deleted_at", sq.Expr("now()")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	res, err := executor(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "soft delete category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
