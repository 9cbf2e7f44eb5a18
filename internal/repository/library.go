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

const libraryTableName = `library`

type LibraryRepository interface {
	Create(ctx context.Context, library *domain.Library) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Library, error)
}

type libraryRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewLibraryRepository(db *sqlx.DB, log *zap.Logger) LibraryRepository {
	return &libraryRepo{db: db, log: log.Named("library-repo")}
}

func (r *libraryRepo) Create(ctx context.Context, library *domain.Library) (int64, error) {
	q, args, err := qb.Insert(libraryTableName).
		Columns("name", "address", "city").
		Values(library.Name(), library.Address(), library.City()).
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
		return 0, errors.Wrap(err, "create library")
	}
	library.SetID(id)
	return id, nil
}

func (r *libraryRepo) FindByID(ctx context.Context, id int64) (*domain.Library, error) {
	q, args, err := qb.Select("id", "name", "address", "city",
		"created_at", "updated_at", "deleted_at").
		From(libraryTableName).
		Where(sq.Eq{"id": id}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var row libraryRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find library")
	}
	return row.toDomain()
}
