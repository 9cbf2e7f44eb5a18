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

const memberTableName = `member`

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member, libraryID int64) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	SoftDelete(ctx context.Context, id int64) error
}

type memberRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewMemberRepository(db *sqlx.DB, log *zap.Logger) MemberRepository {
	return &memberRepo{db: db, log: log.Named("member-repo")}
}

func (r *memberRepo) Create(ctx context.Context, member *domain.Member, libraryID int64) (int64, error) {
	builder := qb.Insert(memberTableName).
		Columns("first_name", "last_name", "email", "active", "library_id").
		Values(member.FirstName(), member.LastName(), member.Email().Value(), member.Active(), nullableID(libraryID)).
		Suffix("returning id")
	q, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, q, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrConflict
		}
		return 0, errors.Wrap(err, "create member")
	}
	member.SetID(id)
	return id, nil
}

func (r *memberRepo) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	q, args, err := qb.Select("id", "first_name", "last_name", "email", "active",
		"created_at", "updated_at", "deleted_at").
		From(memberTableName).
		Where(sq.Eq{"id": id}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var row memberRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find member")
	}
	return row.toDomain()
}

func (r *memberRepo) Update(ctx context.Context, member *domain.Member) error {
	q, args, err := qb.Update(memberTableName).
		Set("first_name", member.FirstName()).
		Set("last_name", member.LastName()).
		Set("email", member.Email().Value()).
		Set("active", member.Active()).
		Set("updated_at", member.UpdatedAt()).
		Where(sq.Eq{"id": member.ID()}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	res, err := executor(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update member")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *memberRepo) SoftDelete(ctx context.Context, id int64) error {
	q, args, err := qb.Update(memberTableName).
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
		return errors.Wrap(err, "soft delete member")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
