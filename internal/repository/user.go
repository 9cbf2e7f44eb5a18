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

const (
	userTableName     = `app_user`
	userRoleTableName = `user_role`
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type userRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) UserRepository {
	return &userRepo{db: db, log: log.Named("user-repo")}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	q, args, err := qb.Insert(userTableName).
		Columns("email", "password_hash", "active").
		Values(user.Email().Value(), user.PasswordHash(), user.Active()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	ex := executor(ctx, r.db)
	var id int64
	if err := sqlx.GetContext(ctx, ex, &id, q, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, errs.ErrConflict
		}
		return 0, errors.Wrap(err, "create user")
	}
	user.SetID(id)
	if err := r.replaceRoles(ctx, ex, id, user.Roles()); err != nil {
		return 0, err
	}
	return id, nil
}

type userRow struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Active       bool   `db:"active"`
	lifecycleRow
}

type userRoleRow struct {
	ID       int64  `db:"id"`
	RoleType string `db:"role_type"`
}

func (r *userRepo) findOne(ctx context.Context, pred interface{}) (*domain.User, error) {
	q, args, err := qb.Select("id", "email", "password_hash", "active",
		"created_at", "updated_at", "deleted_at").
		From(userTableName).
		Where(pred).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	ex := executor(ctx, r.db)
	var row userRow
	if err := sqlx.GetContext(ctx, ex, &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find user")
	}

	q, args, err = qb.Select("id", "role_type").
		From(userRoleTableName).
		Where(sq.Eq{"user_id": row.ID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var roleRows []userRoleRow
	if err := sqlx.SelectContext(ctx, ex, &roleRows, q, args...); err != nil {
		return nil, errors.Wrap(err, "find user roles")
	}
	roles := make([]*domain.Role, 0, len(roleRows))
	for _, rr := range roleRows {
		role, err := domain.NewRole(domain.RoleType(rr.RoleType))
		if err != nil {
			return nil, err
		}
		role.SetID(rr.ID)
		roles = append(roles, role)
	}
	return domain.RehydrateUser(row.ID, row.Email, row.PasswordHash, roles, row.Active, row.lifecycleRow.toDomain())
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	q, args, err := qb.Update(userTableName).
		Set("email", user.Email().Value()).
		Set("password_hash", user.PasswordHash()).
		Set("active", user.Active()).
		Set("updated_at", user.UpdatedAt()).
		Where(sq.Eq{"id": user.ID()}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	ex := executor(ctx, r.db)
	res, err := ex.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return r.replaceRoles(ctx, ex, user.ID(), user.Roles())
}

func (r *userRepo) replaceRoles(ctx context.Context, ex sqlx.ExtContext, userID int64, roles []*domain.Role) error {
	q, args, err := qb.Delete(userRoleTableName).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := ex.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "clear user roles")
	}
	if len(roles) == 0 {
		return nil
	}
	ins := qb.Insert(userRoleTableName).Columns("user_id", "role_type")
	for _, role := range roles {
		ins = ins.Values(userID, role.RoleType())
	}
	q, args, err = ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := ex.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrap(err, "store user roles")
	}
	return nil
}
