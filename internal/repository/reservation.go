package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/errs"
)

const reservationTableName = `reservation`

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Reservation, error)
	FindIDsActiveExpiredBefore(ctx context.Context, day time.Time) ([]int64, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
}

type reservationRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewReservationRepository(db *sqlx.DB, log *zap.Logger) ReservationRepository {
	return &reservationRepo{db: db, log: log.Named("reservation-repo")}
}

func (r *reservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (int64, error) {
	q, args, err := qb.Insert(reservationTableName).
		Columns("book_copy_id", "member_id", "reserved_at", "expires_at", "status").
		Values(reservation.BookCopy().ID(), reservation.Member().ID(),
			reservation.ReservedAt(), reservation.ExpiresAt(), reservation.Status()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, q, args...); err != nil {
		return 0, errors.Wrap(err, "create reservation")
	}
	reservation.SetID(id)
	return id, nil
}

type reservationGraphRow struct {
	ResID     int64        `db:"reservation_id"`
	Reserved  time.Time    `db:"reserved_at"`
	Expires   time.Time    `db:"expires_at"`
	ResStatus string       `db:"reservation_status"`
	ResCreate time.Time    `db:"reservation_created_at"`
	ResUpdate time.Time    `db:"reservation_updated_at"`
	ResDelete sql.NullTime `db:"reservation_deleted_at"`

	copyGraphRow

	MemberID     int64        `db:"member_id"`
	MemberFirst  string       `db:"member_first_name"`
	MemberLast   string       `db:"member_last_name"`
	MemberEmail  string       `db:"member_email"`
	MemberActive bool         `db:"member_active"`
	MemberCreate time.Time    `db:"member_created_at"`
	MemberUpdate time.Time    `db:"member_updated_at"`
	MemberDelete sql.NullTime `db:"member_deleted_at"`
}

func (r *reservationRepo) reservationColumns() []string {
	cols := []string{
		"rs.id as reservation_id",
		"rs.reserved_at",
		"rs.expires_at",
		"rs.status as reservation_status",
		"rs.created_at as reservation_created_at",
		"rs.updated_at as reservation_updated_at",
		"rs.deleted_at as reservation_deleted_at",
	}
	cols = append(cols, copyGraphColumns("bc")...)
	cols = append(cols,
		"m.id as member_id",
		"m.first_name as member_first_name",
		"m.last_name as member_last_name",
		"m.email as member_email",
		"m.active as member_active",
		"m.created_at as member_created_at",
		"m.updated_at as member_updated_at",
		"m.deleted_at as member_deleted_at",
	)
	return cols
}

func (r *reservationRepo) FindByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	q, args, err := qb.Select(r.reservationColumns()...).
		From(reservationTableName + " rs").
		Join(bookCopyTableName + " bc on bc.id = rs.book_copy_id").
		Join(bookTableName + " b on b.id = bc.book_id").
		Join(categoryTableName + " c on c.id = b.category_id").
		Join(libraryTableName + " l on l.id = bc.library_id").
		Join(memberTableName + " m on m.id = rs.member_id").
		Where(sq.Eq{"rs.id": id}).
		Where("rs.deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var row reservationGraphRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find reservation")
	}
	authors, err := authorsByBookID(ctx, r.db, row.BookID)
	if err != nil {
		return nil, err
	}
	bookCopy, err := row.copyGraphRow.toDomain(authors)
	if err != nil {
		return nil, err
	}
	member, err := memberRow{
		ID:        row.MemberID,
		FirstName: row.MemberFirst,
		LastName:  row.MemberLast,
		Email:     row.MemberEmail,
		Active:    row.MemberActive,
		lifecycleRow: lifecycleRow{
			CreatedAt: row.MemberCreate,
			UpdatedAt: row.MemberUpdate,
			DeletedAt: row.MemberDelete,
		},
	}.toDomain()
	if err != nil {
		return nil, err
	}
	return domain.RehydrateReservation(domain.ReservationConfig{
		ID:         row.ResID,
		BookCopy:   bookCopy,
		Member:     member,
		ReservedAt: row.Reserved,
		ExpiresAt:  row.Expires,
	}, domain.ReservationStatus(row.ResStatus), lifecycleRow{
		CreatedAt: row.ResCreate,
		UpdatedAt: row.ResUpdate,
		DeletedAt: row.ResDelete,
	}.toDomain())
}

// FindIDsActiveExpiredBefore feeds the expiry sweep.
func (r *reservationRepo) FindIDsActiveExpiredBefore(ctx context.Context, day time.Time) ([]int64, error) {
	q, args, err := qb.Select("id").
		From(reservationTableName).
		Where(sq.Eq{"status": domain.ReservationStatusActive}).
		Where(sq.Lt{"expires_at": day}).
		Where("deleted_at is null").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &ids, q, args...); err != nil {
		return nil, errors.Wrap(err, "active reservations past expiry")
	}
	return ids, nil
}

func (r *reservationRepo) Update(ctx context.Context, reservation *domain.Reservation) error {
	q, args, err := qb.Update(reservationTableName).
		Set("status", reservation.Status()).
		Set("updated_at", reservation.UpdatedAt()).
		Where(sq.Eq{"id": reservation.ID()}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	res, err := executor(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update reservation")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
