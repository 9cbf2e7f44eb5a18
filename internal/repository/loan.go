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

const loanTableName = `loan`

type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Loan, error)
	FindByMemberID(ctx context.Context, memberID int64) ([]*domain.Loan, error)
	FindIDsActiveDueBefore(ctx context.Context, day time.Time) ([]int64, error)
	Update(ctx context.Context, loan *domain.Loan) error
}

type loanRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewLoanRepository(db *sqlx.DB, log *zap.Logger) LoanRepository {
	return &loanRepo{db: db, log: log.Named("loan-repo")}
}

func (r *loanRepo) Create(ctx context.Context, loan *domain.Loan) (int64, error) {
	q, args, err := qb.Insert(loanTableName).
		Columns("book_copy_id", "member_id", "loan_date", "due_date", "status").
		Values(loan.BookCopy().ID(), loan.Member().ID(), loan.LoanDate(), loan.DueDate(), loan.Status()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, q, args...); err != nil {
		return 0, errors.Wrap(err, "create loan")
	}
	loan.SetID(id)
	return id, nil
}

type loanGraphRow struct {
	LoanID     int64        `db:"loan_id"`
	LoanDate   time.Time    `db:"loan_date"`
	DueDate    time.Time    `db:"due_date"`
	ReturnDate sql.NullTime `db:"return_date"`
	LoanStatus string       `db:"loan_status"`
	LoanCreate time.Time    `db:"loan_created_at"`
	LoanUpdate time.Time    `db:"loan_updated_at"`
	LoanDelete sql.NullTime `db:"loan_deleted_at"`

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

func (r *loanRepo) loanColumns() []string {
	cols := []string{
		"ln.id as loan_id",
		"ln.loan_date",
		"ln.due_date",
		"ln.return_date",
		"ln.status as loan_status",
		"ln.created_at as loan_created_at",
		"ln.updated_at as loan_updated_at",
		"ln.deleted_at as loan_deleted_at",
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

func (r *loanRepo) selectGraph() sq.SelectBuilder {
	return qb.Select(r.loanColumns()...).
		From(loanTableName + " ln").
		Join(bookCopyTableName + " bc on bc.id = ln.book_copy_id").
		Join(bookTableName + " b on b.id = bc.book_id").
		Join(categoryTableName + " c on c.id = b.category_id").
		Join(libraryTableName + " l on l.id = bc.library_id").
		Join(memberTableName + " m on m.id = ln.member_id").
		Where("ln.deleted_at is null")
}

func (r *loanRepo) rowToDomain(ctx context.Context, row loanGraphRow) (*domain.Loan, error) {
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
	var returnDate *time.Time
	if row.ReturnDate.Valid {
		t := row.ReturnDate.Time
		returnDate = &t
	}
	return domain.RehydrateLoan(domain.LoanConfig{
		ID:       row.LoanID,
		BookCopy: bookCopy,
		Member:   member,
		LoanDate: row.LoanDate,
		DueDate:  row.DueDate,
	}, domain.LoanStatus(row.LoanStatus), returnDate, lifecycleRow{
		CreatedAt: row.LoanCreate,
		UpdatedAt: row.LoanUpdate,
		DeletedAt: row.LoanDelete,
	}.toDomain())
}

func (r *loanRepo) FindByID(ctx context.Context, id int64) (*domain.Loan, error) {
	q, args, err := r.selectGraph().Where(sq.Eq{"ln.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var row loanGraphRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find loan")
	}
	return r.rowToDomain(ctx, row)
}

func (r *loanRepo) FindByMemberID(ctx context.Context, memberID int64) ([]*domain.Loan, error) {
	q, args, err := r.selectGraph().
		Where(sq.Eq{"ln.member_id": memberID}).
		OrderBy("ln.loan_date", "ln.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []loanGraphRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "loans by member")
	}
	loans := make([]*domain.Loan, 0, len(rows))
	for _, row := range rows {
		loan, err := r.rowToDomain(ctx, row)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, nil
}

// FindIDsActiveDueBefore feeds the overdue sweep; each id is then processed
// in its own transaction.
func (r *loanRepo) FindIDsActiveDueBefore(ctx context.Context, day time.Time) ([]int64, error) {
	q, args, err := qb.Select("id").
		From(loanTableName).
		Where(sq.Eq{"status": domain.LoanStatusActive}).
		Where(sq.Lt{"due_date": day}).
		Where("deleted_at is null").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &ids, q, args...); err != nil {
		return nil, errors.Wrap(err, "active loans past due")
	}
	return ids, nil
}

func (r *loanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	q, args, err := qb.Update(loanTableName).
		Set("status", loan.Status()).
		Set("return_date", loan.ReturnDate()).
		Set("updated_at", loan.UpdatedAt()).
		Where(sq.Eq{"id": loan.ID()}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	res, err := executor(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update loan")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
