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

const bookCopyTableName = `book_copy`

type BookCopyRepository interface {
	Create(ctx context.Context, bookCopy *domain.BookCopy) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.BookCopy, error)
	Update(ctx context.Context, bookCopy *domain.BookCopy) error
}

type bookCopyRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookCopyRepository(db *sqlx.DB, log *zap.Logger) BookCopyRepository {
	return &bookCopyRepo{db: db, log: log.Named("copy-repo")}
}

func (r *bookCopyRepo) Create(ctx context.Context, bookCopy *domain.BookCopy) (int64, error) {
	q, args, err := qb.Insert(bookCopyTableName).
		Columns("book_id", "library_id", "copy_number", "barcode", "status", "shelf_location").
		Values(bookCopy.Book().ID(), bookCopy.Library().ID(), bookCopy.CopyNumber().Value(),
			bookCopy.Barcode(), bookCopy.Status(), bookCopy.ShelfLocation()).
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
		return 0, errors.Wrap(err, "create book copy")
	}
	bookCopy.SetID(id)
	return id, nil
}

// FindByID loads the copy with its whole aggregate: book, category, library
// and the book's authors.
func (r *bookCopyRepo) FindByID(ctx context.Context, id int64) (*domain.BookCopy, error) {
	q, args, err := qb.Select(copyGraphColumns("bc")...).
		From(bookCopyTableName + " bc").
		Join(bookTableName + " b on b.id = bc.book_id").
		Join(categoryTableName + " c on c.id = b.category_id").
		Join(libraryTableName + " l on l.id = bc.library_id").
		Where(sq.Eq{"bc.id": id}).
		Where("bc.deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var row copyGraphRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find book copy")
	}
	authors, err := authorsByBookID(ctx, r.db, row.BookID)
	if err != nil {
		return nil, err
	}
	return row.toDomain(authors)
}

func (r *bookCopyRepo) Update(ctx context.Context, bookCopy *domain.BookCopy) error {
	q, args, err := qb.Update(bookCopyTableName).
		Set("status", bookCopy.Status()).
		Set("shelf_location", bookCopy.ShelfLocation()).
		Set("updated_at", bookCopy.UpdatedAt()).
		Where(sq.Eq{"id": bookCopy.ID()}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	res, err := executor(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update book copy")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
