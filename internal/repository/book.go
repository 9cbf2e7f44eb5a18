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

const bookTableName = `book`

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	SoftDelete(ctx context.Context, id int64) error
}

type bookRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) BookRepository {
	return &bookRepo{db: db, log: log.Named("book-repo")}
}

func (r *bookRepo) Create(ctx context.Context, book *domain.Book) (int64, error) {
	q, args, err := qb.Insert(bookTableName).
		Columns("isbn", "title", "publication_year", "category_id").
		Values(book.ISBN().Value(), book.Title().Value(), book.PublicationYear(), book.Category().ID()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	ex := executor(ctx, r.db)
	var id int64
	if err := sqlx.GetContext(ctx, ex, &id, q, args...); err != nil {
		return 0, errors.Wrap(err, "create book")
	}
	book.SetID(id)

	ins := qb.Insert(bookAuthorTableName).Columns("book_id", "author_id")
	for _, author := range book.Authors() {
		ins = ins.Values(id, author.ID())
	}
	q, args, err = ins.ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := ex.ExecContext(ctx, q, args...); err != nil {
		return 0, errors.Wrap(err, "link book authors")
	}
	return id, nil
}

type bookJoinedRow struct {
	ID          int64  `db:"id"`
	ISBN        string `db:"isbn"`
	Title       string `db:"title"`
	PubYear     int    `db:"publication_year"`
	CategoryID  int64  `db:"category_id"`
	Category    string `db:"category_name"`
	MaxLoanDays int    `db:"max_loan_days"`
	PerDay      int    `db:"penalty_per_day"`
	lifecycleRow
}

func (r *bookRepo) FindByID(ctx context.Context, id int64) (*domain.Book, error) {
	q, args, err := qb.Select("b.id", "b.isbn", "b.title", "b.publication_year",
		"b.created_at", "b.updated_at", "b.deleted_at",
		"c.id as category_id", "c.name as category_name", "c.max_loan_days", "c.penalty_per_day").
		From(bookTableName + " b").
		Join(categoryTableName + " c on c.id = b.category_id").
		Where(sq.Eq{"b.id": id}).
		Where("b.deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var row bookJoinedRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "find book")
	}
	authors, err := authorsByBookID(ctx, r.db, row.ID)
	if err != nil {
		return nil, err
	}
	category, err := domain.RehydrateCategory(row.CategoryID, row.Category, row.MaxLoanDays, row.PerDay)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateBook(domain.BookConfig{
		ID:              row.ID,
		ISBN:            row.ISBN,
		Title:           row.Title,
		Authors:         authors,
		PublicationYear: row.PubYear,
		Category:        category,
	}, row.lifecycleRow.toDomain())
}

func (r *bookRepo) Update(ctx context.Context, book *domain.Book) error {
	q, args, err := qb.Update(bookTableName).
		Set("isbn", book.ISBN().Value()).
		Set("title", book.Title().Value()).
		Set("publication_year", book.PublicationYear()).
		Set("category_id", book.Category().ID()).
		Set("updated_at", book.UpdatedAt()).
		Where(sq.Eq{"id": book.ID()}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return err
	}
	res, err := executor(ctx, r.db).ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "update book")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *bookRepo) SoftDelete(ctx context.Context, id int64) error {
	q, args, err := qb.Update(bookTableName).
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
		return errors.Wrap(err, "soft delete book")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
