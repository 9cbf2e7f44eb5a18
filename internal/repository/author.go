package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/errs"
)

const (
	authorTableName     = `author`
	bookAuthorTableName = `book_author`
)

type AuthorRepository interface {
	Create(ctx context.Context, author *domain.Author) (int64, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Author, error)
}

type authorRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewAuthorRepository(db *sqlx.DB, log *zap.Logger) AuthorRepository {
	return &authorRepo{db: db, log: log.Named("author-repo")}
}

func (r *authorRepo) Create(ctx context.Context, author *domain.Author) (int64, error) {
	q, args, err := qb.Insert(authorTableName).
		Columns("first_name", "last_name", "nationality", "date_of_birth",
			"biography", "website", "email", "affiliation").
		Values(author.FirstName(), author.LastName(), author.Nationality(), author.DateOfBirth(),
			author.Biography(), author.Website(), author.Email(), author.Affiliation()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, q, args...); err != nil {
		return 0, errors.Wrap(err, "create author")
	}
	author.SetID(id)
	return id, nil
}

var authorColumns = []string{
	"id", "first_name", "last_name", "nationality", "date_of_birth",
	"biography", "website", "email", "affiliation",
}

func (r *authorRepo) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Author, error) {
	q, args, err := qb.Select(authorColumns...).
		From(authorTableName).
		Where(sq.Eq{"id": ids}).
		Where("deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []authorRow
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "find authors")
	}
	if len(rows) != len(ids) {
		return nil, errs.ErrNotFound
	}
	authors := make([]*domain.Author, 0, len(rows))
	for _, row := range rows {
		author, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}

// authorsByBookID loads the author list hanging off one book.
func authorsByBookID(ctx context.Context, db *sqlx.DB, bookID int64) ([]*domain.Author, error) {
	cols := make([]string, 0, len(authorColumns))
	for _, c := range authorColumns {
		cols = append(cols, "a."+c)
	}
	q, args, err := qb.Select(cols...).
		From(authorTableName + " a").
		Join(bookAuthorTableName + " ba on ba.author_id = a.id").
		Where(sq.Eq{"ba.book_id": bookID}).
		Where("a.deleted_at is null").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []authorRow
	if err := sqlx.SelectContext(ctx, executor(ctx, db), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "authors by book")
	}
	authors := make([]*domain.Author, 0, len(rows))
	for _, row := range rows {
		author, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}
