package repository

import (
	"database/sql"
	"time"

	"github.com/jikkosoft/library-service/internal/domain"
)

// Row types mirror the persisted schema; rehydration into domain entities
// goes through the domain Rehydrate* constructors so shape rules still hold.

type lifecycleRow struct {
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

func (r lifecycleRow) toDomain() domain.Lifecycle {
	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}
	return domain.RehydrateLifecycle(r.CreatedAt, r.UpdatedAt, deletedAt)
}

type categoryRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	MaxLoanDays   int    `db:"max_loan_days"`
	PenaltyPerDay int    `db:"penalty_per_day"`
}

func (r categoryRow) toDomain() (*domain.Category, error) {
	return domain.RehydrateCategory(r.ID, r.Name, r.MaxLoanDays, r.PenaltyPerDay)
}

type authorRow struct {
	ID          int64        `db:"id"`
	FirstName   string       `db:"first_name"`
	LastName    string       `db:"last_name"`
	Nationality string       `db:"nationality"`
	DateOfBirth sql.NullTime `db:"date_of_birth"`
	Biography   string       `db:"biography"`
	Website     string       `db:"website"`
	Email       string       `db:"email"`
	Affiliation string       `db:"affiliation"`
}

func (r authorRow) toDomain() (*domain.Author, error) {
	var dob *time.Time
	if r.DateOfBirth.Valid {
		t := r.DateOfBirth.Time
		dob = &t
	}
	return domain.NewAuthor(domain.AuthorConfig{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Nationality: r.Nationality,
		DateOfBirth: dob,
		Biography:   r.Biography,
		Website:     r.Website,
		Email:       r.Email,
		Affiliation: r.Affiliation,
	})
}

type libraryRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	City    string `db:"city"`
	lifecycleRow
}

func (r libraryRow) toDomain() (*domain.Library, error) {
	return domain.RehydrateLibrary(r.ID, r.Name, r.Address, r.City, r.lifecycleRow.toDomain())
}

type memberRow struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Active    bool   `db:"active"`
	lifecycleRow
}

func (r memberRow) toDomain() (*domain.Member, error) {
	return domain.RehydrateMember(domain.MemberConfig{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}, r.Active, r.lifecycleRow.toDomain())
}

// copyGraphRow is a book_copy joined with its book, category and library;
// enough to rebuild the aggregate a loan or reservation hangs off.
type copyGraphRow struct {
	ID            int64  `db:"id"`
	CopyNumber    int    `db:"copy_number"`
	Barcode       string `db:"barcode"`
	Status        string `db:"status"`
	ShelfLocation string `db:"shelf_location"`
	lifecycleRow

	BookID      int64        `db:"book_id"`
	ISBN        string       `db:"isbn"`
	Title       string       `db:"title"`
	PubYear     int          `db:"publication_year"`
	BookCreate  time.Time    `db:"book_created_at"`
	BookUpdate  time.Time    `db:"book_updated_at"`
	BookDelete  sql.NullTime `db:"book_deleted_at"`
	CategoryID  int64        `db:"category_id"`
	Category    string       `db:"category_name"`
	MaxLoanDays int          `db:"max_loan_days"`
	PerDay      int          `db:"penalty_per_day"`

	LibraryID   int64        `db:"library_id"`
	LibraryName string       `db:"library_name"`
	LibraryAddr string       `db:"library_address"`
	LibraryCity string       `db:"library_city"`
	LibCreate   time.Time    `db:"library_created_at"`
	LibUpdate   time.Time    `db:"library_updated_at"`
	LibDelete   sql.NullTime `db:"library_deleted_at"`
}

func (r copyGraphRow) toDomain(authors []*domain.Author) (*domain.BookCopy, error) {
	category, err := domain.RehydrateCategory(r.CategoryID, r.Category, r.MaxLoanDays, r.PerDay)
	if err != nil {
		return nil, err
	}
	book, err := domain.RehydrateBook(domain.BookConfig{
		ID:              r.BookID,
		ISBN:            r.ISBN,
		Title:           r.Title,
		Authors:         authors,
		PublicationYear: r.PubYear,
		Category:        category,
	}, lifecycleRow{CreatedAt: r.BookCreate, UpdatedAt: r.BookUpdate, DeletedAt: r.BookDelete}.toDomain())
	if err != nil {
		return nil, err
	}
	library, err := domain.RehydrateLibrary(r.LibraryID, r.LibraryName, r.LibraryAddr, r.LibraryCity,
		lifecycleRow{CreatedAt: r.LibCreate, UpdatedAt: r.LibUpdate, DeletedAt: r.LibDelete}.toDomain())
	if err != nil {
		return nil, err
	}
	return domain.RehydrateBookCopy(domain.BookCopyConfig{
		ID:            r.ID,
		Book:          book,
		Library:       library,
		CopyNumber:    r.CopyNumber,
		Barcode:       r.Barcode,
		ShelfLocation: r.ShelfLocation,
	}, domain.CopyStatus(r.Status), r.lifecycleRow.toDomain())
}

// copyGraphColumns selects the joined copy aggregate; keep in sync with
// copyGraphRow.
func copyGraphColumns(prefix string) []string {
	return []string{
		prefix + ".id",
		prefix + ".copy_number",
		prefix + ".barcode",
		prefix + ".status",
		prefix + ".shelf_location",
		prefix + ".created_at",
		prefix + ".updated_at",
		prefix + ".deleted_at",
		"b.id as book_id",
		"b.isbn",
		"b.title",
		"b.publication_year",
		"b.created_at as book_created_at",
		"b.updated_at as book_updated_at",
		"b.deleted_at as book_deleted_at",
		"c.id as category_id",
		"c.name as category_name",
		"c.max_loan_days",
		"c.penalty_per_day",
		"l.id as library_id",
		"l.name as library_name",
		"l.address as library_address",
		"l.city as library_city",
		"l.created_at as library_created_at",
		"l.updated_at as library_updated_at",
		"l.deleted_at as library_deleted_at",
	}
}
