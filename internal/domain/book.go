package domain

import "time"

const minPublicationYear = 1000

// BookConfig is the plain input record for NewBook.
type BookConfig struct {
	ID              int64
	ISBN            string
	Title           string
	Authors         []*Author
	PublicationYear int
	Category        *Category
}

// Book is the bibliographic aggregate root: one title, one or more authors,
// one policy category, and an ISBN whose format depends on the publication
// year.
type Book struct {
	Lifecycle

	id              int64
	isbn            ISBN
	title           BookTitle
	authors         []*Author
	publicationYear int
	category        *Category
}

func NewBook(cfg BookConfig) (*Book, error) {
	title, err := NewBookTitle(cfg.Title)
	if err != nil {
		return nil, err
	}
	if err := validatePublicationYear(cfg.PublicationYear); err != nil {
		return nil, err
	}
	if err := validateAuthors(cfg.Authors); err != nil {
		return nil, err
	}
	if cfg.Category == nil {
		return nil, validationf("book category must not be nil")
	}
	isbn, err := NewISBN(cfg.ISBN, cfg.PublicationYear)
	if err != nil {
		return nil, err
	}
	authors := make([]*Author, len(cfg.Authors))
	copy(authors, cfg.Authors)
	return &Book{
		Lifecycle:       newLifecycle(),
		id:              cfg.ID,
		isbn:            isbn,
		title:           title,
		authors:         authors,
		publicationYear: cfg.PublicationYear,
		category:        cfg.Category,
	}, nil
}

// RehydrateBook rebuilds a persisted book with its stored timestamps.
func RehydrateBook(cfg BookConfig, lc Lifecycle) (*Book, error) {
	b, err := NewBook(cfg)
	if err != nil {
		return nil, err
	}
	b.Lifecycle = lc
	return b, nil
}

func validatePublicationYear(year int) error {
	current := time.Now().Year()
	if year < minPublicationYear || year > current {
		return validationf("publication year must be between %d and %d, got %d", minPublicationYear, current, year)
	}
	return nil
}

func validateAuthors(authors []*Author) error {
	if len(authors) == 0 {
		return validationf("book must have at least one author")
	}
	for _, a := range authors {
		if a == nil {
			return validationf("book authors must not contain nil entries")
		}
	}
	return nil
}

func (b *Book) ID() int64            { return b.id }
func (b *Book) SetID(id int64)       { b.id = id }
func (b *Book) ISBN() ISBN           { return b.isbn }
func (b *Book) Title() BookTitle     { return b.title }
func (b *Book) PublicationYear() int { return b.publicationYear }
func (b *Book) Category() *Category  { return b.category }

// Authors returns a read-only snapshot.
func (b *Book) Authors() []*Author {
	out := make([]*Author, len(b.authors))
	copy(out, b.authors)
	return out
}

func (b *Book) SetTitle(title string) error {
	t, err := NewBookTitle(title)
	if err != nil {
		return err
	}
	b.title = t
	b.markUpdated()
	return nil
}

// SetPublicationYear keeps the owned ISBN consistent with the new year: the
// ISBN is re-validated against the new year before either field is assigned,
// so a failure leaves the book untouched.
func (b *Book) SetPublicationYear(year int) error {
	if err := validatePublicationYear(year); err != nil {
		return err
	}
	isbn, err := NewISBN(b.isbn.Value(), year)
	if err != nil {
		return err
	}
	b.publicationYear = year
	b.isbn = isbn
	b.markUpdated()
	return nil
}

// SetISBN replaces the ISBN, validated against the current publication year.
func (b *Book) SetISBN(raw string) error {
	isbn, err := NewISBN(raw, b.publicationYear)
	if err != nil {
		return err
	}
	b.isbn = isbn
	b.markUpdated()
	return nil
}

// ReplaceAuthors swaps the whole author list under the same rules as
// construction.
func (b *Book) ReplaceAuthors(authors []*Author) error {
	if err := validateAuthors(authors); err != nil {
		return err
	}
	next := make([]*Author, len(authors))
	copy(next, authors)
	b.authors = next
	b.markUpdated()
	return nil
}

func (b *Book) SetCategory(category *Category) error {
	if category == nil {
		return validationf("book category must not be nil")
	}
	b.category = category
	b.markUpdated()
	return nil
}
