package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

// fixtures shared by the entity tests: a novel with a 2-day penalty rate and
// an available copy of it at one library.

func newTestCategory(t *testing.T, penaltyPerDay int) *domain.Category {
	t.Helper()
	category, err := domain.NewCategory("Novel", 14, penaltyPerDay)
	require.NoError(t, err)
	return category
}

func newTestBook(t *testing.T, category *domain.Category) *domain.Book {
	t.Helper()
	author, err := domain.NewAuthor(domain.AuthorConfig{
		FirstName:   "Alan",
		LastName:    "Donovan",
		Nationality: "American",
	})
	require.NoError(t, err)
	book, err := domain.NewBook(domain.BookConfig{
		ISBN:            "1234567890123",
		Title:           "The Go Programming Language",
		Authors:         []*domain.Author{author},
		PublicationYear: 2015,
		Category:        category,
	})
	require.NoError(t, err)
	return book
}

func newTestCopy(t *testing.T, penaltyPerDay int) *domain.BookCopy {
	t.Helper()
	library, err := domain.NewLibrary("Central", "1 Main St", "Springfield")
	require.NoError(t, err)
	book := newTestBook(t, newTestCategory(t, penaltyPerDay))
	bookCopy, err := domain.NewBookCopy(domain.BookCopyConfig{
		Book:          book,
		Library:       library,
		CopyNumber:    1,
		Barcode:       "BC-0001",
		ShelfLocation: "A-12",
	})
	require.NoError(t, err)
	return bookCopy
}

func newTestMember(t *testing.T) *domain.Member {
	t.Helper()
	member, err := domain.NewMember(domain.MemberConfig{
		FirstName: "Jane",
		LastName:  "Reader",
		Email:     "jane.reader@example.com",
	})
	require.NoError(t, err)
	return member
}
