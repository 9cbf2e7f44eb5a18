package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

var allCopyStatuses = []domain.CopyStatus{
	domain.CopyStatusAvailable,
	domain.CopyStatusOnLoan,
	domain.CopyStatusDamaged,
	domain.CopyStatusLost,
	domain.CopyStatusDeactivated,
}

func copyInStatus(t *testing.T, status domain.CopyStatus) *domain.BookCopy {
	t.Helper()
	bookCopy := newTestCopy(t, 2)
	switch status {
	case domain.CopyStatusAvailable:
	case domain.CopyStatusOnLoan:
		require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusOnLoan))
	case domain.CopyStatusDamaged:
		require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusDamaged))
	case domain.CopyStatusLost:
		require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusLost))
	case domain.CopyStatusDeactivated:
		require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusDeactivated))
	}
	require.Equal(t, status, bookCopy.Status())
	return bookCopy
}

func TestBookCopy_ChangeStatus_Matrix(t *testing.T) {
	t.Parallel()
	allowed := map[domain.CopyStatus][]domain.CopyStatus{
		domain.CopyStatusAvailable:   {domain.CopyStatusOnLoan, domain.CopyStatusDamaged, domain.CopyStatusLost, domain.CopyStatusDeactivated},
		domain.CopyStatusOnLoan:      {domain.CopyStatusAvailable, domain.CopyStatusDamaged, domain.CopyStatusLost},
		domain.CopyStatusDamaged:     {domain.CopyStatusDeactivated},
		domain.CopyStatusLost:        {domain.CopyStatusDeactivated},
		domain.CopyStatusDeactivated: nil,
	}
	for _, from := range allCopyStatuses {
		for _, to := range allCopyStatuses {
			from, to := from, to
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				t.Parallel()
				bookCopy := copyInStatus(t, from)
				err := bookCopy.ChangeStatus(to)
				if want {
					require.NoError(t, err)
					require.Equal(t, to, bookCopy.Status())
					return
				}
				require.ErrorIs(t, err, domain.ErrInvalidTransition)
				require.ErrorIs(t, err, domain.ErrIllegalState)
				require.Equal(t, from, bookCopy.Status())
			})
		}
	}
}

func TestBookCopy_DeactivatedIsTerminal(t *testing.T) {
	t.Parallel()
	bookCopy := copyInStatus(t, domain.CopyStatusDeactivated)
	for _, to := range allCopyStatuses {
		require.ErrorIs(t, bookCopy.ChangeStatus(to), domain.ErrInvalidTransition)
	}
}

func TestBookCopy_Availability(t *testing.T) {
	t.Parallel()
	for _, status := range allCopyStatuses {
		bookCopy := copyInStatus(t, status)
		want := status == domain.CopyStatusAvailable
		require.Equal(t, want, bookCopy.IsAvailableForLoan(), "loan availability in %s", status)
		require.Equal(t, want, bookCopy.IsAvailableForReservation(), "reservation availability in %s", status)
	}
}

func TestBookCopy_UpdateShelfLocation(t *testing.T) {
	t.Parallel()
	bookCopy := newTestCopy(t, 2)
	require.ErrorIs(t, bookCopy.UpdateShelfLocation("  "), domain.ErrValidation)
	require.Equal(t, "A-12", bookCopy.ShelfLocation())

	require.NoError(t, bookCopy.UpdateShelfLocation(" B-03 "))
	require.Equal(t, "B-03", bookCopy.ShelfLocation())
}

func TestBookCopy_ChangeStatusRefreshesUpdatedAt(t *testing.T) {
	t.Parallel()
	bookCopy := newTestCopy(t, 2)
	before := bookCopy.UpdatedAt()
	require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusOnLoan))
	require.False(t, bookCopy.UpdatedAt().Before(before))
}

func TestNewBookCopy_Validation(t *testing.T) {
	t.Parallel()
	library, err := domain.NewLibrary("Central", "1 Main St", "Springfield")
	require.NoError(t, err)
	book := newTestBook(t, newTestCategory(t, 1))

	tests := []struct {
		name string
		cfg  domain.BookCopyConfig
	}{
		{name: "nil book", cfg: domain.BookCopyConfig{Library: library, CopyNumber: 1, Barcode: "B", ShelfLocation: "A"}},
		{name: "nil library", cfg: domain.BookCopyConfig{Book: book, CopyNumber: 1, Barcode: "B", ShelfLocation: "A"}},
		{name: "zero copy number", cfg: domain.BookCopyConfig{Book: book, Library: library, Barcode: "B", ShelfLocation: "A"}},
		{name: "blank barcode", cfg: domain.BookCopyConfig{Book: book, Library: library, CopyNumber: 1, ShelfLocation: "A"}},
		{name: "blank shelf location", cfg: domain.BookCopyConfig{Book: book, Library: library, CopyNumber: 1, Barcode: "B"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewBookCopy(tt.cfg)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
