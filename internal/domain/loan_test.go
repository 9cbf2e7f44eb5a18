package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestLoan(t *testing.T, penaltyPerDay int, loanDate, dueDate time.Time) *domain.Loan {
	t.Helper()
	loan, err := domain.NewLoan(domain.LoanConfig{
		BookCopy: newTestCopy(t, penaltyPerDay),
		Member:   newTestMember(t),
		LoanDate: loanDate,
		DueDate:  dueDate,
	})
	require.NoError(t, err)
	return loan
}

func TestNewLoan(t *testing.T) {
	t.Parallel()

	t.Run("claims an available copy", func(t *testing.T) {
		t.Parallel()
		bookCopy := newTestCopy(t, 2)
		loan, err := domain.NewLoan(domain.LoanConfig{
			BookCopy: bookCopy,
			Member:   newTestMember(t),
			LoanDate: date(2024, 1, 1),
			DueDate:  date(2024, 1, 10),
		})
		require.NoError(t, err)
		require.Equal(t, domain.LoanStatusActive, loan.Status())
		require.Equal(t, domain.CopyStatusOnLoan, bookCopy.Status())
		require.Nil(t, loan.ReturnDate())
	})

	t.Run("rejects a copy that is not available", func(t *testing.T) {
		t.Parallel()
		bookCopy := newTestCopy(t, 2)
		require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusDamaged))
		_, err := domain.NewLoan(domain.LoanConfig{
			BookCopy: bookCopy,
			Member:   newTestMember(t),
			LoanDate: date(2024, 1, 1),
			DueDate:  date(2024, 1, 10),
		})
		require.ErrorIs(t, err, domain.ErrIllegalState)
		require.Equal(t, domain.CopyStatusDamaged, bookCopy.Status())
	})

	t.Run("rejects due date before loan date", func(t *testing.T) {
		t.Parallel()
		bookCopy := newTestCopy(t, 2)
		_, err := domain.NewLoan(domain.LoanConfig{
			BookCopy: bookCopy,
			Member:   newTestMember(t),
			LoanDate: date(2024, 1, 10),
			DueDate:  date(2024, 1, 1),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, domain.CopyStatusAvailable, bookCopy.Status())
	})

	t.Run("rejects missing references", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewLoan(domain.LoanConfig{
			Member:   newTestMember(t),
			LoanDate: date(2024, 1, 1),
			DueDate:  date(2024, 1, 10),
		})
		require.ErrorIs(t, err, domain.ErrValidation)

		_, err = domain.NewLoan(domain.LoanConfig{
			BookCopy: newTestCopy(t, 2),
			LoanDate: date(2024, 1, 1),
			DueDate:  date(2024, 1, 10),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLoan_Return(t *testing.T) {
	t.Parallel()

	t.Run("hands the copy back", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		require.NoError(t, loan.Return(date(2024, 1, 8)))
		require.Equal(t, domain.LoanStatusReturned, loan.Status())
		require.Equal(t, domain.CopyStatusAvailable, loan.BookCopy().Status())
		require.NotNil(t, loan.ReturnDate())
	})

	t.Run("second return fails", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		require.NoError(t, loan.Return(date(2024, 1, 8)))
		require.ErrorIs(t, loan.Return(date(2024, 1, 9)), domain.ErrIllegalState)
	})

	t.Run("return before loan date fails", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 5), date(2024, 1, 10))
		require.ErrorIs(t, loan.Return(date(2024, 1, 2)), domain.ErrValidation)
		require.Equal(t, domain.LoanStatusActive, loan.Status())
	})

	t.Run("a damaged copy keeps its status", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		require.NoError(t, loan.BookCopy().ChangeStatus(domain.CopyStatusDamaged))
		require.NoError(t, loan.Return(date(2024, 1, 8)))
		require.Equal(t, domain.LoanStatusReturned, loan.Status())
		require.Equal(t, domain.CopyStatusDamaged, loan.BookCopy().Status())
	})
}

func TestLoan_MarkOverdueIfNeeded(t *testing.T) {
	t.Parallel()

	t.Run("past due", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		loan.MarkOverdueIfNeeded(date(2024, 1, 11))
		require.Equal(t, domain.LoanStatusOverdue, loan.Status())
		// idempotent
		loan.MarkOverdueIfNeeded(date(2024, 1, 12))
		require.Equal(t, domain.LoanStatusOverdue, loan.Status())
	})

	t.Run("on the due date", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		loan.MarkOverdueIfNeeded(date(2024, 1, 10))
		require.Equal(t, domain.LoanStatusActive, loan.Status())
	})

	t.Run("already returned", func(t *testing.T) {
		t.Parallel()
		loan := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		require.NoError(t, loan.Return(date(2024, 1, 9)))
		loan.MarkOverdueIfNeeded(date(2024, 2, 1))
		require.Equal(t, domain.LoanStatusReturned, loan.Status())
	})
}

func TestLoan_CalculatePenaltyDays(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		penaltyPerDay int
		dueDate       time.Time
		returnDate    *time.Time
		want          int
	}{
		{
			name:          "five days late at two per day",
			penaltyPerDay: 2,
			dueDate:       date(2024, 1, 10),
			returnDate:    timePtr(date(2024, 1, 15)),
			want:          10,
		},
		{
			name:          "returned on due date",
			penaltyPerDay: 2,
			dueDate:       date(2024, 1, 10),
			returnDate:    timePtr(date(2024, 1, 10)),
			want:          0,
		},
		{
			name:          "returned early",
			penaltyPerDay: 2,
			dueDate:       date(2024, 1, 10),
			returnDate:    timePtr(date(2024, 1, 5)),
			want:          0,
		},
		{
			name:          "not yet returned",
			penaltyPerDay: 2,
			dueDate:       date(2024, 1, 10),
			returnDate:    nil,
			want:          0,
		},
		{
			name:          "free category",
			penaltyPerDay: 0,
			dueDate:       date(2024, 1, 10),
			returnDate:    timePtr(date(2024, 1, 20)),
			want:          0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loan := newTestLoan(t, tt.penaltyPerDay, date(2024, 1, 1), tt.dueDate)
			if tt.returnDate != nil {
				require.NoError(t, loan.Return(*tt.returnDate))
			}
			require.Equal(t, tt.want, loan.CalculatePenaltyDays().Value())
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
