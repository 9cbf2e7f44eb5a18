package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

func TestNewMember(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cfg     domain.MemberConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  domain.MemberConfig{FirstName: "Jane", LastName: "Reader", Email: "Jane.Reader@Example.com"},
		},
		{
			name:    "blank first name",
			cfg:     domain.MemberConfig{FirstName: " ", LastName: "Reader", Email: "jane@example.com"},
			wantErr: true,
		},
		{
			name:    "blank last name",
			cfg:     domain.MemberConfig{FirstName: "Jane", LastName: "", Email: "jane@example.com"},
			wantErr: true,
		},
		{
			name:    "bad email",
			cfg:     domain.MemberConfig{FirstName: "Jane", LastName: "Reader", Email: "jane-at-example"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			member, err := domain.NewMember(tt.cfg)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "jane.reader@example.com", member.Email().Value())
			require.Equal(t, "Jane Reader", member.FullName())
			require.True(t, member.Active())
		})
	}
}

func TestMember_UpdateContact(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		require.NoError(t, member.UpdateContact("Janet", "Bookworm", "Janet.Bookworm@Example.com"))
		require.Equal(t, "Janet Bookworm", member.FullName())
		require.Equal(t, "janet.bookworm@example.com", member.Email().Value())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		require.ErrorIs(t, member.UpdateContact(" ", "Bookworm", "janet@example.com"), domain.ErrValidation)
		require.Equal(t, "Jane Reader", member.FullName())
	})

	t.Run("rejects bad email", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		require.ErrorIs(t, member.UpdateContact("Janet", "Bookworm", "janet-at-example"), domain.ErrValidation)
		require.Equal(t, "jane.reader@example.com", member.Email().Value())
	})
}

func TestMember_LoanAggregation(t *testing.T) {
	t.Parallel()
	member := newTestMember(t)

	active := newTestLoan(t, 2, date(2024, 2, 1), date(2024, 2, 15))
	overdue := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
	overdue.MarkOverdueIfNeeded(date(2024, 1, 20))
	late := newTestLoan(t, 3, date(2024, 1, 1), date(2024, 1, 10))
	require.NoError(t, late.Return(date(2024, 1, 12))) // 2 days late x 3/day

	require.NoError(t, member.AddLoan(active))
	require.NoError(t, member.AddLoan(overdue))
	require.NoError(t, member.AddLoan(late))

	require.Len(t, member.Loans(), 3)
	require.Len(t, member.ActiveLoans(), 1)
	require.Len(t, member.OverdueLoans(), 1)
	require.True(t, member.HasOverdueLoans())
	require.Equal(t, 6, member.TotalPenaltyDays().Value())
}

func TestMember_LoansSnapshotIsDetached(t *testing.T) {
	t.Parallel()
	member := newTestMember(t)
	require.NoError(t, member.AddLoan(newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))))

	snapshot := member.Loans()
	snapshot[0] = nil
	require.NotNil(t, member.Loans()[0])
}

func TestMember_IsEligibleForLoan(t *testing.T) {
	t.Parallel()

	t.Run("fresh member is eligible", func(t *testing.T) {
		t.Parallel()
		require.True(t, newTestMember(t).IsEligibleForLoan())
	})

	t.Run("inactive member is blocked", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		member.Deactivate()
		require.False(t, member.IsEligibleForLoan())
		member.Activate()
		require.True(t, member.IsEligibleForLoan())
	})

	t.Run("overdue loan blocks", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		overdue := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		overdue.MarkOverdueIfNeeded(date(2024, 1, 20))
		require.NoError(t, member.AddLoan(overdue))
		require.False(t, member.IsEligibleForLoan())
	})

	t.Run("accumulated penalty blocks even after return", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		late := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		require.NoError(t, late.Return(date(2024, 1, 15)))
		require.NoError(t, member.AddLoan(late))
		require.False(t, member.IsEligibleForLoan())
	})

	t.Run("on-time history does not block", func(t *testing.T) {
		t.Parallel()
		member := newTestMember(t)
		onTime := newTestLoan(t, 2, date(2024, 1, 1), date(2024, 1, 10))
		require.NoError(t, onTime.Return(date(2024, 1, 9)))
		require.NoError(t, member.AddLoan(onTime))
		require.True(t, member.IsEligibleForLoan())
	})
}
