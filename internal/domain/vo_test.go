package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

func TestNewISBN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		year    int
		wantErr bool
	}{
		{name: "10 digits before 2007", raw: "1234567890", year: 2005},
		{name: "13 digits from 2007", raw: "1234567890123", year: 2010},
		{name: "13 digits exactly 2007", raw: "1234567890123", year: 2007},
		{name: "9 digits before 2007", raw: "123456789", year: 2005, wantErr: true},
		{name: "10 digits from 2007", raw: "1234567890", year: 2010, wantErr: true},
		{name: "13 digits before 2007", raw: "1234567890123", year: 2005, wantErr: true},
		{name: "blank", raw: "", year: 2010, wantErr: true},
		{name: "letters", raw: "12345abcde", year: 2005, wantErr: true},
		{name: "surrounding spaces trimmed", raw: " 1234567890 ", year: 2005},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isbn, err := domain.NewISBN(tt.raw, tt.year)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, isbn.Value())
		})
	}
}

func TestNewEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "reader@example.com", want: "reader@example.com"},
		{name: "normalized lowercase and trimmed", raw: "  Reader@Example.COM ", want: "reader@example.com"},
		{name: "plus tag", raw: "reader+tag@example.com", want: "reader+tag@example.com"},
		{name: "missing at", raw: "reader.example.com", wantErr: true},
		{name: "missing tld", raw: "reader@example", wantErr: true},
		{name: "single letter tld", raw: "reader@example.c", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			email, err := domain.NewEmail(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, email.Value())
		})
	}
}

func TestNewCopyNumber(t *testing.T) {
	t.Parallel()
	_, err := domain.NewCopyNumber(0)
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = domain.NewCopyNumber(-3)
	require.ErrorIs(t, err, domain.ErrValidation)

	n, err := domain.NewCopyNumber(1)
	require.NoError(t, err)
	require.Equal(t, 1, n.Value())
}

func TestNewPenaltyDays(t *testing.T) {
	t.Parallel()
	_, err := domain.NewPenaltyDays(-1)
	require.ErrorIs(t, err, domain.ErrValidation)

	a, err := domain.NewPenaltyDays(0)
	require.NoError(t, err)
	b, err := domain.NewPenaltyDays(7)
	require.NoError(t, err)
	require.Equal(t, 7, a.Add(b).Value())
}

func TestNewBookTitle(t *testing.T) {
	t.Parallel()
	_, err := domain.NewBookTitle("   ")
	require.ErrorIs(t, err, domain.ErrValidation)

	title, err := domain.NewBookTitle("  The Go Programming Language ")
	require.NoError(t, err)
	require.Equal(t, "The Go Programming Language", title.Value())
}
