package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

func newTestReservation(t *testing.T) *domain.Reservation {
	t.Helper()
	reservation, err := domain.NewReservation(domain.ReservationConfig{
		BookCopy:   newTestCopy(t, 2),
		Member:     newTestMember(t),
		ReservedAt: date(2024, 1, 1),
		ExpiresAt:  date(2024, 1, 8),
	})
	require.NoError(t, err)
	return reservation
}

func TestNewReservation(t *testing.T) {
	t.Parallel()

	t.Run("active on an available copy", func(t *testing.T) {
		t.Parallel()
		reservation := newTestReservation(t)
		require.Equal(t, domain.ReservationStatusActive, reservation.Status())
		// Reserving never drives the copy's status.
		require.Equal(t, domain.CopyStatusAvailable, reservation.BookCopy().Status())
	})

	t.Run("reservedAt equal to expiresAt fails", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewReservation(domain.ReservationConfig{
			BookCopy:   newTestCopy(t, 2),
			Member:     newTestMember(t),
			ReservedAt: date(2024, 1, 8),
			ExpiresAt:  date(2024, 1, 8),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("non-available copy fails", func(t *testing.T) {
		t.Parallel()
		bookCopy := newTestCopy(t, 2)
		require.NoError(t, bookCopy.ChangeStatus(domain.CopyStatusOnLoan))
		_, err := domain.NewReservation(domain.ReservationConfig{
			BookCopy:   bookCopy,
			Member:     newTestMember(t),
			ReservedAt: date(2024, 1, 1),
			ExpiresAt:  date(2024, 1, 8),
		})
		require.ErrorIs(t, err, domain.ErrIllegalState)
	})

	t.Run("missing member fails", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewReservation(domain.ReservationConfig{
			BookCopy:   newTestCopy(t, 2),
			ReservedAt: date(2024, 1, 1),
			ExpiresAt:  date(2024, 1, 8),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestReservation_Cancel(t *testing.T) {
	t.Parallel()
	reservation := newTestReservation(t)
	require.NoError(t, reservation.Cancel())
	require.Equal(t, domain.ReservationStatusCancelled, reservation.Status())

	// terminal: a second cancel fails
	require.ErrorIs(t, reservation.Cancel(), domain.ErrIllegalState)
}

func TestReservation_ExpireIfPast(t *testing.T) {
	t.Parallel()

	t.Run("flips exactly when today is past expiry", func(t *testing.T) {
		t.Parallel()
		reservation := newTestReservation(t)
		reservation.ExpireIfPast(date(2024, 1, 8)) // on expiry day: no-op
		require.Equal(t, domain.ReservationStatusActive, reservation.Status())

		reservation.ExpireIfPast(date(2024, 1, 9))
		require.Equal(t, domain.ReservationStatusExpired, reservation.Status())
	})

	t.Run("no-op in terminal states regardless of date", func(t *testing.T) {
		t.Parallel()
		cancelled := newTestReservation(t)
		require.NoError(t, cancelled.Cancel())
		cancelled.ExpireIfPast(date(2030, 1, 1))
		require.Equal(t, domain.ReservationStatusCancelled, cancelled.Status())

		fulfilled := newTestReservation(t)
		require.NoError(t, fulfilled.MarkFulfilled())
		fulfilled.ExpireIfPast(date(2030, 1, 1))
		require.Equal(t, domain.ReservationStatusFulfilled, fulfilled.Status())

		expired := newTestReservation(t)
		expired.ExpireIfPast(date(2024, 1, 9))
		expired.ExpireIfPast(date(2030, 1, 1))
		require.Equal(t, domain.ReservationStatusExpired, expired.Status())
	})
}

func TestReservation_MarkFulfilled(t *testing.T) {
	t.Parallel()
	reservation := newTestReservation(t)
	require.NoError(t, reservation.MarkFulfilled())
	require.Equal(t, domain.ReservationStatusFulfilled, reservation.Status())
	// fulfilment itself leaves the copy untouched; loan creation owns it
	require.Equal(t, domain.CopyStatusAvailable, reservation.BookCopy().Status())

	require.ErrorIs(t, reservation.MarkFulfilled(), domain.ErrIllegalState)

	cancelled := newTestReservation(t)
	require.NoError(t, cancelled.Cancel())
	require.ErrorIs(t, cancelled.MarkFulfilled(), domain.ErrIllegalState)
}

func TestReservation_DatesAreDayGranular(t *testing.T) {
	t.Parallel()
	reservation, err := domain.NewReservation(domain.ReservationConfig{
		BookCopy:   newTestCopy(t, 2),
		Member:     newTestMember(t),
		ReservedAt: time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
		ExpiresAt:  time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, date(2024, 1, 1), reservation.ReservedAt())
	require.Equal(t, date(2024, 1, 8), reservation.ExpiresAt())
}
