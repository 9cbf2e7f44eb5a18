package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/pkg/breaker"
)

func TestBreaker_OpensOnFailureRate(t *testing.T) {
	t.Parallel()
	b := breaker.New(10, time.Minute, 0.5, 2)

	ok := func() error { return nil }
	boom := func() error { return errors.New("broker down") }

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Do(ok))
	}
	for i := 0; i < 5; i++ {
		require.Error(t, b.Do(boom))
	}
	// window is now at the 50% threshold: next call is short-circuited
	require.ErrorIs(t, b.Do(ok), breaker.ErrOpen)
}

func TestBreaker_RecoversAfterCooldown(t *testing.T) {
	t.Parallel()
	b := breaker.New(4, 10*time.Millisecond, 0.5, 1)

	boom := func() error { return errors.New("broker down") }
	ok := func() error { return nil }

	for i := 0; i < 4; i++ {
		_ = b.Do(boom)
	}
	require.ErrorIs(t, b.Do(ok), breaker.ErrOpen)

	time.Sleep(20 * time.Millisecond)

	// half-open: calls pass through again, enough successes close it
	require.NoError(t, b.Do(ok))
	require.NoError(t, b.Do(ok))
	require.NoError(t, b.Do(ok))
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()
	b := breaker.New(4, 10*time.Millisecond, 0.5, 2)

	boom := func() error { return errors.New("broker down") }

	for i := 0; i < 4; i++ {
		_ = b.Do(boom)
	}
	time.Sleep(20 * time.Millisecond)

	require.Error(t, b.Do(boom))
	require.ErrorIs(t, b.Do(boom), breaker.ErrOpen)
}

func TestBreaker_Reset(t *testing.T) {
	t.Parallel()
	b := breaker.New(4, time.Minute, 0.5, 1)
	boom := func() error { return errors.New("broker down") }
	for i := 0; i < 4; i++ {
		_ = b.Do(boom)
	}
	require.ErrorIs(t, b.Do(boom), breaker.ErrOpen)

	b.Reset()
	require.NoError(t, b.Do(func() error { return nil }))
}
