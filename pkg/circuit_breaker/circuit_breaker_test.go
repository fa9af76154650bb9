package circuit_breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := newCircuitBreaker(10, time.Second, 0.3, 2, clock.now)

	ok := func() error { return nil }
	errBroker := errors.New("broker down")
	fail := func() error { return errBroker }

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, Closed, cb.State())

	// three failures out of ten trip the breaker
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(fail), errBroker)
	}
	require.Equal(t, Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, ErrOpen)
	require.False(t, called)

	clock.t = clock.t.Add(2 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, Closed, cb.State())

	// a failed probe in half-open opens it again
	for i := 0; i < 3; i++ {
		_ = cb.Call(fail)
	}
	require.Equal(t, Open, cb.State())
	clock.t = clock.t.Add(2 * time.Second)
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, Open, cb.State())

	cb.Reset()
	require.Equal(t, Closed, cb.State())
}
