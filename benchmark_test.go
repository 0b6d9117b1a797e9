package benchkit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatYieldsSameInstance(t *testing.T) {
	bs, err := Repeat(5, "identity")
	require.NoError(t, err)

	var seen []*Benchmark
	for b := range bs {
		seen = append(seen, b)
	}

	require.Len(t, seen, 5)
	for _, b := range seen {
		assert.Same(t, seen[0], b)
	}
	assert.Equal(t, "identity", seen[0].Name())
}

func TestRepeatInvalidCount(t *testing.T) {
	for _, n := range []int{0, -1, -1000} {
		_, err := Repeat(n, "bad")
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestRepeatIsRestartable(t *testing.T) {
	first, err := Repeat(2, "restart")
	require.NoError(t, err)
	for b := range first {
		require.NoError(t, b.Time(context.Background(), func(context.Context) error { return nil }))
	}

	second, err := Repeat(2, "restart")
	require.NoError(t, err)
	for b := range second {
		// Fresh benchmark, fresh store.
		assert.Equal(t, 0, b.Len())
		break
	}
}

func TestScopeCommitsOneRow(t *testing.T) {
	b := New("scope")
	_, s, err := b.Start(context.Background())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	s.End()

	require.Equal(t, 1, b.Len())
	assert.GreaterOrEqual(t, b.Durations()[0], 5*time.Millisecond)
}

func TestScopeEndIsIdempotent(t *testing.T) {
	b := New("idempotent")
	_, s, err := b.Start(context.Background())
	require.NoError(t, err)

	s.End()
	s.End()

	assert.Equal(t, 1, b.Len())
}

func TestReentrantScope(t *testing.T) {
	b := New("reentrant")
	_, s, err := b.Start(context.Background())
	require.NoError(t, err)

	_, _, err = b.Start(context.Background())
	require.ErrorIs(t, err, ErrReentrantScope)
	// Misuse leaves the store unchanged.
	assert.Equal(t, 0, b.Len())

	s.End()

	// The scope is usable again after End.
	_, s, err = b.Start(context.Background())
	require.NoError(t, err)
	s.End()
	assert.Equal(t, 2, b.Len())
}

func TestPanicStillCommitsRow(t *testing.T) {
	b := New("panicky")

	func() {
		defer func() {
			require.Equal(t, "boom", recover())
		}()
		_, s, err := b.Start(context.Background())
		require.NoError(t, err)
		defer s.End()
		panic("boom")
	}()

	assert.Equal(t, 1, b.Len())
}

func TestTimePropagatesErrorAfterCommit(t *testing.T) {
	b := New("failing")
	wantErr := errors.New("workload failed")

	err := b.Time(context.Background(), func(context.Context) error {
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, b.Len(), "failed iteration's time must still be recorded")
}

func TestIncrWithoutActiveScope(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		Incr(ctx, "orphan")
	})
	require.NoError(t, IncrN(ctx, "orphan", 3))

	// Bad arguments are rejected even with no scope active.
	require.ErrorIs(t, IncrN(ctx, "orphan", 0), ErrInvalidArgument)
	require.ErrorIs(t, IncrN(ctx, "orphan", -2), ErrInvalidArgument)
}

func TestIncrAfterEndIsNoOp(t *testing.T) {
	b := New("late")
	ctx, s, err := b.Start(context.Background())
	require.NoError(t, err)
	Incr(ctx, "x")
	s.End()

	// The row is committed and immutable; a stale context changes nothing.
	Incr(ctx, "x")
	require.NoError(t, IncrN(ctx, "x", 5))

	assert.Equal(t, []int64{1}, b.CounterValues("x"))
}

func TestCounterScenario(t *testing.T) {
	bs, err := Repeat(3, "scenario")
	require.NoError(t, err)

	var bench *Benchmark
	i := 0
	for b := range bs {
		bench = b
		ctx, s, err := b.Start(context.Background())
		require.NoError(t, err)
		switch i {
		case 0:
			Incr(ctx, "x")
			Incr(ctx, "x")
		case 1:
			Incr(ctx, "x")
		}
		s.End()
		i++
	}

	assert.Equal(t, []int64{2, 1, 0}, bench.CounterValues("x"))

	mean, err := bench.CounterMean("x")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean, 1e-9)
}

func TestCountersUnionAndZeroFill(t *testing.T) {
	b := New("union")
	ctx := context.Background()

	require.NoError(t, b.Time(ctx, func(ctx context.Context) error {
		Incr(ctx, "hits")
		return nil
	}))
	require.NoError(t, b.Time(ctx, func(ctx context.Context) error {
		return IncrN(ctx, "misses", 4)
	}))
	require.NoError(t, b.Time(ctx, func(context.Context) error {
		return nil
	}))

	assert.Equal(t, []string{"hits", "misses"}, b.Counters())
	assert.Equal(t, []int64{1, 0, 0}, b.CounterValues("hits"))
	assert.Equal(t, []int64{0, 4, 0}, b.CounterValues("misses"))
	assert.Equal(t, []int64{0, 0, 0}, b.CounterValues("unknown"))
	assert.Len(t, b.CounterValues("hits"), b.Len())
}

func TestNestedBenchmarksRouteToInnermost(t *testing.T) {
	outer := New("outer")
	inner := New("inner")

	outerCtx, outerScope, err := outer.Start(context.Background())
	require.NoError(t, err)

	innerCtx, innerScope, err := inner.Start(outerCtx)
	require.NoError(t, err)

	Incr(innerCtx, "n")
	innerScope.End()

	// Back on the outer context, the outer benchmark is active again.
	Incr(outerCtx, "n")
	outerScope.End()

	assert.Equal(t, []int64{1}, inner.CounterValues("n"))
	assert.Equal(t, []int64{1}, outer.CounterValues("n"))
}

func TestConcurrentRunsDoNotCrossContaminate(t *testing.T) {
	var wg sync.WaitGroup
	benches := make([]*Benchmark, 4)

	for i := range benches {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := New("worker")
			for range 10 {
				_ = b.Time(context.Background(), func(ctx context.Context) error {
					Incr(ctx, "iterations")
					return nil
				})
			}
			benches[i] = b
		}(i)
	}
	wg.Wait()

	for _, b := range benches {
		assert.Equal(t, 10, b.Len())
		for _, v := range b.CounterValues("iterations") {
			assert.Equal(t, int64(1), v)
		}
	}
}
