package runner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// manualTimer is a tick that only fires when the test says so.
type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// manualScheduler records armed ticks for deterministic firing.
type manualScheduler struct {
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// pending returns armed ticks that have neither fired nor been stopped.
func (s *manualScheduler) pending() []*manualTimer {
	var out []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the single pending tick. Returns false when none is armed.
func (s *manualScheduler) fire(t *testing.T) bool {
	t.Helper()
	p := s.pending()
	require.LessOrEqual(t, len(p), 1, "more than one tick armed")
	if len(p) == 0 {
		return false
	}
	p[0].fired = true
	p[0].fn()
	return true
}

func newTestController(t *testing.T, rows, cols int, seed int64) (*Controller, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	c, err := New(Options{
		Rows:      rows,
		Cols:      cols,
		Seed:      seed,
		Interval:  10 * time.Millisecond,
		Scheduler: sched,
	})
	require.NoError(t, err)
	return c, sched
}

func assertPristine(t *testing.T, snap Snapshot) {
	t.Helper()
	assert.Equal(t, Idle, snap.Mode)
	assert.Zero(t, snap.Visited)
	assert.Zero(t, snap.Passages)
	assert.Zero(t, snap.Frontier)
	assert.Zero(t, snap.Steps)
	for _, cell := range snap.Cells {
		assert.False(t, cell.Visited)
		assert.Equal(t, [4]bool{true, true, true, true}, cell.Walls)
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	_, err := New(Options{Rows: 0, Cols: 4})
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
}

func TestInitialState(t *testing.T) {
	c, sched := newTestController(t, 3, 4, 1)

	snap := c.Snapshot()
	assertPristine(t, snap)
	assert.Equal(t, 3, snap.Rows)
	assert.Equal(t, 4, snap.Cols)
	assert.Len(t, snap.Cells, 12)
	assert.Equal(t, maze.NoStart, snap.Last.Kind)
	assert.Empty(t, sched.timers)
}

func TestFirstStepIsLazyStart(t *testing.T) {
	c, _ := newTestController(t, 5, 5, 7)

	res := c.Step()

	assert.Equal(t, maze.Grown, res.Kind)
	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.Mode)
	assert.Equal(t, 1, snap.Visited)
	assert.Equal(t, res, snap.Last)
	assert.True(t, snap.Cell(res.Cell.Row, res.Cell.Col).Visited)
}

func TestTwoByTwoExhaustsAfterFourGrowths(t *testing.T) {
	c, sched := newTestController(t, 2, 2, 3)

	for i := 0; i < 4; i++ {
		require.Equal(t, maze.Grown, c.Step().Kind, "step %d", i+1)
	}
	assert.Equal(t, maze.Exhausted, c.Step().Kind)

	snap := c.Snapshot()
	assert.Equal(t, Exhausted, snap.Mode)
	assert.Equal(t, 4, snap.Visited)
	assert.Equal(t, 3, snap.Passages)

	// Exhausted is terminal until reset
	assert.Equal(t, maze.Exhausted, c.Step().Kind)
	c.Start()
	assert.Equal(t, Exhausted, c.Mode())
	assert.Empty(t, sched.pending())
	c.Stop()
	assert.Equal(t, Exhausted, c.Mode())
}

func TestStartStepsImmediatelyAndArms(t *testing.T) {
	c, sched := newTestController(t, 4, 4, 11)

	c.Start()

	assert.Equal(t, Running, c.Mode())
	assert.Equal(t, 1, c.Snapshot().Visited)
	require.Len(t, sched.pending(), 1)
	assert.Equal(t, 10*time.Millisecond, sched.pending()[0].delay)

	require.True(t, sched.fire(t))
	assert.Equal(t, 2, c.Snapshot().Visited)

	// Start while running is a no-op
	c.Start()
	assert.Equal(t, 2, c.Snapshot().Visited)
	assert.Len(t, sched.pending(), 1)
}

func TestIntervalChangeAppliesToNextTick(t *testing.T) {
	c, sched := newTestController(t, 4, 4, 11)
	c.Start()

	c.SetInterval(40 * time.Millisecond)
	armed := sched.pending()
	require.Len(t, armed, 1)
	assert.Equal(t, 10*time.Millisecond, armed[0].delay)

	require.True(t, sched.fire(t))
	require.Len(t, sched.pending(), 1)
	assert.Equal(t, 40*time.Millisecond, sched.pending()[0].delay)

	c.SetInterval(0)
	assert.Equal(t, MinInterval, c.Interval())
}

func TestAutoplayRunsToExhaustion(t *testing.T) {
	c, sched := newTestController(t, 6, 5, 21)
	c.Start()

	ticks := 0
	for sched.fire(t) {
		ticks++
		require.Less(t, ticks, 1000)
	}

	snap := c.Snapshot()
	assert.Equal(t, Exhausted, snap.Mode)
	assert.Equal(t, 30, snap.Visited)
	assert.Equal(t, 29, snap.Passages)
	assert.Equal(t, 30, snap.Steps)
	assert.Empty(t, sched.pending())
	// One tick per remaining cell plus the tick that found the frontier empty
	assert.Equal(t, 30, ticks)
}

func TestStopThenManualStepContinues(t *testing.T) {
	const seed = 5
	c, sched := newTestController(t, 5, 6, seed)

	var got []maze.Pos
	c.Start()
	got = append(got, c.Snapshot().Last.Cell)
	require.True(t, sched.fire(t))
	got = append(got, c.Snapshot().Last.Cell)
	c.Stop()

	assert.Equal(t, Idle, c.Mode())
	assert.Empty(t, sched.pending())
	assert.Equal(t, 2, c.Snapshot().Visited)

	for {
		res := c.Step()
		if res.Kind != maze.Grown {
			break
		}
		got = append(got, res.Cell)
	}

	// Same seed through the bare generator yields the same sequence
	g, err := maze.Build(5, 6)
	require.NoError(t, err)
	f := maze.NewFrontier()
	gen := maze.NewSeededGenerator(seed)
	var want []maze.Pos
	for {
		res := gen.Step(g, f)
		if res.Kind != maze.Grown {
			break
		}
		want = append(want, res.Cell)
	}

	assert.Equal(t, want, got)
	assert.Len(t, got, 30)
}

func TestStaleTickIsDropped(t *testing.T) {
	c, sched := newTestController(t, 4, 4, 2)
	c.Start()
	armed := sched.pending()
	require.Len(t, armed, 1)

	// The tick raced with Stop: Stop returned, then the callback ran anyway
	c.Stop()
	armed[0].fn()
	assert.Equal(t, 1, c.Snapshot().Visited)
	assert.Equal(t, Idle, c.Mode())

	// Restart arms a new tick; the old callback still must not fire
	c.Start()
	armed[0].fn()
	assert.Equal(t, 2, c.Snapshot().Visited)
	assert.Len(t, sched.pending(), 1)
}

func TestStaleTickAfterReset(t *testing.T) {
	c, sched := newTestController(t, 4, 4, 2)
	c.Start()
	armed := sched.pending()
	require.Len(t, armed, 1)

	c.Reset()
	armed[0].fn()

	assertPristine(t, c.Snapshot())
	assert.True(t, armed[0].stopped)
}

func TestResetFromEveryMode(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, c *Controller, sched *manualScheduler)
	}{
		{"idle", func(_ *testing.T, c *Controller, _ *manualScheduler) {
			c.Step()
			c.Step()
		}},
		{"running", func(t *testing.T, c *Controller, sched *manualScheduler) {
			c.Start()
			sched.fire(t)
		}},
		{"exhausted", func(_ *testing.T, c *Controller, _ *manualScheduler) {
			for c.Step().Kind != maze.Exhausted {
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, sched := newTestController(t, 3, 3, 8)
			tc.setup(t, c, sched)
			epoch := c.Snapshot().Epoch

			c.Reset()

			snap := c.Snapshot()
			assertPristine(t, snap)
			assert.Equal(t, epoch+1, snap.Epoch)
			assert.Empty(t, sched.pending())

			// Growth works again after reset
			assert.Equal(t, maze.Grown, c.Step().Kind)
		})
	}
}

func TestReseedIsReproducible(t *testing.T) {
	c, _ := newTestController(t, 4, 4, 1)
	c.Step()

	c.Reseed(99)
	first := c.Step().Cell
	second := c.Step().Cell
	assert.Equal(t, int64(99), c.Snapshot().Seed)

	c.Reseed(99)
	assert.Equal(t, first, c.Step().Cell)
	assert.Equal(t, second, c.Step().Cell)
}

func TestSnapshotIsIdempotentAndDetached(t *testing.T) {
	c, _ := newTestController(t, 3, 3, 4)
	c.Step()
	c.Step()

	a := c.Snapshot()
	b := c.Snapshot()
	assert.Equal(t, a, b)

	a.Cells[0].Visited = !a.Cells[0].Visited
	a.Cells[0].Walls[maze.SideTop] = false
	assert.Equal(t, b, c.Snapshot())
}

func TestChangesSignal(t *testing.T) {
	c, _ := newTestController(t, 3, 3, 4)

	select {
	case <-c.Changes():
		t.Fatal("no change expected before any operation")
	default:
	}

	c.Step()
	select {
	case <-c.Changes():
	default:
		t.Fatal("expected a change after a step")
	}

	c.Reset()
	select {
	case <-c.Changes():
	default:
		t.Fatal("expected a change after reset")
	}
}

func TestToggle(t *testing.T) {
	c, sched := newTestController(t, 3, 3, 4)

	c.Toggle()
	assert.Equal(t, Running, c.Mode())
	c.Toggle()
	assert.Equal(t, Idle, c.Mode())
	assert.Empty(t, sched.pending())
}

func TestResize(t *testing.T) {
	c, sched := newTestController(t, 3, 3, 6)
	c.Start()
	epoch := c.Snapshot().Epoch

	require.NoError(t, c.Resize(4, 7))
	assert.Empty(t, sched.pending())

	snap := c.Snapshot()
	assert.Equal(t, 4, snap.Rows)
	assert.Equal(t, 7, snap.Cols)
	assert.Len(t, snap.Cells, 28)
	assert.Equal(t, epoch+1, snap.Epoch)
	assertPristine(t, snap)

	err := c.Resize(0, 7)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	assert.Equal(t, 4, c.Snapshot().Rows)

	// The new size is kept across resets
	c.Reset()
	assert.Len(t, c.Snapshot().Cells, 28)
}

func TestWaitWithRealTimer(t *testing.T) {
	c, err := New(Options{Rows: 6, Cols: 6, Seed: 17, Interval: time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.Start()
	require.NoError(t, c.Wait(ctx))

	snap := c.Snapshot()
	assert.Equal(t, Exhausted, snap.Mode)
	assert.Equal(t, 36, snap.Visited)
	assert.Equal(t, 35, snap.Passages)
	assert.False(t, snap.FinishedAt.Before(snap.StartedAt))
}

func TestWaitHonorsContext(t *testing.T) {
	c, _ := newTestController(t, 3, 3, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Wait(ctx), context.Canceled)
}

func TestConcurrentStepsAndTicks(t *testing.T) {
	c, err := New(Options{Rows: 12, Cols: 12, Seed: 3, Interval: time.Millisecond})
	require.NoError(t, err)

	c.Start()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c.Step().Kind != maze.Exhausted {
				_ = c.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, Exhausted, snap.Mode)
	assert.Equal(t, 144, snap.Visited)
	assert.Equal(t, 143, snap.Passages)
	assert.Equal(t, 144, snap.Steps)
}
