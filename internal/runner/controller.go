// Package runner drives a maze generator step by step or on a timer.
// It owns the grid and frontier and guards them with a single mutex, so
// manual steps, timer ticks and snapshots never observe a half-applied step.
package runner

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Mode is the controller's run state.
type Mode uint8

const (
	Idle Mode = iota
	Running
	Exhausted
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Exhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// MinInterval is the shortest autoplay interval accepted by SetInterval.
const MinInterval = time.Millisecond

// Options configures a Controller.
type Options struct {
	Rows int
	Cols int

	// Seed seeds math/rand when Source is nil. 0 means current time.
	Seed int64
	// Source overrides the random source. Reseed replaces it.
	Source maze.Source

	Interval  time.Duration // Autoplay interval (default 1ms)
	Scheduler Scheduler     // Default TimeScheduler
	Logger    *log.Logger   // Default discards
	Now       func() time.Time
}

// Controller runs the maze generator in Idle, Running or Exhausted mode.
type Controller struct {
	mu sync.Mutex

	rows     int
	cols     int
	seed     int64
	grid     *maze.Grid
	frontier *maze.Frontier
	gen      *maze.Generator

	mode       Mode
	epoch      uint64
	steps      int
	last       maze.StepResult
	startedAt  time.Time
	finishedAt time.Time

	timer  Timer
	ticket uint64 // Bumped on every arm/cancel; stale ticks compare against it

	interval atomic.Int64
	sched    Scheduler
	logger   *log.Logger
	now      func() time.Time
	changes  chan struct{}
}

// New creates an Idle controller with a fresh grid.
func New(opts Options) (*Controller, error) {
	grid, err := maze.Build(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		rows:     opts.Rows,
		cols:     opts.Cols,
		grid:     grid,
		frontier: maze.NewFrontier(),
		sched:    opts.Scheduler,
		logger:   opts.Logger,
		now:      opts.Now,
		changes:  make(chan struct{}, 1),
	}
	if c.sched == nil {
		c.sched = TimeScheduler{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}

	if opts.Source != nil {
		c.gen = maze.NewGenerator(opts.Source)
	} else {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.seed = seed
		c.gen = maze.NewGenerator(rand.New(rand.NewSource(seed)))
	}

	c.SetInterval(opts.Interval)
	return c, nil
}

// Step runs one generator step. In Exhausted mode it is a no-op.
func (c *Controller) Step() maze.StepResult {
	c.mu.Lock()
	res, changed := c.stepLocked()
	c.mu.Unlock()

	if changed {
		c.notify()
	}
	return res
}

// Start switches Idle to Running, performs one step immediately and arms the
// timer. It does nothing in Running or Exhausted mode.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.mode != Idle {
		c.mu.Unlock()
		return
	}

	c.mode = Running
	c.logger.Debug("autoplay started", "epoch", c.epoch, "interval", c.Interval())
	c.stepLocked()
	if c.mode == Running {
		c.armLocked()
	}
	c.mu.Unlock()

	c.notify()
}

// Stop cancels autoplay and returns to Idle. It does nothing unless Running.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.mode != Running {
		c.mu.Unlock()
		return
	}

	c.cancelLocked()
	c.mode = Idle
	c.logger.Debug("autoplay stopped", "epoch", c.epoch, "steps", c.steps)
	c.mu.Unlock()

	c.notify()
}

// Toggle starts autoplay when Idle and stops it when Running.
func (c *Controller) Toggle() {
	if c.Mode() == Running {
		c.Stop()
		return
	}
	c.Start()
}

// Reset cancels any pending tick, replaces the grid, clears the frontier
// and returns to Idle. The random source keeps its sequence.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()

	c.notify()
}

// Reseed resets like Reset and restarts the random source from seed.
// A zero seed uses the current time.
func (c *Controller) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c.mu.Lock()
	c.seed = seed
	c.gen = maze.NewGenerator(rand.New(rand.NewSource(seed)))
	c.resetLocked()
	c.mu.Unlock()

	c.notify()
}

// Resize resets with new dimensions. On invalid dimensions the controller
// is left untouched.
func (c *Controller) Resize(rows, cols int) error {
	if _, err := maze.Build(rows, cols); err != nil {
		return err
	}

	c.mu.Lock()
	c.rows = rows
	c.cols = cols
	c.resetLocked()
	c.mu.Unlock()

	c.notify()
	return nil
}

// SetInterval changes the autoplay interval. The tick already armed keeps
// its delay; the next one uses the new value.
func (c *Controller) SetInterval(d time.Duration) {
	if d < MinInterval {
		d = MinInterval
	}
	c.interval.Store(int64(d))
}

// Interval returns the current autoplay interval.
func (c *Controller) Interval() time.Duration {
	return time.Duration(c.interval.Load())
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Rows:       c.rows,
		Cols:       c.cols,
		Cells:      c.grid.Cells(),
		Mode:       c.mode,
		Epoch:      c.epoch,
		Seed:       c.seed,
		Steps:      c.steps,
		Visited:    c.grid.VisitedCount(),
		Passages:   c.grid.PassageCount(),
		Frontier:   c.frontier.Len(),
		Last:       c.last,
		Interval:   c.Interval(),
		StartedAt:  c.startedAt,
		FinishedAt: c.finishedAt,
	}
}

// Changes signals after every growth, mode change and reset.
// Signals coalesce: a receiver sees at least one per burst of changes and
// should read Snapshot for the current state. Intended for a single consumer.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Wait blocks until the maze is exhausted or ctx is done.
// It consumes Changes, so it must not share the channel with another reader.
func (c *Controller) Wait(ctx context.Context) error {
	for {
		if c.Mode() == Exhausted {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.changes:
		}
	}
}

// stepLocked runs the generator once. Reports whether state changed.
func (c *Controller) stepLocked() (maze.StepResult, bool) {
	if c.mode == Exhausted {
		return maze.StepResult{Kind: maze.Exhausted}, false
	}

	res := c.gen.Step(c.grid, c.frontier)
	switch res.Kind {
	case maze.Grown:
		if c.steps == 0 {
			c.startedAt = c.now()
		}
		c.steps++
		c.last = res
		return res, true
	case maze.Exhausted:
		c.cancelLocked()
		c.mode = Exhausted
		c.finishedAt = c.now()
		c.logger.Debug("maze complete", "epoch", c.epoch, "steps", c.steps,
			"elapsed", c.finishedAt.Sub(c.startedAt))
		return res, true
	}
	return res, false
}

// armLocked schedules the next tick with the current interval.
func (c *Controller) armLocked() {
	c.ticket++
	ticket := c.ticket
	c.timer = c.sched.AfterFunc(c.Interval(), func() {
		c.tick(ticket)
	})
}

// cancelLocked stops the pending tick and invalidates it if already firing.
func (c *Controller) cancelLocked() {
	c.ticket++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// tick is the timer callback. Ticks armed before a stop, reset or re-arm
// are dropped.
func (c *Controller) tick(ticket uint64) {
	c.mu.Lock()
	if ticket != c.ticket || c.mode != Running {
		c.mu.Unlock()
		return
	}

	c.timer = nil
	_, changed := c.stepLocked()
	if c.mode == Running {
		c.armLocked()
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

func (c *Controller) resetLocked() {
	c.cancelLocked()

	// Dimensions were validated in New or Resize
	grid, err := maze.Build(c.rows, c.cols)
	if err != nil {
		panic(err)
	}
	c.grid = grid
	c.frontier.Clear()
	c.mode = Idle
	c.epoch++
	c.steps = 0
	c.last = maze.StepResult{}
	c.startedAt = time.Time{}
	c.finishedAt = time.Time{}
	c.logger.Debug("maze reset", "epoch", c.epoch, "seed", c.seed)
}

// notify signals a change without blocking.
func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
