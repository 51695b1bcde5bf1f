package runner

import "time"

// Timer is a handle to a scheduled tick.
type Timer interface {
	// Stop prevents the tick from firing. Returns false if it already fired
	// or was stopped.
	Stop() bool
}

// Scheduler arms one-shot ticks. The controller re-arms after every tick so
// interval changes apply from the next tick on.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// TimeScheduler schedules ticks with time.AfterFunc.
type TimeScheduler struct{}

// AfterFunc implements Scheduler.
func (TimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
