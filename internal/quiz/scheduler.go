package quiz

import "time"

// Timer is a handle to a pending delayed call.
type Timer interface {
	Stop() bool
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules calls with time.AfterFunc.
var SystemScheduler Scheduler = systemScheduler{}
