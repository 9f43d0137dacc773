package driver

import "time"

// Stage names the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota
	StageLex
	StageCache
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageLex:
		return "lex"
	case StageCache:
		return "cache"
	}
	return "unknown"
}

// Status reports how a stage went.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event describes a per-file progress change.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressFunc receives progress events. Workers call it concurrently.
type ProgressFunc func(Event)

func (f ProgressFunc) emit(ev Event) {
	if f != nil {
		f(ev)
	}
}
