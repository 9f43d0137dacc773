package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only errors and ring dumps
	LevelPhase               // driver + pass boundaries
	LevelDetail              // per-file events
	LevelDebug               // everything, including per-token events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, ignoring case; "" is off.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(s)
	if name == "" {
		return LevelOff, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the deepest scope a level lets through.
func (l Level) maxScope() (Scope, bool) {
	switch {
	case l == LevelDebug:
		return ^Scope(0), true
	case l == LevelDetail:
		return ScopeFile, true
	case l == LevelPhase:
		return ScopePass, true
	}
	// на LevelError события пишутся только через Point с ошибкой
	return 0, false
}

// ShouldEmit reports whether events of scope pass the level filter.
func (l Level) ShouldEmit(scope Scope) bool {
	limit, ok := l.maxScope()
	return ok && scope <= limit
}
