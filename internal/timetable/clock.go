package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is an arrival time of day with minute resolution
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" arrival time
func ParseClock(s string) (Clock, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid arrival time %q", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid arrival hour %q: %w", s, err)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid arrival minute %q: %w", s, err)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// Before reports whether c is strictly earlier than other
func (c Clock) Before(other Clock) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	return c.Minute < other.Minute
}
