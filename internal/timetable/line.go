package timetable

import (
	"github.com/jusunglee/easyrider-go/internal/registry"
)

// Line tracks the declared terminals and the last accepted arrival of one bus line.
// start and finish are set at most once; lastArrival never decreases.
type Line struct {
	ID int

	start     string
	finish    string
	hasStart  bool
	hasFinish bool

	lastArrival Clock
	registry    *registry.Registry
}

// NewLine creates a line that registers its stop visits in reg, which may be nil
func NewLine(id int, reg *registry.Registry) *Line {
	return &Line{ID: id, registry: reg}
}

// SetStart declares the start stop of the line
func (l *Line) SetStart(stop string) error {
	if l.hasStart {
		return &DuplicateRoleError{BusID: l.ID, Role: RoleStart, Stop: stop}
	}
	l.start, l.hasStart = stop, true
	return nil
}

// SetFinish declares the finish stop of the line
func (l *Line) SetFinish(stop string) error {
	if l.hasFinish {
		return &DuplicateRoleError{BusID: l.ID, Role: RoleFinish, Stop: stop}
	}
	l.finish, l.hasFinish = stop, true
	return nil
}

// Start returns the declared start stop
func (l *Line) Start() (string, bool) {
	return l.start, l.hasStart
}

// Finish returns the declared finish stop
func (l *Line) Finish() (string, bool) {
	return l.finish, l.hasFinish
}

// RegisterStop records a visit of stop by this line, whatever its role
func (l *Line) RegisterStop(stop string) {
	if l.registry != nil {
		l.registry.Visit(stop)
	}
}

// CheckArrival accepts arrival at stop if it is not earlier than the previous one.
// Equal times are accepted.
func (l *Line) CheckArrival(stop, arrival string) error {
	t, err := ParseClock(arrival)
	if err != nil {
		return err
	}
	if t.Before(l.lastArrival) {
		return &TimeOrderError{BusID: l.ID, Stop: stop}
	}
	l.lastArrival = t
	return nil
}

// IsProper reports whether both a start and a finish were declared
func (l *Line) IsProper() bool {
	return l.hasStart && l.hasFinish
}
