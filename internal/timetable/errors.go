package timetable

import "fmt"

// Role is a terminal role a line can declare once
type Role string

const (
	RoleStart  Role = "start"
	RoleFinish Role = "finish"
)

// DuplicateRoleError is returned when a line declares a second start or finish stop
type DuplicateRoleError struct {
	BusID int
	Role  Role
	Stop  string
}

func (e *DuplicateRoleError) Error() string {
	return fmt.Sprintf("There is no start or end stop for the line: %d.", e.BusID)
}

// IncompleteLineError is returned when a line ends the batch without both a start and a finish
type IncompleteLineError struct {
	BusID int
}

func (e *IncompleteLineError) Error() string {
	return fmt.Sprintf("There is no start or end stop for the line: %d.", e.BusID)
}

// TimeOrderError is returned when a stop is reached earlier than the previous stop of the line
type TimeOrderError struct {
	BusID int
	Stop  string
}

func (e *TimeOrderError) Error() string {
	return fmt.Sprintf("bus_id line %d: wrong time on station %s", e.BusID, e.Stop)
}
