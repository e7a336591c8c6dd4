package timetable

import (
	"errors"
	"fmt"

	"github.com/jusunglee/easyrider-go/internal/models"
	"github.com/jusunglee/easyrider-go/internal/registry"
)

// lineTable owns the lines of one pass, remembering the order they were first seen
type lineTable struct {
	lines    map[int]*Line
	order    []int
	registry *registry.Registry
}

func newLineTable(reg *registry.Registry) *lineTable {
	return &lineTable{
		lines:    make(map[int]*Line),
		registry: reg,
	}
}

func (t *lineTable) get(busID int) *Line {
	line, ok := t.lines[busID]
	if !ok {
		line = NewLine(busID, t.registry)
		t.lines[busID] = line
		t.order = append(t.order, busID)
	}
	return line
}

// Topology classifies the start, transfer and finish stops of a batch.
// Every record counts once towards its stop, so a stop named twice is a transfer.
// A second start or finish on a line aborts immediately with a *DuplicateRoleError;
// a line left without both terminals aborts with an *IncompleteLineError.
func Topology(records []models.Record) (models.TopologyResult, error) {
	reg := registry.New()
	table := newLineTable(reg)
	starts := make(map[string]struct{})
	finishes := make(map[string]struct{})

	for _, rec := range records {
		line := table.get(rec.BusID)

		switch rec.StopType {
		case models.StopStart:
			if err := line.SetStart(rec.StopName); err != nil {
				return models.TopologyResult{}, err
			}
			starts[rec.StopName] = struct{}{}
		case models.StopFinish:
			if err := line.SetFinish(rec.StopName); err != nil {
				return models.TopologyResult{}, err
			}
			finishes[rec.StopName] = struct{}{}
		}

		line.RegisterStop(rec.StopName)
	}

	terminals := make([]models.LineTerminals, 0, len(table.order))
	for _, id := range table.order {
		line := table.lines[id]
		if !line.IsProper() {
			return models.TopologyResult{}, &IncompleteLineError{BusID: id}
		}
		start, _ := line.Start()
		finish, _ := line.Finish()
		terminals = append(terminals, models.LineTerminals{BusID: id, Start: start, Finish: finish})
	}

	return models.TopologyResult{
		Start:    sortedSet(starts),
		Transfer: Transfers(reg),
		Finish:   sortedSet(finishes),
		Lines:    terminals,
	}, nil
}

// ArrivalTimes checks that arrival times never go backwards along each line.
// Only the first violation of a line is kept; checking continues for every line.
func ArrivalTimes(records []models.Record) (models.ArrivalResult, error) {
	table := newLineTable(nil)
	reported := make(map[int]bool)
	result := models.ArrivalResult{Violations: []models.Violation{}}

	for _, rec := range records {
		line := table.get(rec.BusID)

		err := line.CheckArrival(rec.StopName, rec.ATime)
		if err == nil {
			continue
		}

		var orderErr *TimeOrderError
		if !errors.As(err, &orderErr) {
			return models.ArrivalResult{}, fmt.Errorf("bus_id line %d: %w", rec.BusID, err)
		}
		if reported[rec.BusID] {
			continue
		}
		reported[rec.BusID] = true
		result.Violations = append(result.Violations, models.Violation{
			BusID:   orderErr.BusID,
			Stop:    orderErr.Stop,
			Message: orderErr.Error(),
		})
	}

	return result, nil
}

// OnDemand finds the on-demand stops that are also transfer stops.
// Every record counts towards a stop's usage, whatever its line or role.
func OnDemand(records []models.Record) models.OnDemandResult {
	reg := registry.New()
	onDemand := make(map[string]struct{})

	for _, rec := range records {
		reg.Visit(rec.StopName)
		if rec.StopType == models.StopOnDemand {
			onDemand[rec.StopName] = struct{}{}
		}
	}

	return models.OnDemandResult{Illegal: Illegal(Transfers(reg), onDemand)}
}

// LineStops counts the records of each line, in the order lines are first seen
func LineStops(records []models.Record) models.LineStopsResult {
	table := newLineTable(nil)
	counts := make(map[int]int)

	for _, rec := range records {
		table.get(rec.BusID)
		counts[rec.BusID]++
	}

	result := models.LineStopsResult{Lines: make([]models.LineStops, 0, len(table.order))}
	for _, id := range table.order {
		result.Lines = append(result.Lines, models.LineStops{BusID: id, Stops: counts[id]})
	}
	return result
}
