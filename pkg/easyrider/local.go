package easyrider

import (
	"fmt"

	"github.com/jusunglee/easyrider-go/internal/models"
	"github.com/jusunglee/easyrider-go/internal/report"
	"github.com/jusunglee/easyrider-go/internal/schema"
	"github.com/jusunglee/easyrider-go/internal/timetable"
)

// LocalChecker implements the Checker interface in process.
// Line checks take records as they are; only field formats are left to the schema check.
type LocalChecker struct {
	schema     *schema.Validator
	maxRecords int
}

// NewLocal creates a new local checker
func NewLocal(config Config) *LocalChecker {
	return &LocalChecker{
		schema:     schema.New(),
		maxRecords: config.MaxRecords,
	}
}

func (c *LocalChecker) Schema(batch []models.RawRecord) (models.SchemaResult, error) {
	if err := c.checkSize(batch); err != nil {
		return models.SchemaResult{}, err
	}
	return c.schema.Check(batch), nil
}

func (c *LocalChecker) LineStops(batch []models.RawRecord) (models.LineStopsResult, error) {
	records, err := c.records(batch)
	if err != nil {
		return models.LineStopsResult{}, err
	}
	return timetable.LineStops(records), nil
}

func (c *LocalChecker) Topology(batch []models.RawRecord) (models.TopologyResult, error) {
	records, err := c.records(batch)
	if err != nil {
		return models.TopologyResult{}, err
	}
	return timetable.Topology(records)
}

func (c *LocalChecker) ArrivalTimes(batch []models.RawRecord) (models.ArrivalResult, error) {
	records, err := c.records(batch)
	if err != nil {
		return models.ArrivalResult{}, err
	}
	return timetable.ArrivalTimes(records)
}

func (c *LocalChecker) OnDemand(batch []models.RawRecord) (models.OnDemandResult, error) {
	records, err := c.records(batch)
	if err != nil {
		return models.OnDemandResult{}, err
	}
	return timetable.OnDemand(records), nil
}

func (c *LocalChecker) Run(name string, batch []models.RawRecord) (Result, error) {
	result := Result{Check: name}

	switch name {
	case CheckSchema:
		r, err := c.Schema(batch)
		if err != nil {
			return result, err
		}
		result.Data, result.Report = r, report.Schema(r)
	case CheckLines:
		r, err := c.LineStops(batch)
		if err != nil {
			return result, err
		}
		result.Data, result.Report = r, report.LineStops(r)
	case CheckTopology:
		r, err := c.Topology(batch)
		if err != nil {
			return result, err
		}
		result.Data, result.Report = r, report.Topology(r)
	case CheckArrival:
		r, err := c.ArrivalTimes(batch)
		if err != nil {
			return result, err
		}
		result.Data, result.Report = r, report.Arrival(r)
	case CheckOnDemand:
		r, err := c.OnDemand(batch)
		if err != nil {
			return result, err
		}
		result.Data, result.Report = r, report.OnDemand(r)
	default:
		return result, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}

	return result, nil
}

func (c *LocalChecker) records(batch []models.RawRecord) ([]models.Record, error) {
	if err := c.checkSize(batch); err != nil {
		return nil, err
	}
	return schema.DecodeAll(batch)
}

func (c *LocalChecker) checkSize(batch []models.RawRecord) error {
	if c.maxRecords > 0 && len(batch) > c.maxRecords {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRecords, len(batch), c.maxRecords)
	}
	return nil
}
