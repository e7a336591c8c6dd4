package easyrider

import (
	"errors"

	"github.com/jusunglee/easyrider-go/internal/models"
)

// Names of the checks a Checker can run
const (
	CheckSchema   = "schema"
	CheckLines    = "lines"
	CheckTopology = "topology"
	CheckArrival  = "arrival"
	CheckOnDemand = "ondemand"
)

// Checks lists every check name in the order they are usually run
var Checks = []string{CheckSchema, CheckLines, CheckTopology, CheckArrival, CheckOnDemand}

// ErrUnknownCheck is returned by Run for a name not in Checks
var ErrUnknownCheck = errors.New("unknown check")

// ErrTooManyRecords is returned when a batch exceeds the configured record limit
var ErrTooManyRecords = errors.New("too many records in batch")

// Checker validates timetable batches.
// Every check starts from fresh line and stop state; nothing is kept between calls.
type Checker interface {
	Schema(batch []models.RawRecord) (models.SchemaResult, error)
	LineStops(batch []models.RawRecord) (models.LineStopsResult, error)
	Topology(batch []models.RawRecord) (models.TopologyResult, error)
	ArrivalTimes(batch []models.RawRecord) (models.ArrivalResult, error)
	OnDemand(batch []models.RawRecord) (models.OnDemandResult, error)

	// Run dispatches to the check called name
	Run(name string, batch []models.RawRecord) (Result, error)
}

// Result is the outcome of one check with its rendered report
type Result struct {
	Check  string   `json:"check"`
	Data   any      `json:"data"`
	Report []string `json:"report"`
}

// Config holds configuration for a Checker
type Config struct {
	// MaxRecords rejects larger batches, 0 means unlimited
	MaxRecords int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{}
}
