package models

import (
	"encoding/json"
	"io"
)

// StopType marks the role a stop plays on its line
type StopType string

const (
	StopMandatory StopType = ""
	StopStart     StopType = "S"
	StopOnDemand  StopType = "O"
	StopFinish    StopType = "F"
)

// Record is a single bus-stop visit of a timetable batch
type Record struct {
	BusID    int      `json:"bus_id"`
	StopID   int      `json:"stop_id"`
	StopName string   `json:"stop_name"`
	NextStop int      `json:"next_stop"`
	StopType StopType `json:"stop_type"`
	ATime    string   `json:"a_time"`
}

// RawRecord is an undecoded record as it arrived in the batch.
// Numbers are kept as json.Number so integer fields can be told apart from floats.
type RawRecord map[string]any

// Field names of a record, in report order
const (
	FieldBusID    = "bus_id"
	FieldStopID   = "stop_id"
	FieldStopName = "stop_name"
	FieldNextStop = "next_stop"
	FieldStopType = "stop_type"
	FieldATime    = "a_time"
)

// Fields lists the record fields in the order they are reported
var Fields = []string{FieldBusID, FieldStopID, FieldStopName, FieldNextStop, FieldStopType, FieldATime}

// FieldErrors is the number of records failing a single field check
type FieldErrors struct {
	Field  string `json:"field"`
	Errors int    `json:"errors"`
}

// SchemaResult summarizes the field-level check of a batch
type SchemaResult struct {
	Total  int           `json:"total"`
	Fields []FieldErrors `json:"fields"`
	Valid  []Record      `json:"-"`
}

// LineStops is the number of records seen for one bus line
type LineStops struct {
	BusID int `json:"bus_id"`
	Stops int `json:"stops"`
}

// LineStopsResult lists the lines of a batch in first-seen order
type LineStopsResult struct {
	Lines []LineStops `json:"lines"`
}

// LineTerminals are the declared start and finish stops of one line
type LineTerminals struct {
	BusID  int    `json:"bus_id"`
	Start  string `json:"start"`
	Finish string `json:"finish"`
}

// TopologyResult is the start/transfer/finish classification of a batch
type TopologyResult struct {
	Start    []string        `json:"start"`
	Transfer []string        `json:"transfer"`
	Finish   []string        `json:"finish"`
	Lines    []LineTerminals `json:"lines"`
}

// Violation is the first arrival time error found on a line
type Violation struct {
	BusID   int    `json:"bus_id"`
	Stop    string `json:"stop_name"`
	Message string `json:"message"`
}

// ArrivalResult holds at most one violation per line
type ArrivalResult struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether no line violated arrival order
func (r ArrivalResult) OK() bool {
	return len(r.Violations) == 0
}

// OnDemandResult lists the stops that are both on-demand and transfer stops
type OnDemandResult struct {
	Illegal []string `json:"illegal"`
}

// OK reports whether no illegal stop type was found
func (r OnDemandResult) OK() bool {
	return len(r.Illegal) == 0
}

// DecodeBatch decodes a JSON array of records keeping numbers as json.Number
func DecodeBatch(r io.Reader) ([]RawRecord, error) {
	var batch []RawRecord
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&batch); err != nil {
		return nil, err
	}
	return batch, nil
}
