// Package schema checks the field types and formats of raw timetable records
// before they are handed to the line validator.
//
// Integer fields must be JSON integers. String fields are matched with validator
// tags: stop names must be capitalized and end in Road, Avenue, Boulevard or Street,
// stop types must be one of "", "S", "O", "F" and arrival times must be HH:MM.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jusunglee/easyrider-go/internal/models"
)

var (
	stopNamePattern = regexp.MustCompile(`^[A-Z].*(Road|Avenue|Boulevard|Street)$`)
	stopTypePattern = regexp.MustCompile(`^[SOF]?$`)
	timePattern     = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ErrMalformedRecord is returned when a record field does not have its JSON type
var ErrMalformedRecord = errors.New("malformed record")

type kind int

const (
	kindInt kind = iota
	kindString
)

type rule struct {
	kind kind
	tag  string
}

var rules = map[string]rule{
	models.FieldBusID:    {kind: kindInt, tag: "integer"},
	models.FieldStopID:   {kind: kindInt, tag: "integer"},
	models.FieldStopName: {kind: kindString, tag: "required,stopname"},
	models.FieldNextStop: {kind: kindInt, tag: "integer"},
	models.FieldStopType: {kind: kindString, tag: "stoptype"},
	models.FieldATime:    {kind: kindString, tag: "required,hhmm"},
}

// Validator checks raw records field by field
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the record tags registered
func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	mustRegister(v, "stopname", stopNamePattern)
	mustRegister(v, "stoptype", stopTypePattern)
	mustRegister(v, "hhmm", timePattern)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, pattern *regexp.Regexp) {
	// callEvenIfNull so that an empty stop_type still goes through its pattern
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}, true)
	if err != nil {
		panic(err)
	}
}

// Check counts the field errors of a batch.
// Records failing any field are left out of the returned Valid list.
func (v *Validator) Check(batch []models.RawRecord) models.SchemaResult {
	counts := make(map[string]int, len(models.Fields))
	result := models.SchemaResult{Valid: make([]models.Record, 0, len(batch))}

	for _, raw := range batch {
		ok := true
		for _, field := range models.Fields {
			if !v.checkField(raw, field) {
				counts[field]++
				ok = false
			}
		}
		if !ok {
			continue
		}
		if rec, err := Decode(raw); err == nil {
			result.Valid = append(result.Valid, rec)
		}
	}

	result.Fields = make([]models.FieldErrors, 0, len(models.Fields))
	for _, field := range models.Fields {
		result.Fields = append(result.Fields, models.FieldErrors{Field: field, Errors: counts[field]})
		result.Total += counts[field]
	}
	return result
}

func (v *Validator) checkField(raw models.RawRecord, field string) bool {
	value, present := raw[field]
	if !present {
		return false
	}

	r := rules[field]
	var s string
	switch r.kind {
	case kindInt:
		n, ok := value.(json.Number)
		if !ok {
			return false
		}
		s = n.String()
	case kindString:
		str, ok := value.(string)
		if !ok {
			return false
		}
		s = str
	}

	return v.validate.Var(s, r.tag) == nil
}

// Decode converts a raw record whose fields have the right JSON types.
// Formats are not checked: a lowercase stop name or an odd stop type still decodes.
func Decode(raw models.RawRecord) (models.Record, error) {
	var (
		rec models.Record
		err error
	)
	if rec.BusID, err = intField(raw, models.FieldBusID); err != nil {
		return models.Record{}, err
	}
	if rec.StopID, err = intField(raw, models.FieldStopID); err != nil {
		return models.Record{}, err
	}
	if rec.NextStop, err = intField(raw, models.FieldNextStop); err != nil {
		return models.Record{}, err
	}
	if rec.StopName, err = stringField(raw, models.FieldStopName); err != nil {
		return models.Record{}, err
	}
	stopType, err := stringField(raw, models.FieldStopType)
	if err != nil {
		return models.Record{}, err
	}
	rec.StopType = models.StopType(stopType)
	if rec.ATime, err = stringField(raw, models.FieldATime); err != nil {
		return models.Record{}, err
	}
	return rec, nil
}

func intField(raw models.RawRecord, field string) (int, error) {
	n, ok := raw[field].(json.Number)
	if !ok {
		return 0, fmt.Errorf("%s: expected integer, got %T", field, raw[field])
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return i, nil
}

func stringField(raw models.RawRecord, field string) (string, error) {
	s, ok := raw[field].(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", field, raw[field])
	}
	return s, nil
}

// DecodeAll decodes a whole batch. Any record with a wrongly typed field fails
// the batch with ErrMalformedRecord; no record is dropped silently.
func DecodeAll(batch []models.RawRecord) ([]models.Record, error) {
	records := make([]models.Record, 0, len(batch))
	var (
		bad   int
		first error
	)
	for i, raw := range batch {
		rec, err := Decode(raw)
		if err != nil {
			if first == nil {
				first = fmt.Errorf("record %d: %w", i, err)
			}
			bad++
			continue
		}
		records = append(records, rec)
	}
	if bad > 0 {
		return nil, fmt.Errorf("%w: %d of %d records, first %v", ErrMalformedRecord, bad, len(batch), first)
	}
	return records, nil
}
