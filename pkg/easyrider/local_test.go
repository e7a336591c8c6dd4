package easyrider

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/easyrider-go/internal/models"
	"github.com/jusunglee/easyrider-go/internal/schema"
	"github.com/jusunglee/easyrider-go/internal/timetable"
)

const cityBatch = `[
	{"bus_id": 128, "stop_id": 1, "stop_name": "Prospekt Avenue", "next_stop": 3, "stop_type": "S", "a_time": "08:12"},
	{"bus_id": 128, "stop_id": 3, "stop_name": "Elm Street", "next_stop": 5, "stop_type": "O", "a_time": "08:19"},
	{"bus_id": 128, "stop_id": 5, "stop_name": "Fifth Avenue", "next_stop": 7, "stop_type": "", "a_time": "08:17"},
	{"bus_id": 128, "stop_id": 7, "stop_name": "Sesame Street", "next_stop": 0, "stop_type": "F", "a_time": "08:37"},
	{"bus_id": 256, "stop_id": 2, "stop_name": "Pilotow Street", "next_stop": 3, "stop_type": "S", "a_time": "09:20"},
	{"bus_id": 256, "stop_id": 3, "stop_name": "Elm Street", "next_stop": 6, "stop_type": "", "a_time": "09:45"},
	{"bus_id": 256, "stop_id": 6, "stop_name": "Sesame Street", "next_stop": 0, "stop_type": "F", "a_time": "09:59"}
]`

const malformedRecord = `{"bus_id": "bad", "stop_id": 9, "stop_name": "Abbey Road", "next_stop": 0, "stop_type": "S", "a_time": "07:00"}`

func loadBatch(t *testing.T, input string) []models.RawRecord {
	t.Helper()
	batch, err := models.DecodeBatch(strings.NewReader(input))
	require.NoError(t, err)
	return batch
}

func TestLocalChecks(t *testing.T) {
	c := NewLocal(DefaultConfig())
	batch := loadBatch(t, cityBatch)

	t.Run("schema", func(t *testing.T) {
		withBad := loadBatch(t, strings.TrimSuffix(cityBatch, "]")+","+malformedRecord+"]")
		result, err := c.Run(CheckSchema, withBad)
		require.NoError(t, err)
		assert.Equal(t, "Type and required field validation: 1 errors", result.Report[0])
		assert.Equal(t, "bus_id: 1", result.Report[1])
	})

	t.Run("lines", func(t *testing.T) {
		result, err := c.Run(CheckLines, batch)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Line names and number of stops:",
			"bus_id: 128, stops: 4",
			"bus_id: 256, stops: 3",
		}, result.Report)
	})

	t.Run("topology", func(t *testing.T) {
		result, err := c.Run(CheckTopology, batch)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Start stops: 2 ['Pilotow Street', 'Prospekt Avenue']",
			"Transfer stops: 2 ['Elm Street', 'Sesame Street']",
			"Finish stops: 1 ['Sesame Street']",
		}, result.Report)
	})

	t.Run("arrival", func(t *testing.T) {
		result, err := c.Run(CheckArrival, batch)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Arrival time test:",
			"bus_id line 128: wrong time on station Fifth Avenue",
		}, result.Report)
	})

	t.Run("ondemand", func(t *testing.T) {
		result, err := c.Run(CheckOnDemand, batch)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"On demand stops test:",
			"Wrong stop type: ['Elm Street']",
		}, result.Report)
	})

	t.Run("checks do not share state", func(t *testing.T) {
		first, err := c.OnDemand(batch)
		require.NoError(t, err)
		second, err := c.OnDemand(batch)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestLocalMalformedRecord(t *testing.T) {
	c := NewLocal(DefaultConfig())
	batch := loadBatch(t, strings.TrimSuffix(cityBatch, "]")+","+malformedRecord+"]")

	for _, name := range []string{CheckLines, CheckTopology, CheckArrival, CheckOnDemand} {
		_, err := c.Run(name, batch)
		assert.ErrorIs(t, err, schema.ErrMalformedRecord, name)
	}
}

// Line checks do not depend on stop name or time formats
func TestLocalUnformattedNames(t *testing.T) {
	c := NewLocal(DefaultConfig())
	batch := loadBatch(t, `[
		{"bus_id": 1, "stop_id": 1, "stop_name": "Kamenka", "next_stop": 2, "stop_type": "S", "a_time": "08:00"},
		{"bus_id": 1, "stop_id": 2, "stop_name": "Pushkin St", "next_stop": 3, "stop_type": "", "a_time": "08:10"},
		{"bus_id": 1, "stop_id": 3, "stop_name": "Lubyanka", "next_stop": 0, "stop_type": "F", "a_time": "08:20"}
	]`)

	result, err := c.Run(CheckTopology, batch)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Start stops: 1 ['Kamenka']",
		"Transfer stops: 0 []",
		"Finish stops: 1 ['Lubyanka']",
	}, result.Report)

	late := loadBatch(t, `[
		{"bus_id": 1, "stop_id": 1, "stop_name": "Kamenka", "next_stop": 2, "stop_type": "S", "a_time": "08:00"},
		{"bus_id": 1, "stop_id": 2, "stop_name": "Pushkin St", "next_stop": 0, "stop_type": "F", "a_time": "07:59"}
	]`)
	result, err = c.Run(CheckArrival, late)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Arrival time test:",
		"bus_id line 1: wrong time on station Pushkin St",
	}, result.Report)

	schemaResult, err := c.Schema(batch)
	require.NoError(t, err)
	assert.Equal(t, 3, schemaResult.Total)
}

func TestLocalTopologyFatal(t *testing.T) {
	c := NewLocal(DefaultConfig())
	batch := loadBatch(t, `[
		{"bus_id": 1, "stop_id": 1, "stop_name": "Kamenka Street", "next_stop": 2, "stop_type": "S", "a_time": "08:00"},
		{"bus_id": 1, "stop_id": 2, "stop_name": "Pushkin Street", "next_stop": 0, "stop_type": "", "a_time": "08:10"}
	]`)

	_, err := c.Run(CheckTopology, batch)
	var incomplete *timetable.IncompleteLineError
	require.ErrorAs(t, err, &incomplete)
	assert.EqualError(t, err, "There is no start or end stop for the line: 1.")
}

func TestLocalUnknownCheck(t *testing.T) {
	_, err := NewLocal(DefaultConfig()).Run("nope", nil)
	assert.True(t, errors.Is(err, ErrUnknownCheck))
}

func TestLocalMaxRecords(t *testing.T) {
	c := NewLocal(Config{MaxRecords: 2})
	batch := loadBatch(t, cityBatch)

	for _, name := range Checks {
		_, err := c.Run(name, batch)
		assert.ErrorIs(t, err, ErrTooManyRecords, name)
	}

	_, err := c.Run(CheckOnDemand, batch[:2])
	assert.NoError(t, err)
}
