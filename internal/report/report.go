// Package report renders check results as the human-readable lines printed by
// the command line tool and returned alongside JSON results by the API.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jusunglee/easyrider-go/internal/models"
)

const ok = "OK"

// Schema renders the field validation summary
func Schema(r models.SchemaResult) []string {
	lines := []string{fmt.Sprintf("Type and required field validation: %d errors", r.Total)}
	for _, f := range r.Fields {
		lines = append(lines, fmt.Sprintf("%s: %d", f.Field, f.Errors))
	}
	return lines
}

// LineStops renders the number of stops of each line
func LineStops(r models.LineStopsResult) []string {
	lines := []string{"Line names and number of stops:"}
	for _, l := range r.Lines {
		lines = append(lines, fmt.Sprintf("bus_id: %d, stops: %d", l.BusID, l.Stops))
	}
	return lines
}

// Topology renders the start, transfer and finish stop summary
func Topology(r models.TopologyResult) []string {
	return []string{
		stopsLine("Start", r.Start),
		stopsLine("Transfer", r.Transfer),
		stopsLine("Finish", r.Finish),
	}
}

// Arrival renders the arrival time test
func Arrival(r models.ArrivalResult) []string {
	lines := []string{"Arrival time test:"}
	if r.OK() {
		return append(lines, ok)
	}
	for _, v := range r.Violations {
		lines = append(lines, v.Message)
	}
	return lines
}

// OnDemand renders the on demand stops test
func OnDemand(r models.OnDemandResult) []string {
	lines := []string{"On demand stops test:"}
	if r.OK() {
		return append(lines, ok)
	}
	return append(lines, "Wrong stop type: "+List(r.Illegal))
}

// Fatal renders an error that aborted a check
func Fatal(err error) []string {
	return []string{err.Error()}
}

// Write prints one report line per row
func Write(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func stopsLine(label string, names []string) string {
	return fmt.Sprintf("%s stops: %d %s", label, len(names), List(names))
}

// List formats names as a bracketed, quoted list: ['Elm Street', 'Abbey Road']
func List(names []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(name))
	}
	b.WriteByte(']')
	return b.String()
}

// quote uses single quotes unless the name holds one and no double quote.
// Backslashes, the chosen quote and non-printable runes are escaped.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == '\\' || r == q:
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == ' ' || unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
