package record

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"workoutlog/internal/plan"
)

// DateLayout is the persisted form of Record.Date.
const DateLayout = "2006-01-02"

// Columns is the fixed header shared by every tabular backend.
var Columns = []string{"날짜", "요일", "시간", "몸무게", "운동종목", "무게", "횟수", "메모"}

var ErrNotFound = errors.New("record not found")

// Record is one logged exercise instance. ID is assigned by the backend
// on read and is only valid until the next write.
type Record struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Weekday    string  `json:"weekday"`
	Time       string  `json:"time"`
	BodyWeight float64 `json:"body_weight"`
	Exercise   string  `json:"exercise"`
	Load       float64 `json:"load"`
	Reps       string  `json:"reps"`
	Memo       string  `json:"memo"`
}

// Store is the persistence contract every backend satisfies.
//
// LoadAll returns records in insertion order. An empty, non-nil slice with a
// nil error means there is no data; a backend failure is reported as an error.
// Delete takes an ID obtained from a prior LoadAll and does not check that
// rows have not shifted since.
type Store interface {
	Append(ctx context.Context, r Record) error
	LoadAll(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
}

// ParseDate reads the calendar date of a record. Only the first ten
// characters are considered, so older values like "2025-01-07 (화)" parse.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ToRow renders r in Columns order.
func ToRow(r Record) []string {
	return []string{
		r.Date,
		r.Weekday,
		r.Time,
		FormatNumber(r.BodyWeight),
		r.Exercise,
		FormatNumber(r.Load),
		r.Reps,
		r.Memo,
	}
}

// FromRow is the inverse of ToRow. Short rows are padded and unparsable
// numbers read as zero; the store never rejects what it already holds.
func FromRow(id string, row []string) Record {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Record{
		ID:         id,
		Date:       cell(0),
		Weekday:    cell(1),
		Time:       cell(2),
		BodyWeight: parseNumber(cell(3)),
		Exercise:   cell(4),
		Load:       parseNumber(cell(5)),
		Reps:       cell(6),
		Memo:       cell(7),
	}
}

func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FilterMonth keeps the records dated in the given month, dropping those
// whose date cannot be parsed.
func FilterMonth(records []Record, year int, month time.Month) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		d, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		if d.Year() == year && d.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the most recently appended record for an exercise.
func Latest(records []Record, exercise string) (Record, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Exercise == exercise {
			return records[i], true
		}
	}
	return Record{}, false
}

// columnAliases maps header names used by older log files onto Columns.
var columnAliases = map[string]string{
	"무게(kg)": "무게",
}

// Header locates columns by name, for tabular files whose header differs
// from Columns. Older logs have no 요일 column, name the load "무게(kg)" and
// carry the weekday inside the date ("2025-01-07 (화)").
type Header struct {
	names []string
	pos   map[string]int // canonical column -> position in the file
}

func NewHeader(names []string) Header {
	h := Header{names: names, pos: make(map[string]int, len(names))}
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		if alias, ok := columnAliases[n]; ok {
			n = alias
		}
		if _, dup := h.pos[n]; !dup {
			h.pos[n] = i
		}
	}
	return h
}

// Record reads row by column name. A missing weekday is taken from the
// date's "(화)" suffix or, failing that, computed from the date.
func (h Header) Record(id string, row []string) Record {
	canon := make([]string, len(Columns))
	for i, col := range Columns {
		if p, ok := h.pos[col]; ok && p < len(row) {
			canon[i] = row[p]
		}
	}
	r := FromRow(id, canon)
	if r.Weekday == "" {
		r.Weekday = weekdayOf(r.Date)
	}
	return r
}

// Row renders r in the header's column order. Columns the header does not
// know are left blank.
func (h Header) Row(r Record) []string {
	canon := ToRow(r)
	out := make([]string, len(h.names))
	for i, col := range Columns {
		if p, ok := h.pos[col]; ok {
			out[p] = canon[i]
		}
	}
	return out
}

func weekdayOf(date string) string {
	if open := strings.Index(date, "("); open >= 0 {
		if end := strings.Index(date[open:], ")"); end > 1 {
			return strings.TrimSpace(date[open+1 : open+end])
		}
	}
	d, ok := ParseDate(date)
	if !ok {
		return ""
	}
	return plan.WeekdayLabel(d)
}
