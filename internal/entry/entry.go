package entry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"workoutlog/internal/plan"
	"workoutlog/internal/record"
)

// ErrEmptySubmission means the form carried no sign of work performed.
var ErrEmptySubmission = errors.New("no completed sets checked")

// DoneToken is stored as the reps of a completion-only exercise.
const DoneToken = "완료"

// DefaultSetCount is the number of per-set checkboxes on the weighted form.
const DefaultSetCount = 4

// Cardio input bounds, as offered by the form.
const (
	MinMinutes = 1
	MinSpeed   = 1.0
	MaxSpeed   = 10.0
	MinIncline = 0
	MaxIncline = 9
)

type CompletionInput struct {
	Done bool
}

type CardioInput struct {
	Minutes int
	Speed   float64
	Incline int
}

type WeightedInput struct {
	Weight     float64
	TargetReps int
	Sets       []bool // one toggle per set
}

// Submission is one submitted entry form. Exactly one of the inputs is
// consulted, chosen by plan.KindOf(Exercise).
type Submission struct {
	Date       time.Time
	Time       string
	BodyWeight float64
	Exercise   string
	Memo       string

	Completion CompletionInput
	Cardio     CardioInput
	Weighted   WeightedInput
}

// Build derives the record to persist. It returns ErrEmptySubmission when
// nothing was done; no other field is range checked here.
func Build(sub Submission) (record.Record, error) {
	name := strings.TrimSpace(sub.Exercise)
	if name == "" {
		return record.Record{}, fmt.Errorf("exercise name is empty: %w", ErrEmptySubmission)
	}

	r := record.Record{
		Date:       sub.Date.Format(record.DateLayout),
		Weekday:    plan.WeekdayLabel(sub.Date),
		Time:       sub.Time,
		BodyWeight: sub.BodyWeight,
		Exercise:   name,
		Memo:       strings.TrimSpace(sub.Memo),
	}

	switch plan.KindOf(name) {
	case plan.KindCompletion:
		if !sub.Completion.Done {
			return record.Record{}, ErrEmptySubmission
		}
		r.Load = 0
		r.Reps = DoneToken

	case plan.KindCardio:
		c := sub.Cardio
		r.Load = c.Speed
		r.Reps = fmt.Sprintf("%d분 (경사 %d)", c.Minutes, c.Incline)

	default:
		w := sub.Weighted
		done := make([]string, 0, len(w.Sets))
		for _, checked := range w.Sets {
			if checked {
				done = append(done, strconv.Itoa(w.TargetReps))
			}
		}
		if len(done) == 0 {
			return record.Record{}, ErrEmptySubmission
		}
		r.Load = w.Weight
		r.Reps = strings.Join(done, " ")
	}

	return r, nil
}

// ClampCardio pulls cardio values into the ranges the form offers.
func ClampCardio(c CardioInput) CardioInput {
	if c.Minutes < MinMinutes {
		c.Minutes = MinMinutes
	}
	if c.Speed < MinSpeed || math.IsNaN(c.Speed) {
		c.Speed = MinSpeed
	}
	if c.Speed > MaxSpeed {
		c.Speed = MaxSpeed
	}
	if c.Incline < MinIncline {
		c.Incline = MinIncline
	}
	if c.Incline > MaxIncline {
		c.Incline = MaxIncline
	}
	return c
}
