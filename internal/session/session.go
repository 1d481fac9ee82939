package session

import (
	"time"

	"workoutlog/internal/plan"
)

// State is the per-session form state. It is never persisted.
type State struct {
	Index    int       // routine position the form suggests
	LastDate time.Time // meaningful only once dated is set
	Flash    string    // one-shot message shown on the next render

	dated bool // a render has recorded LastDate
}

// New returns the initial state: index 0, no date seen yet.
func New() State {
	return State{}
}

// View is what one render of the entry form needs.
type View struct {
	Date      time.Time
	Routine   plan.Routine
	Index     int
	Suggested string
}

// Render applies the transition rules for a render of date and returns the
// updated state along with the view to draw. A date change resets the index
// and restarts evaluation from the top with the new state.
func Render(s State, date time.Time) (State, View) {
	day := dateOnly(date)
	for {
		if !s.dated || !s.LastDate.Equal(day) {
			s.Index = 0
			s.LastDate = day
			s.dated = true
			continue
		}

		routine := plan.ForDate(day)
		if s.Index < 0 || s.Index >= routine.Len() {
			s.Index = 0
		}
		return s, View{
			Date:      day,
			Routine:   routine,
			Index:     s.Index,
			Suggested: routine.Exercises[s.Index],
		}
	}
}

// Advance moves the suggestion past the exercise that was just saved.
// Names not in the routine (free-text "other") count as position 0.
// The index wraps to the start after the last exercise.
func Advance(s State, routine plan.Routine, submitted string) State {
	if routine.Len() == 0 {
		s.Index = 0
		return s
	}
	now, _ := routine.IndexOf(submitted)
	s.Index = (now + 1) % routine.Len()
	return s
}

// TakeFlash returns the pending flash message and clears it.
func (s *State) TakeFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
