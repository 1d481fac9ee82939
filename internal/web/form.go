package web

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"workoutlog/internal/entry"
	"workoutlog/internal/plan"
	"workoutlog/internal/record"
	"workoutlog/internal/session"
)

type exerciseOption struct {
	Name     string
	Selected bool
}

// formPage is the template data for the entry form.
type formPage struct {
	Date       string
	Time       string
	BodyWeight float64

	Routine   plan.Routine
	Exercises []exerciseOption
	Suggested string
	Selected  string
	Kind      string
	IsOther   bool
	VideoURL  string
	Sets      []int
	Previous  *record.Record

	Flash   string
	Warning string
	Error   string
	CSRF    template.HTML
}

func (h *Handler) newFormPage(r *http.Request, view session.View, selected string) formPage {
	if _, ok := view.Routine.IndexOf(selected); !ok {
		selected = view.Suggested
	}

	opts := make([]exerciseOption, 0, view.Routine.Len())
	for _, name := range view.Routine.Exercises {
		opts = append(opts, exerciseOption{Name: name, Selected: name == selected})
	}
	sets := make([]int, h.form.SetCount)
	for i := range sets {
		sets[i] = i + 1
	}
	video, _ := plan.VideoURL(selected)

	return formPage{
		Date:       view.Date.Format(record.DateLayout),
		Time:       h.today().Format("15:04"),
		BodyWeight: h.form.DefaultBodyWeight,
		Routine:    view.Routine,
		Exercises:  opts,
		Suggested:  view.Suggested,
		Selected:   selected,
		Kind:       plan.KindOf(selected).String(),
		IsOther:    selected == plan.Other,
		VideoURL:   video,
		Sets:       sets,
		CSRF:       csrf.TemplateField(r),
	}
}

// handleForm renders the entry form for ?date=, suggesting the session's
// next exercise unless ?exercise= overrides it for this render only.
func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	sid := h.sessionID(w, r)
	date := h.parseDate(r.URL.Query().Get("date"))

	st, view := session.Render(h.sessions.Get(sid), date)
	flash := st.TakeFlash()
	h.sessions.Put(sid, st)

	page := h.newFormPage(r, view, overrideFor(r, view))
	page.Flash = flash
	page.Previous = h.previous(r, page.Selected)

	h.render(w, "index.gohtml", http.StatusOK, page)
}

// overrideFor returns the ?exercise= override unless the picker was submitted
// from a page showing another date; a date change starts at the routine's
// first exercise.
func overrideFor(r *http.Request, view session.View) string {
	q := r.URL.Query()
	if shown, ok := record.ParseDate(q.Get("shown_date")); ok && !shown.Equal(view.Date) {
		return ""
	}
	return q.Get("exercise")
}

// previous looks up the last logged entry for an exercise. It is a hint
// only, so a failing backend just hides it.
func (h *Handler) previous(r *http.Request, exercise string) *record.Record {
	all, err := h.store.LoadAll(r.Context())
	if err != nil {
		h.log.Warn("load previous entry", zap.Error(err))
		return nil
	}
	if rec, ok := record.Latest(all, exercise); ok {
		return &rec
	}
	return nil
}

// handleSubmit validates one entry, appends it and advances the suggestion.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sid := h.sessionID(w, r)
	date := h.parseDate(r.PostFormValue("date"))

	st, view := session.Render(h.sessions.Get(sid), date)
	sub := h.parseSubmission(r, date)

	rec, err := entry.Build(sub)
	if err != nil {
		h.sessions.Put(sid, st)
		page := h.newFormPage(r, view, r.PostFormValue("exercise"))
		if errors.Is(err, entry.ErrEmptySubmission) {
			page.Warning = "수행한 칸을 하나 이상 체크해주세요!"
		} else {
			page.Warning = err.Error()
		}
		h.render(w, "index.gohtml", http.StatusUnprocessableEntity, page)
		return
	}

	if err := h.store.Append(r.Context(), rec); err != nil {
		h.log.Error("append record", zap.Error(err), zap.String("exercise", rec.Exercise))
		h.sessions.Put(sid, st)
		page := h.newFormPage(r, view, r.PostFormValue("exercise"))
		page.Error = "저장에 실패했습니다. 잠시 후 다시 시도해주세요."
		h.render(w, "index.gohtml", http.StatusBadGateway, page)
		return
	}

	st = session.Advance(st, view.Routine, rec.Exercise)
	st.Flash = fmt.Sprintf("[%s] 저장 완료! 다음: [%s]", rec.Exercise, view.Routine.Exercises[st.Index])
	h.sessions.Put(sid, st)

	h.log.Info("record saved",
		zap.String("date", rec.Date),
		zap.String("exercise", rec.Exercise),
		zap.Int("next_index", st.Index),
	)
	http.Redirect(w, r, "/?date="+url.QueryEscape(rec.Date), http.StatusSeeOther)
}

// parseSubmission reads the posted form. Numeric fields that fail to parse
// take the form's defaults; cardio values are clamped to the form's ranges.
func (h *Handler) parseSubmission(r *http.Request, date time.Time) entry.Submission {
	name := strings.TrimSpace(r.PostFormValue("exercise"))
	if name == plan.Other {
		if other := strings.TrimSpace(r.PostFormValue("other_name")); other != "" {
			name = other
		}
	}

	timeOfDay := strings.TrimSpace(r.PostFormValue("time"))
	if timeOfDay == "" {
		timeOfDay = h.today().Format("15:04")
	}

	sub := entry.Submission{
		Date:       date,
		Time:       timeOfDay,
		BodyWeight: formFloat(r, "body_weight", h.form.DefaultBodyWeight),
		Exercise:   name,
		Memo:       r.PostFormValue("memo"),
	}

	switch plan.KindOf(name) {
	case plan.KindCompletion:
		sub.Completion.Done = r.PostFormValue("done") != ""
	case plan.KindCardio:
		sub.Cardio = entry.ClampCardio(entry.CardioInput{
			Minutes: formInt(r, "minutes", 30),
			Speed:   formFloat(r, "speed", 5.6),
			Incline: formInt(r, "incline", 0),
		})
	default:
		sets := make([]bool, h.form.SetCount)
		for _, v := range r.PostForm["set"] {
			if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(sets) {
				sets[n-1] = true
			}
		}
		weight := formFloat(r, "weight", 10)
		if weight < 0 {
			weight = 0
		}
		sub.Weighted = entry.WeightedInput{
			Weight:     weight,
			TargetReps: formInt(r, "reps", 15),
			Sets:       sets,
		}
	}
	return sub
}

// formFloat reads a finite number; NaN and infinities take the default.
func formFloat(r *http.Request, key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue(key)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func formInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(key)))
	if err != nil {
		return def
	}
	return v
}
