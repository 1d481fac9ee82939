package web

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"workoutlog/internal/calendar"
	"workoutlog/internal/record"
)

// calendarPage is the template data for the month view.
type calendarPage struct {
	Month       calendar.Month
	Months      []calendar.YearMonth
	Weeks       []calendar.Week
	Day         *calendar.Day
	SelectedDay string
	DayKey      string
	Error       string
	CSRF        template.HTML
}

// handleCalendar renders ?month=YYYY-MM with an optional ?day= drill-down.
func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := h.today()

	ym := calendar.Of(today)
	var day *calendar.Day
	dayKey := q.Get("day")
	if d, ok := record.ParseDate(dayKey); ok {
		ym = calendar.Of(d)
		dayKey = d.Format(record.DateLayout)
	} else {
		dayKey = ""
	}
	if m, ok := calendar.ParseYearMonth(q.Get("month")); ok {
		ym = m
	}

	page := calendarPage{CSRF: csrf.TemplateField(r), SelectedDay: dayKey, DayKey: dayKey}
	status := http.StatusOK

	records, err := h.store.LoadAll(r.Context())
	if err != nil {
		h.log.Error("load records", zap.Error(err))
		page.Error = "기록을 불러오지 못했습니다. 저장소 연결을 확인해주세요."
		records = []record.Record{}
		status = http.StatusBadGateway
	}

	if d, ok := record.ParseDate(dayKey); ok && calendar.Of(d) == ym {
		if found, ok := calendar.DayOf(records, d); ok {
			day = &found
		}
	}

	page.Month = calendar.Build(records, ym, today)
	page.Months = withMonth(calendar.Months(records), ym)
	page.Weeks = calendar.ByWeek(records, ym)
	page.Day = day

	h.render(w, "calendar.gohtml", status, page)
}

// withMonth makes sure the displayed month is selectable even without records.
func withMonth(months []calendar.YearMonth, ym calendar.YearMonth) []calendar.YearMonth {
	for _, m := range months {
		if m == ym {
			return months
		}
	}
	out := make([]calendar.YearMonth, 0, len(months)+1)
	inserted := false
	for _, m := range months {
		if !inserted && ym.First().After(m.First()) {
			out = append(out, ym)
			inserted = true
		}
		out = append(out, m)
	}
	if !inserted {
		out = append(out, ym)
	}
	return out
}

// handleDelete removes one record by the ID shown on the calendar and
// returns to the same month and day.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			http.Error(w, "기록을 찾을 수 없습니다.", http.StatusNotFound)
			return
		}
		h.log.Error("delete record", zap.Error(err), zap.String("id", id))
		http.Error(w, "삭제에 실패했습니다.", http.StatusBadGateway)
		return
	}
	h.log.Info("record deleted", zap.String("id", id))

	back := url.Values{}
	if m := r.PostFormValue("month"); m != "" {
		back.Set("month", m)
	}
	if d := r.PostFormValue("day"); d != "" {
		back.Set("day", d)
	}
	target := "/calendar"
	if len(back) > 0 {
		target += "?" + back.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
