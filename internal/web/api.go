package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"workoutlog/internal/calendar"
	"workoutlog/internal/record"
)

type recordsResponse struct {
	Columns []string        `json:"columns"`
	Month   string          `json:"month,omitempty"`
	Records []record.Record `json:"records"`
}

// handleListRecords returns the raw records, optionally for ?month=YYYY-MM.
func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.LoadAll(r.Context())
	if err != nil {
		h.log.Error("load records", zap.Error(err))
		h.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "store unavailable",
		})
		return
	}

	resp := recordsResponse{Columns: record.Columns, Records: all}
	if m := r.URL.Query().Get("month"); m != "" {
		ym, ok := calendar.ParseYearMonth(m)
		if !ok {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "month must be YYYY-MM",
			})
			return
		}
		resp.Month = ym.String()
		resp.Records = record.FilterMonth(all, ym.Year, ym.Month)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// writeJSON encodes before writing the header so an unencodable value
// becomes a 500 instead of an empty 200.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.internalError(w, fmt.Errorf("encode json: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn("write json", zap.Error(err))
	}
}
