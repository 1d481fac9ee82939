package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"workoutlog/internal/config"
	"workoutlog/internal/record"
	"workoutlog/internal/session"
)

const sessionCookie = "workoutlog_session"

type Handler struct {
	store    record.Store
	sessions *session.Registry
	form     config.FormConfig
	log      *zap.Logger
	pages    pages
	now      func() time.Time

	csrfKey []byte
	secure  bool
}

type Options struct {
	Form    config.FormConfig
	CSRFKey string
	Secure  bool // cookies only over HTTPS
}

func NewHandler(store record.Store, sessions *session.Registry, log *zap.Logger, opts Options) (*Handler, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	form := opts.Form
	if form.Location == nil {
		form.Location = time.FixedZone("KST", 9*60*60)
	}
	if form.SetCount < 1 {
		form.SetCount = 4
	}
	return &Handler{
		store:    store,
		sessions: sessions,
		form:     form,
		log:      log,
		pages:    p,
		now:      time.Now,
		csrfKey:  []byte(opts.CSRFKey),
		secure:   opts.Secure,
	}, nil
}

// Routes wires every endpoint behind the middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("GET /calendar", h.handleCalendar)

	// Form posts
	mux.HandleFunc("POST /records", h.handleSubmit)
	mux.HandleFunc("POST /records/{id}/delete", h.handleDelete)

	// JSON
	mux.HandleFunc("GET /api/records", h.handleListRecords)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var handler http.Handler = mux
	if len(h.csrfKey) > 0 {
		handler = csrf.Protect(h.csrfKey, csrf.Secure(h.secure), csrf.Path("/"))(handler)
	}
	return chainMiddlewares(handler, h.withRecover, h.withLogging)
}

// today is the current date in the form's timezone.
func (h *Handler) today() time.Time {
	return h.now().In(h.form.Location)
}

// sessionID returns the caller's session, issuing a cookie for new visitors
// and for cookies this process never issued or has since evicted.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && h.sessions.Known(c.Value) {
		return c.Value
	}
	id := h.sessions.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// parseDate reads a yyyy-mm-dd value, falling back to today.
func (h *Handler) parseDate(s string) time.Time {
	if d, err := time.Parse(record.DateLayout, s); err == nil {
		return d
	}
	t := h.today()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.log.Error("internal error", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func isNotFound(err error) bool {
	return errors.Is(err, record.ErrNotFound)
}
