package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimetracker/internal/domain"
	"github.com/hamed0406/uptimetracker/internal/form"
	apimw "github.com/hamed0406/uptimetracker/internal/httpapi/middleware"
	"github.com/hamed0406/uptimetracker/internal/notify"
	"github.com/hamed0406/uptimetracker/internal/render"
	"github.com/hamed0406/uptimetracker/internal/session"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type Server struct {
	Logger  *zap.Logger
	Session *session.Orchestrator
	Form    *form.Form
	Banner  *notify.Banner

	now      func() time.Time
	inflight sync.WaitGroup
}

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
	CheckRPM       int
	CheckBurst     int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy     bool
}

func NewServer(l *zap.Logger, sess *session.Orchestrator, f *form.Form, banner *notify.Banner) *Server {
	return &Server{Logger: l, Session: sess, Form: f, Banner: banner, now: time.Now}
}

func (s *Server) Router(opts Options) http.Handler {
	r := chi.NewRouter()
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	limit := apimw.RateLimit(opts.CheckRPM, opts.CheckBurst)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handlePage)
	r.With(limit).Post("/check", s.handleSubmit)
	r.Post("/notice/dismiss", s.handleDismiss)
	r.Get("/ws", s.handleWS)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
		r.Get("/state", s.handleState)
		r.With(limit).Post("/check", s.handleAPICheck)
	})

	return r
}

// Wait blocks until background checks started by form submissions finish.
func (s *Server) Wait() {
	s.inflight.Wait()
}

type pageData struct {
	URL        string
	Loading    bool
	HasResults bool
	Entries    []render.Entry
	Notice     *notify.Notice
	Validation string
	Year       int
}

func (s *Server) pageData() pageData {
	snap := s.Session.Snapshot()
	d := pageData{
		URL:        s.Form.Value(),
		Loading:    snap.Loading,
		HasResults: snap.HasResults,
		Notice:     s.Banner.Current(),
		Year:       s.now().Year(),
	}
	if snap.HasResults {
		d.Entries = render.Entries(snap.Results)
	}
	return d
}

func (s *Server) renderPage(w http.ResponseWriter, status int, d pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, d); err != nil {
		s.Logger.Warn("page_render_error", zap.Error(err))
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.pageData())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	s.Form.UpdateURL(r.PostFormValue("url"))

	req, err := s.Form.Request()
	if err != nil {
		d := s.pageData()
		d.Validation = form.Message(err)
		s.renderPage(w, http.StatusUnprocessableEntity, d)
		return
	}

	// The check outlives this request; the page follows it over /ws.
	done := s.Session.Start(context.WithoutCancel(r.Context()), req)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		<-done
	}()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s.Banner.Dismiss(r.PostFormValue("id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type stateResponse struct {
	Loading    bool             `json:"loading"`
	HasResults bool             `json:"has_results"`
	Results    domain.ResultSet `json:"results"`
	Notice     *notify.Notice   `json:"notice,omitempty"`
}

func (s *Server) state() stateResponse {
	snap := s.Session.Snapshot()
	return stateResponse{
		Loading:    snap.Loading,
		HasResults: snap.HasResults,
		Results:    snap.Results,
		Notice:     s.Banner.Current(),
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

const maxPayloadBytes = 8 << 10

type checkPayload struct {
	URL string `json:"url"`
}

func (s *Server) handleAPICheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)
	var p checkPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad payload"})
		return
	}
	p.URL = strings.TrimSpace(p.URL)
	if err := form.Validate(p.URL); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": form.Message(err)})
		return
	}

	out := s.Session.RunCheck(context.WithoutCancel(r.Context()), domain.CheckRequest{URL: p.URL})
	switch {
	case out.Stale:
		writeJSON(w, http.StatusConflict, map[string]string{"error": "superseded by a newer check"})
	case out.Err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": session.FailureMessage})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"results": out.Results})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http_request",
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
