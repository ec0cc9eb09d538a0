// Package server serves the teacher-facing web page and its JSON API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"text_differentiator/generator"
	"text_differentiator/history"
)

//go:embed web
var embeddedWeb embed.FS

const (
	sessionCookie      = "textdiff_session"
	defaultTimeout     = 60 * time.Second
	defaultSessionTTL  = 24 * time.Hour
	defaultMaxSessions = 1000
	maxBodyBytes       = 4 << 20
	recentLimit        = 10
)

// HistoryStore persists adaptations beyond the session.
type HistoryStore interface {
	Save(ctx context.Context, e history.Entry) (int64, error)
	List(ctx context.Context, limit int) ([]history.Entry, error)
}

// Options configures a Server.
type Options struct {
	Models       []string
	DefaultModel string
	Profiles     *generator.Profiles
	Base         generator.Options
	Timeout      time.Duration
	Store        HistoryStore
	Logger       *slog.Logger
	Now          func() time.Time
	// SessionTTL drops sessions idle for longer. Zero means 24h.
	SessionTTL   time.Duration
	// MaxSessions evicts the least recently used session beyond this count.
	MaxSessions  int
}

type Server struct {
	agent    *generator.Agent
	opts     Options
	sessions *sessionStore
	page     *template.Template
	static   http.Handler
	logger   *slog.Logger
	now      func() time.Time
}

// sessionStore keeps in-memory sessions keyed by cookie value. Idle sessions
// expire after ttl and the store holds at most max of them.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	ttl      time.Duration
	max      int
	now      func() time.Time
}

type storedSession struct {
	sess *generator.Session
	seen time.Time
}

func newStore(ttl time.Duration, limit int, now func() time.Time) *sessionStore {
	return &sessionStore{sessions: make(map[string]*storedSession), ttl: ttl, max: limit, now: now}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.prune(now)
	for len(s.sessions) >= s.max {
		s.evictOldest()
	}
	s.sessions[id] = &storedSession{sess: sess, seen: now}
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(st.seen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	st.seen = now
	return st.sess, true
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// prune must be called with mu held.
func (s *sessionStore) prune(now time.Time) {
	for id, st := range s.sessions {
		if now.Sub(st.seen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// evictOldest must be called with mu held.
func (s *sessionStore) evictOldest() {
	var oldest string
	var seen time.Time
	for id, st := range s.sessions {
		if oldest == "" || st.seen.Before(seen) {
			oldest, seen = id, st.seen
		}
	}
	delete(s.sessions, oldest)
}

func New(agent *generator.Agent, opts Options) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if opts.Profiles == nil {
		opts.Profiles = generator.NewProfiles()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.DefaultModel == "" && len(opts.Models) > 0 {
		opts.DefaultModel = opts.Models[0]
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = defaultMaxSessions
	}
	if opts.Base == (generator.Options{}) {
		opts.Base = generator.DefaultOptions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	page, err := template.New("index.html.tmpl").Funcs(templateFuncs).ParseFS(embeddedWeb, "web/index.html.tmpl")
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(embeddedWeb, "web/static")
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:    agent,
		opts:     opts,
		sessions: newStore(opts.SessionTTL, opts.MaxSessions, now),
		page:     page,
		static:   http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
		logger:   logger,
		now:      now,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /adapt", s.handleAdaptForm)
	mux.HandleFunc("POST /clear", s.handleClearForm)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("POST /api/adapt", s.handleAdapt)
	mux.HandleFunc("POST /api/clear", s.handleClear)
	mux.HandleFunc("POST /api/readability", s.handleReadability)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/export/{kind}", s.handleExport)
	mux.Handle("GET /static/", s.static)
	return s.logMiddleware(mux)
}

// session returns the caller's session, creating one and setting the cookie
// when there is none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *generator.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.get(c.Value); ok {
			return sess
		}
	}
	id := uuid.NewString()
	sess := generator.NewSession(id, s.agent)
	s.sessions.set(id, sess)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// existingSession returns the caller's session without creating one.
func (s *Server) existingSession(r *http.Request) (*generator.Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return s.sessions.get(c.Value)
}

// adapt runs one adaptation under the request timeout and persists it.
func (s *Server) adapt(ctx context.Context, sess *generator.Session, text string, opts generator.Options, model string) (generator.Adaptation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	res, err := sess.Adapt(ctx, text, opts, model)
	if err != nil {
		return generator.Adaptation{}, err
	}
	if s.opts.Store != nil {
		if _, err := s.opts.Store.Save(ctx, history.NewEntry(res)); err != nil {
			// the session still has the result; persistence is best effort
			s.logger.Warn("failed to save history", "error", err)
		}
	}
	return res, nil
}

func (s *Server) allowsModel(model string) bool {
	if model == "" || model == s.opts.DefaultModel {
		return true
	}
	for _, m := range s.opts.Models {
		if m == model {
			return true
		}
	}
	return false
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

// statusFor maps adaptation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrEmptyText), errors.Is(err, generator.ErrUnknownGrade):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		s.logger.Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", s.now().Sub(start),
		)
	})
}
