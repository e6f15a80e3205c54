// Package http serves the expense-logging page: a date picker, an entry
// form and the per-day list with its total, rendered server-side and wired
// with HTMX partial updates.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	applog "spendlog/internal/log"
	"spendlog/internal/middleware/ratelimit"
	"spendlog/internal/middleware/security"
	"spendlog/internal/middleware/trace"
	"spendlog/internal/store"
	appweb "spendlog/web"
)

// defaultCategories populates the category selector; the form also carries
// a free-text escape for anything not listed.
var defaultCategories = []string{
	"General",
	"Food",
	"Transport",
	"Home",
	"Leisure",
	"Health",
}

type Server struct {
	http.Server
	templates *template.Template
	store     *store.Store

	limiter      *ratelimit.Limiter
	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, st *store.Store) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:     st,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		startedAt: time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /expenses", s.handleDayList)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /expenses/{id}/delete", s.handleDeleteExpense)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	traceMw := trace.NewMiddleware(extractClientIP)
	secMw := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	handler := traceMw.Middleware(secMw.Middleware(s.rateLimitMiddleware(mux)))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// rateLimitMiddleware rejects clients over the per-minute budget.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)
		if !s.limiter.Allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", applog.FieldClientIP, clientIP)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops the server and its cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
