package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/report"
	appweb "finance/web"
)

// ReportBuilder produces the dashboard report for a set of parameters.
type ReportBuilder interface {
	Report(ctx context.Context, p report.Params) (report.Report, error)
}

// TransactionEditor is the write path behind the forms.
type TransactionEditor interface {
	Get(ctx context.Context, id int64) (core.Transaction, error)
	Create(ctx context.Context, t core.Transaction) (int64, error)
	Update(ctx context.Context, t core.Transaction) error
	Delete(ctx context.Context, id int64) error
}

// Deps are the collaborators of the server. Ready may be nil.
type Deps struct {
	Reports      ReportBuilder
	Transactions TransactionEditor
	Ready        func(ctx context.Context) error
	Logger       *applog.Logger
	WriteLimit   int
}

type Server struct {
	http.Server
	templates    *template.Template
	reports      ReportBuilder
	transactions TransactionEditor
	ready        func(ctx context.Context) error
	logger       *applog.Logger
	rateLimiter  *rateLimiter
	now          func() time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	router := mux.NewRouter()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		reports:      deps.Reports,
		transactions: deps.Transactions,
		ready:        deps.Ready,
		logger:       logger,
		rateLimiter:  newRateLimiter(deps.WriteLimit),
		now:          time.Now,
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	router.Use(
		s.recoverPanic,
		withRequestID,
		applog.Middleware(logger),
		applog.RequestIDMiddleware(requestIDFrom),
		s.accessLog,
		securityHeaders,
		s.limitWrites,
	)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		router.PathPrefix("/static/").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/report", s.handleReportJSON).Methods(http.MethodGet)
	router.HandleFunc("/add", s.handleAdd).Methods(http.MethodPost)
	router.HandleFunc("/edit/{id:[0-9]+}", s.handleEditForm).Methods(http.MethodGet)
	router.HandleFunc("/edit/{id:[0-9]+}", s.handleEdit).Methods(http.MethodPost)
	router.HandleFunc("/delete/{id:[0-9]+}", s.handleDelete).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	return s
}

// Shutdown stops the rate limiter and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
