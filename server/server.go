package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"study_notes_generator/pipeline"
)

// Version is reported by the MCP endpoint.
const Version = "1.0.0"

// Options configures the HTTP surface.
type Options struct {
	// PublicBaseURL prefixes download links. Empty means derive it from the request.
	PublicBaseURL string
	CORSOrigins   []string
	// RateLimit is generate requests per second across all clients; 0 disables it.
	RateLimit float64
	RateBurst int
	MCP       bool
}

type Server struct {
	pipe    *pipeline.Pipeline
	opts    Options
	logger  *slog.Logger
	limiter *rate.Limiter
}

func New(pipe *pipeline.Pipeline, opts Options, logger *slog.Logger) (*Server, error) {
	if pipe == nil {
		return nil, errors.New("pipeline required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{pipe: pipe, opts: opts, logger: logger}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverJSON, s.logRequests, s.cors)

	r.Get("/", s.handleHealth)
	r.With(s.rateLimit).Post("/generate", s.handleGenerate)
	r.Get("/download/{filename}", s.handleDownload)

	if s.opts.MCP {
		srv := mcp.NewServer(&mcp.Implementation{Name: "study-notes", Version: Version}, nil)
		s.RegisterMCP(srv)
		r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
