package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/ppiankov/durparse/internal/cache"
	"github.com/ppiankov/durparse/internal/evaluator"
	"github.com/ppiankov/durparse/internal/models"
	"github.com/ppiankov/durparse/internal/ratelimit"
	"github.com/spf13/cobra"
)

const (
	maxCheckBodyBytes = 1 << 20
	parseCacheTTL     = 10 * time.Minute
	shutdownTimeout   = 5 * time.Second
)

type serveOptions struct {
	dir       string
	port      int
	rateLimit int
}

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve the parse API and a report directory",
		Long: `Start a local HTTP server exposing:

  GET  /api/parse?expr=2h+30m   parse one expression
  POST /api/check               parse every line of the request body
  GET  /                        files from the report directory, if it exists`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.dir = args[0]
			}

			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "./report", "Report directory to serve")
	cmd.Flags().IntVar(&opts.port, "port", 8080, "Port to serve on")
	cmd.Flags().IntVar(&opts.rateLimit, "rate-limit", 50, "Max API requests per second (0 disables)")

	return cmd
}

// runServe starts the HTTP server and blocks until SIGINT/SIGTERM or ctx is done
func runServe(ctx context.Context, opts serveOptions) error {
	if opts.port < 1 || opts.port > 65535 {
		return fmt.Errorf("invalid --port value %d: must be between 1 and 65535", opts.port)
	}
	if opts.rateLimit < 0 {
		return fmt.Errorf("invalid --rate-limit value %d: must be >= 0", opts.rateLimit)
	}
	if info, err := os.Stat(opts.dir); err == nil && !info.IsDir() {
		return fmt.Errorf("report path %s is not a directory", opts.dir)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
	}

	url := "http://localhost:" + strconv.Itoa(opts.port)
	fmt.Fprintf(os.Stderr, "Serving durparse API at %s (Ctrl+C to stop)\n", url)
	slog.Debug("server started",
		slog.String("url", url),
		slog.String("dir", opts.dir),
		slog.Int("rate_limit", opts.rateLimit),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, listener, opts.dir, ratelimit.New(opts.rateLimit), cache.New(parseCacheTTL))
}

// serve runs the API on listener until ctx is done, then shuts down and drops
// cached results.
func serve(ctx context.Context, listener net.Listener, dir string, limiter *ratelimit.Limiter, results *cache.Cache) error {
	server := &http.Server{
		Handler:           newServeMux(dir, limiter, results),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		results.Clear()
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if serr := <-serveErr; serr != nil && !errors.Is(serr, http.ErrServerClosed) && err == nil {
		err = serr
	}
	slog.Debug("server stopped", slog.Int("cached_results", results.Size()))
	results.Clear()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// apiServer holds the state shared by the API handlers
type apiServer struct {
	results *cache.Cache
}

func newServeMux(dir string, limiter *ratelimit.Limiter, results *cache.Cache) *http.ServeMux {
	api := &apiServer{results: results}

	mux := http.NewServeMux()
	mux.Handle("GET /api/parse", limiter.Middleware(http.HandlerFunc(api.handleParse)))
	mux.Handle("POST /api/check", limiter.Middleware(http.HandlerFunc(api.handleCheck)))

	if info, err := os.Stat(filepath.Clean(dir)); err == nil && info.IsDir() {
		mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	}
	return mux
}

func (s *apiServer) handleParse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("expr") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expr query parameter is required"})
		return
	}

	expr := query.Get("expr")
	human := query.Get("human") != "false"
	key := strconv.FormatBool(human) + "\x00" + expr

	result, hit := s.lookup(key)
	if !hit {
		result = evaluator.EvaluateEntry(models.Entry{
			Source: "request",
			Line:   1,
			Input:  expr,
		}, human)
		s.store(key, result)
	}

	status := http.StatusOK
	if !result.Valid() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (s *apiServer) lookup(key string) (models.Result, bool) {
	if s.results == nil {
		return models.Result{}, false
	}
	return s.results.Get(key)
}

func (s *apiServer) store(key string, result models.Result) {
	if s.results != nil {
		s.results.Set(key, result)
	}
}

func (s *apiServer) handleCheck(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxCheckBodyBytes)
	entries, err := evaluator.ReadEntries("request", body)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	startTime := time.Now()
	results := make([]models.Result, 0, len(entries))
	for _, entry := range entries {
		results = append(results, evaluator.EvaluateEntry(entry, false))
	}

	writeJSON(w, http.StatusOK, buildReport(entries, results, startTime))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to write response", slog.String("error", err.Error()))
	}
}
