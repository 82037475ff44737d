package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltip/pkg/buildinfo"
	tterrors "github.com/matzehuels/tooltip/pkg/errors"
	"github.com/matzehuels/tooltip/pkg/observability"
	"github.com/matzehuels/tooltip/pkg/placement"
	"github.com/matzehuels/tooltip/pkg/render/preview"
	"github.com/matzehuels/tooltip/pkg/render/report"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	maxRequestBytes = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command, which exposes placement over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement API over HTTP",
		Long: `Serve a JSON API for placement computations.

Endpoints:
  GET  /healthz             liveness check
  GET  /api/v1/placements   the twelve placement names
  POST /api/v1/place        compute one placement
  POST /api/v1/survey       evaluate every placement for one geometry
  POST /api/v1/preview      render one placement as SVG
  GET  /api/v1/stats        placement and request counters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	st := newStats()
	observability.SetPlacementHooks(st)
	observability.SetHTTPHooks(st)
	defer observability.Reset()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(logger, st),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// api holds the handlers' shared state.
type api struct {
	logger *log.Logger
	stats  *stats
}

func newRouter(logger *log.Logger, st *stats) http.Handler {
	a := &api{logger: logger, stats: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.instrument)

	r.Get("/healthz", healthzHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/placements", placementsHandler)
		r.Post("/place", a.placeHandler)
		r.Post("/survey", a.surveyHandler)
		r.Post("/preview", a.previewHandler)
		r.Get("/stats", a.statsHandler)
	})

	return r
}

// instrument reports every request to the HTTP hooks and logs it at debug.
func (a *api) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		a.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"dur", d.Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

func placementsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":    placement.Default.String(),
		"placements": placement.Names(),
	})
}

func (a *api) placeHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decode(w, r)
	if !ok {
		return
	}
	res, err := req.Compute()
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.FromResult(res, req.Size, req.Viewport.Normalize()))
}

func (a *api) surveyHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decode(w, r)
	if !ok {
		return
	}
	s, err := req.Survey()
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *api) previewHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decode(w, r)
	if !ok {
		return
	}
	res, err := req.Compute()
	if err != nil {
		a.writeError(w, err)
		return
	}
	opts := []preview.Option{preview.WithCaption()}
	if r.URL.Query().Get("alternatives") == "1" {
		opts = append(opts, preview.WithAlternatives())
	}
	svg := preview.Render(preview.Scene{
		Viewport: req.Viewport.Normalize(),
		Target:   req.TargetRect(),
		Size:     req.Size,
		Spacing:  req.Spacing,
		Content:  r.URL.Query().Get("content"),
		Result:   res,
	}, opts...)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (a *api) statsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.stats.snapshot())
}

func (a *api) decode(w http.ResponseWriter, r *http.Request) (report.Request, bool) {
	req, err := report.ReadRequest(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		a.writeError(w, err)
		return report.Request{}, false
	}
	return req, true
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (a *api) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if tterrors.IsValidation(err) {
		status = http.StatusBadRequest
	} else {
		a.logger.Error("request failed", "err", err)
	}
	code := tterrors.GetCode(err)
	if code == "" {
		code = tterrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Code: string(code), Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode JSON response", "err", err)
	}
}
