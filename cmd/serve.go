package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/featureset/internal/featureset"
	"github.com/sells-group/featureset/internal/frame"
)

var servePort int

// convertRequest is the wire shape accepted by POST /v1/featureset.
// Column values follow JSON typing: numbers arrive as float64, nulls as
// missing cells.
type convertRequest struct {
	Columns []struct {
		Name   string `json:"name"`
		Values []any  `json:"values"`
	} `json:"columns"`
	GeometryType     string         `json:"geometryType"`
	WKID             int            `json:"wkid"`
	SpatialReference map[string]any `json:"spatialReference"`
	X                string         `json:"x"`
	Y                string         `json:"y"`
	NestedKey        string         `json:"nestedKey"`
	Exclude          []string       `json:"exclude"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := chi.NewRouter()
		r.Use(requestLogger)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.CORSHosts,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		r.Use(rateLimiter(rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/v1/featureset", handleConvert)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Columns) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "columns are required"})
		return
	}

	cols := make([]frame.Column, len(req.Columns))
	rows := 0
	for i, c := range req.Columns {
		cols[i] = frame.Column{Name: c.Name, Values: c.Values}
		if n := len(c.Values); n > rows {
			rows = n
		}
	}
	if cfg.Server.MaxRows > 0 && rows > cfg.Server.MaxRows {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "dataset exceeds row limit"})
		return
	}

	ds, err := frame.New(cols...)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	kind, err := featureset.ParseGeometryKind(req.GeometryType)
	if err != nil {
		writeConvertError(w, err)
		return
	}

	var sr any
	switch {
	case req.SpatialReference != nil:
		sr = map[string]any{"spatialReference": req.SpatialReference}
	case req.WKID != 0:
		sr = req.WKID
	}

	fc, err := featureset.Build(ds, featureset.Config{
		SpatialRef: sr,
		Kind:       kind,
		Point: featureset.PointOptions{
			XCol:      req.X,
			YCol:      req.Y,
			NestedKey: req.NestedKey,
			Exclude:   req.Exclude,
		},
		Concurrency: cfg.Convert.Concurrency,
	})
	if err != nil {
		writeConvertError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fc)
}

// writeConvertError maps conversion error kinds onto HTTP statuses.
func writeConvertError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case eris.Is(err, featureset.ErrNotImplemented):
		status = http.StatusNotImplemented
	case eris.Is(err, featureset.ErrInvalidSpatialReference),
		eris.Is(err, featureset.ErrUnsupportedGeometryKind),
		eris.Is(err, featureset.ErrGeometryKindRequired),
		eris.Is(err, featureset.ErrUnsupportedColumnType):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
		zap.L().Info("request",
			zap.String("component", "server"),
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
	})
}

// rateLimiter rejects requests above the configured rate with 429.
func rateLimiter(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
