package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fatema-maitham/sudoko-solver/internal/metrics"
	"github.com/fatema-maitham/sudoko-solver/internal/usecase"
)

// RouterOptions tunes the assembled engine.
type RouterOptions struct {
	Logger       *slog.Logger
	Metrics      bool
	MaxStepDelay time.Duration
}

// NewRouter assembles the gin engine: recovery, request logging, the API
// routes, the health probe and, when enabled, the Prometheus endpoint.
func NewRouter(uc *usecase.Service, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	log := opts.Logger.With("component", "http")

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	h := New(uc)
	h.Log = log
	if opts.MaxStepDelay > 0 {
		h.MaxStepDelay = opts.MaxStepDelay
	}
	h.Register(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	return r
}

// requestLogger logs one line per request and feeds the request counter.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.ObserveRequest(c.Request.Method, route, status)
		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
