package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/library-service/internal/metrics"
	"github.com/maxviazov/library-service/internal/service"
)

// Options carries the wiring that varies per deployment.
type Options struct {
	// Paginated switches listings between envelopes and capped bare arrays.
	Paginated bool
	// ClientAddr is where GET / redirects; empty disables the redirect.
	ClientAddr  string
	CORSOrigins []string
	Metrics     *metrics.Metrics
	// Checks are probed by readiness after the database.
	Checks []Check
	// OpenAPIPath defaults to DefaultOpenAPIPath.
	OpenAPIPath string
}

// NewEngine builds a gin engine with the standard middleware chain installed.
func NewEngine(logger zerolog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS(opts.CORSOrigins...))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	return r
}

// Register mounts all public routes on the given engine.
// The resource routes are served both at the root, where envelope links point, and under APIV1Prefix.
func Register(r *gin.Engine, repo Pinger, bookSvc service.BookService, pageSvc service.PageService, opts Options) {
	h := NewHealthHandler(append([]Check{{Name: "postgres", Pinger: repo}}, opts.Checks...)...)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r, opts.OpenAPIPath)

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.ClientAddr != "" {
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, opts.ClientAddr)
		})
	}

	books := NewBookHandler(bookSvc, opts.Paginated)
	pages := NewPageHandler(pageSvc, opts.Paginated)

	books.Register(&r.RouterGroup)
	pages.Register(&r.RouterGroup)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		books.Register(api)
		pages.Register(api)
	}
}
