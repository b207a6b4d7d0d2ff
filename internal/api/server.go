// Package api serves the defense pack, analysis and legal search endpoints.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/justicejet/defensepack/internal/config"
	"github.com/justicejet/defensepack/internal/extract"
	"github.com/justicejet/defensepack/internal/model"
)

// Service is the pipeline surface the handlers drive.
type Service interface {
	Run(ctx context.Context, req model.CaseRequest) (*model.DefensePack, error)
	Analyze(ctx context.Context, text string, depth model.AnalysisDepth) (string, error)
	Search(ctx context.Context, query string, jurisdiction model.Jurisdiction, caseType model.CaseType) model.SearchResponse
}

// Deps holds everything the handlers need.
type Deps struct {
	Service   Service
	Extractor extract.Extractor
	Server    config.ServerConfig
}

// handlerDeps is Deps plus the shared limits built once per handler.
type handlerDeps struct {
	Deps
	packs     *semaphore.Weighted
	maxUpload int64
}

// NewHandler builds the HTTP handler with middleware and routes.
func NewHandler(deps Deps) http.Handler {
	hd := handlerDeps{
		Deps:      deps,
		packs:     semaphore.NewWeighted(int64(max(deps.Server.MaxConcurrentPacks, 1))),
		maxUpload: int64(max(deps.Server.MaxUploadMB, 1)) << 20,
	}

	origins := deps.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Pack-Id", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		if deps.Server.RateLimit > 0 {
			r.Use(throttle(rate.NewLimiter(rate.Limit(deps.Server.RateLimit), max(deps.Server.RateBurst, 1))))
		}
		r.Post("/generate-learning", handleGenerateLearning(hd))
		r.Post("/generate", handleGenerate(hd))
		r.Post("/legal-search", handleLegalSearch(hd))
	})

	return r
}
