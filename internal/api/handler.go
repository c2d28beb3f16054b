// Package api provides the HTTP surface of the schema catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"schemacat/internal/middleware"
	"schemacat/internal/service"
)

// Handler holds the services the HTTP layer dispatches to.
type Handler struct {
	auth         *service.AuthService
	integrations *service.IntegrationService
	schemas      *service.SchemaService
	mappings     *service.MappingService
	compiler     *service.Compiler
	logger       *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	auth *service.AuthService,
	integrations *service.IntegrationService,
	schemas *service.SchemaService,
	mappings *service.MappingService,
	compiler *service.Compiler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:         auth,
		integrations: integrations,
		schemas:      schemas,
		mappings:     mappings,
		compiler:     compiler,
		logger:       logger,
	}
}

// RouterConfig carries the HTTP-level knobs the router needs.
type RouterConfig struct {
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
}

// Router assembles the chi router: public auth and health endpoints, and a
// token-protected API for everything else.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}))
	}

	r.Get("/healthz", h.handleHealthz)
	r.Post("/api/v1/auth/register", h.handleRegister)
	r.Post("/api/v1/auth/login", h.handleLogin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(h.auth))

		r.Get("/auth/me", h.handleMe)
		r.Patch("/auth/me", h.handleUpdateProfile)

		r.Get("/integration-definitions", h.handleListDefinitions)

		r.Route("/integrations", func(r chi.Router) {
			r.Post("/", h.handleCreateIntegration)
			r.Get("/", h.handleListIntegrations)
			r.Get("/{id}", h.handleGetIntegration)
			r.Patch("/{id}", h.handleUpdateIntegration)
			r.Delete("/{id}", h.handleDeleteIntegration)
			r.Post("/{id}/toggle", h.handleToggleIntegration)
			r.Put("/{id}/metadata", h.handleUpdateIntegrationMetadata)
			r.Post("/{id}/test-connection", h.handleTestConnection)
			r.Post("/{id}/discover", h.handleDiscover)
			r.Get("/{id}/collections", h.handleListCollections)
		})
		r.Get("/collections/{id}/fields", h.handleListCollectionFields)

		r.Route("/schemas", func(r chi.Router) {
			r.Post("/", h.handleCreateSchema)
			r.Get("/", h.handleListSchemas)
			r.Get("/{id}", h.handleGetSchema)
			r.Patch("/{id}", h.handleUpdateSchema)
			r.Delete("/{id}", h.handleDeleteSchema)
			r.Post("/{id}/fields", h.handleAddSchemaField)
			r.Get("/{id}/mappings", h.handleListSchemaMappings)
			r.Get("/{id}/collections/{collectionID}/field-mappings", h.handleFieldMappingsFor)
		})
		r.Patch("/schema-fields/{fieldID}", h.handleUpdateSchemaField)
		r.Delete("/schema-fields/{fieldID}", h.handleDeleteSchemaField)

		r.Route("/mappings", func(r chi.Router) {
			r.Post("/", h.handleCreateMapping)
			r.Get("/{id}", h.handleGetMapping)
			r.Delete("/{id}", h.handleDeleteMapping)
			r.Get("/{id}/field-mappings", h.handleListFieldMappings)
			r.Put("/{id}/field-mappings", h.handleReplaceFieldMappings)
		})

		r.Post("/query/convert", h.handleConvertQuery)
	})

	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
