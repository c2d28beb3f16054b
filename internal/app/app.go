// Package app provides application-level wiring: main() hands over the
// external dependencies and New assembles repositories, adapters, and
// services into a ready-to-serve application.
package app

import (
	"database/sql"
	"log/slog"

	"schemacat/internal/adapter"
	"schemacat/internal/adapter/splunk"
	"schemacat/internal/api"
	"schemacat/internal/config"
	"schemacat/internal/db/repository"
	"schemacat/internal/domain"
	"schemacat/internal/service"
)

// Deps holds the external dependencies that main() must provide.
// These are things the app package cannot (or should not) create itself:
// database handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups the service pointers the API handler and CLI need.
type Services struct {
	Auth         *service.AuthService
	Integrations *service.IntegrationService
	Discovery    *service.DiscoveryService
	Schemas      *service.SchemaService
	Mappings     *service.MappingService
	Compiler     *service.Compiler
}

// App holds the fully-wired application.
type App struct {
	Services     Services
	Handler      *api.Handler
	Rediscoverer *service.Rediscoverer
}

// New wires repositories, the adapter registry, and all services from the
// provided deps. Nothing here touches the network; adapters only reach out
// when a request drives them.
func New(deps Deps) *App {
	cfg := deps.Cfg

	// Repositories all run on the write pool: every repo mixes reads with
	// inserts or updates, and the read pool would deadlock transactions
	// that span both.
	userRepo := repository.NewUserRepo(deps.WriteDB)
	integrationRepo := repository.NewIntegrationRepo(deps.WriteDB)
	collectionRepo := repository.NewCollectionRepo(deps.WriteDB)
	fieldRepo := repository.NewPhysicalFieldRepo(deps.WriteDB)
	schemaRepo := repository.NewLogicalSchemaRepo(deps.WriteDB)
	mappingRepo := repository.NewMappingRepo(deps.WriteDB)

	registry := adapter.NewRegistry(map[string]adapter.Adapter{
		splunk.IntegrationType: splunk.NewWithPolling(
			deps.Logger, cfg.Query.PollAttempts, cfg.Query.PollInterval,
		),
	})

	discoverySvc := service.NewDiscoveryService(
		integrationRepo, collectionRepo, fieldRepo, registry,
		deps.Logger.With("component", "discovery"),
	)
	integrationSvc := service.NewIntegrationService(
		integrationRepo, collectionRepo, fieldRepo, registry, discoverySvc,
		cfg.Discovery.Fields, cfg.Discovery.MaxCollections,
		deps.Logger.With("component", "integrations"),
	)
	schemaSvc := service.NewSchemaService(schemaRepo, deps.Logger.With("component", "schemas"))
	mappingSvc := service.NewMappingService(
		mappingRepo, schemaRepo, collectionRepo, fieldRepo,
		deps.Logger.With("component", "mappings"),
	)
	compiler := service.NewCompiler(
		schemaRepo, mappingRepo, registry,
		deps.Logger.With("component", "compiler"),
	)
	authSvc := service.NewAuthService(
		userRepo, cfg.JWTSecret, cfg.TokenTTL,
		deps.Logger.With("component", "auth"),
	)

	handler := api.NewHandler(
		authSvc, integrationSvc, schemaSvc, mappingSvc, compiler,
		deps.Logger.With("component", "api"),
	)

	// The rediscoverer is wired but not started; main() starts it only
	// when a schedule is configured.
	rediscoverer := service.NewRediscoverer(
		integrationRepo, discoverySvc,
		domain.DiscoveryOptions{
			DiscoverFields: cfg.Discovery.Fields,
			MaxCollections: cfg.Discovery.MaxCollections,
		},
		deps.Logger.With("component", "rediscovery"),
	)

	return &App{
		Services: Services{
			Auth:         authSvc,
			Integrations: integrationSvc,
			Discovery:    discoverySvc,
			Schemas:      schemaSvc,
			Mappings:     mappingSvc,
			Compiler:     compiler,
		},
		Handler:      handler,
		Rediscoverer: rediscoverer,
	}
}
