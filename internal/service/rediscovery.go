package service

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"schemacat/internal/domain"
)

// Rediscoverer periodically re-runs the discovery pipeline for every active
// integration. Re-discovery is append-only: each run inserts fresh rows, the
// newest of which represent current backend state.
type Rediscoverer struct {
	cron         *cron.Cron
	integrations domain.IntegrationRepository
	discovery    *DiscoveryService
	opts         domain.DiscoveryOptions
	logger       *slog.Logger
}

// NewRediscoverer creates a Rediscoverer. The cron is not started yet.
func NewRediscoverer(
	integrations domain.IntegrationRepository,
	discovery *DiscoveryService,
	opts domain.DiscoveryOptions,
	logger *slog.Logger,
) *Rediscoverer {
	return &Rediscoverer{
		cron:         cron.New(),
		integrations: integrations,
		discovery:    discovery,
		opts:         opts,
		logger:       logger,
	}
}

// Start registers the job under the given cron schedule and starts the
// scheduler. An invalid spec is a configuration error.
func (r *Rediscoverer) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.runAll); err != nil {
		return domain.ErrValidation("invalid rediscovery schedule %q: %v", schedule, err)
	}
	r.cron.Start()
	r.logger.Info("rediscovery scheduler started", "schedule", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *Rediscoverer) Stop() {
	<-r.cron.Stop().Done()
}

// RunAll runs discovery for every integration once. A failure for one
// integration is logged and does not stop the sweep.
func (r *Rediscoverer) RunAll(ctx context.Context) {
	integrations, err := r.integrations.List(ctx)
	if err != nil {
		r.logger.Error("rediscovery sweep: listing integrations failed", "error", err)
		return
	}

	for _, in := range integrations {
		if !in.IsActive {
			continue
		}
		result, err := r.discovery.Run(ctx, in.ID, r.opts)
		if err != nil {
			r.logger.Warn("rediscovery failed", "integration_id", in.ID, "error", err)
			continue
		}
		r.logger.Info("rediscovery run finished",
			"integration_id", in.ID,
			"success", result.Success,
			"collections_created", result.CollectionsCreated,
			"fields_created", result.FieldsCreated)
	}
}

func (r *Rediscoverer) runAll() {
	r.RunAll(context.Background())
}
