package service

import (
	"context"
	"log/slog"

	"schemacat/internal/adapter"
	"schemacat/internal/domain"
)

const defaultMaxCollections = 10

// DiscoveryService runs the two-phase discovery pipeline for one
// integration: collections first, then fields for the newest collections.
//
// The pipeline degrades rather than aborts: a row that fails to persist is
// logged and skipped, and the result's Success reflects only the collection
// discovery phase. Field discovery failures never fail the run.
type DiscoveryService struct {
	integrations domain.IntegrationRepository
	collections  domain.CollectionRepository
	fields       domain.PhysicalFieldRepository
	registry     *adapter.Registry
	logger       *slog.Logger
}

// NewDiscoveryService creates a new DiscoveryService.
func NewDiscoveryService(
	integrations domain.IntegrationRepository,
	collections domain.CollectionRepository,
	fields domain.PhysicalFieldRepository,
	registry *adapter.Registry,
	logger *slog.Logger,
) *DiscoveryService {
	return &DiscoveryService{
		integrations: integrations,
		collections:  collections,
		fields:       fields,
		registry:     registry,
		logger:       logger,
	}
}

// Run executes discovery for one integration. It returns a Go error only for
// infrastructure problems (unknown integration, no adapter); backend-side
// discovery failures are reported in-band via the result.
func (s *DiscoveryService) Run(ctx context.Context, integrationID string, opts domain.DiscoveryOptions) (*domain.DiscoveryResult, error) {
	in, err := s.integrations.GetByID(ctx, integrationID)
	if err != nil {
		return nil, err
	}
	a, err := s.registry.Lookup(in.Type)
	if err != nil {
		return nil, err
	}

	result := &domain.DiscoveryResult{}

	discovered := a.DiscoverCollections(ctx, in.Configuration)
	if !discovered.Success {
		s.logger.Warn("collection discovery failed",
			"integration_id", in.ID,
			"integration_type", in.Type,
			"error", discovered.Error)
		result.Error = discovered.Error
		return result, nil
	}
	result.Success = true

	for _, dc := range discovered.Collections {
		_, err := s.collections.Create(ctx, &domain.Collection{
			IntegrationID: in.ID,
			Name:          dc.Name,
			Metadata:      dc.Metadata,
		})
		if err != nil {
			s.logger.Warn("skipping collection that failed to persist",
				"integration_id", in.ID,
				"collection", dc.Name,
				"error", err)
			continue
		}
		result.CollectionsCreated++
	}

	if opts.DiscoverFields {
		result.FieldsCreated = s.discoverFields(ctx, in, a, opts.MaxCollections)
	}

	s.logger.Info("discovery complete",
		"integration_id", in.ID,
		"collections_created", result.CollectionsCreated,
		"fields_created", result.FieldsCreated)
	return result, nil
}

// discoverFields runs field discovery against the newest collections of the
// integration. Failures are logged per collection and skipped.
func (s *DiscoveryService) discoverFields(ctx context.Context, in *domain.Integration, a adapter.Adapter, maxCollections int) int {
	if maxCollections <= 0 {
		maxCollections = defaultMaxCollections
	}

	recent, err := s.collections.ListByIntegration(ctx, in.ID, maxCollections)
	if err != nil {
		s.logger.Warn("listing collections for field discovery failed",
			"integration_id", in.ID, "error", err)
		return 0
	}

	created := 0
	for _, c := range recent {
		fields := a.DiscoverFields(ctx, in.Configuration, c.Name)
		if !fields.Success {
			s.logger.Warn("field discovery failed for collection",
				"integration_id", in.ID,
				"collection", c.Name,
				"error", fields.Error)
			continue
		}
		for _, df := range fields.Fields {
			_, err := s.fields.Create(ctx, &domain.PhysicalField{
				CollectionID: c.ID,
				Name:         df.Name,
				DataType:     df.DataType,
				Metadata:     df.Metadata,
			})
			if err != nil {
				s.logger.Warn("skipping field that failed to persist",
					"collection", c.Name,
					"field", df.Name,
					"error", err)
				continue
			}
			created++
		}
	}
	return created
}
