package service

import (
	"context"
	"log/slog"

	"schemacat/internal/adapter"
	"schemacat/internal/domain"
)

// IntegrationService manages datasource integrations. Creation is gated on a
// live connection check, and a successful create immediately runs the
// discovery pipeline so the catalog is usable right away.
type IntegrationService struct {
	integrations domain.IntegrationRepository
	collections  domain.CollectionRepository
	fields       domain.PhysicalFieldRepository
	registry     *adapter.Registry
	discovery    *DiscoveryService
	logger       *slog.Logger

	// discoverFieldsOnCreate toggles the field phase of the initial
	// discovery run.
	discoverFieldsOnCreate bool
	maxCollections         int
}

// NewIntegrationService creates a new IntegrationService.
func NewIntegrationService(
	integrations domain.IntegrationRepository,
	collections domain.CollectionRepository,
	fields domain.PhysicalFieldRepository,
	registry *adapter.Registry,
	discovery *DiscoveryService,
	discoverFieldsOnCreate bool,
	maxCollections int,
	logger *slog.Logger,
) *IntegrationService {
	return &IntegrationService{
		integrations:           integrations,
		collections:            collections,
		fields:                 fields,
		registry:               registry,
		discovery:              discovery,
		logger:                 logger,
		discoverFieldsOnCreate: discoverFieldsOnCreate,
		maxCollections:         maxCollections,
	}
}

// Create validates the configuration, proves the connection works, persists
// the integration, and runs initial discovery. The discovery result rides
// along with the created integration; a discovery failure does not undo the
// create.
func (s *IntegrationService) Create(ctx context.Context, req domain.CreateIntegrationRequest) (*domain.Integration, *domain.DiscoveryResult, error) {
	if req.Name == "" {
		return nil, nil, domain.ErrValidation("integration name is required")
	}
	def, err := DefinitionFor(req.Type)
	if err != nil {
		return nil, nil, err
	}
	if !def.SupportsStrategy(req.Strategy) {
		return nil, nil, domain.ErrValidation("integration type %q does not support strategy %q", req.Type, req.Strategy)
	}
	if err := def.ValidateConfig(req.Configuration); err != nil {
		return nil, nil, err
	}

	a, err := s.registry.Lookup(req.Type)
	if err != nil {
		return nil, nil, err
	}
	if !a.ValidateConnection(ctx, req.Configuration) {
		return nil, nil, domain.ErrValidation("connection validation failed for %q: check host and credentials", req.Type)
	}

	in, err := s.integrations.Create(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("integration created", "integration_id", in.ID, "type", in.Type, "user_id", in.UserID)

	result, err := s.discovery.Run(ctx, in.ID, domain.DiscoveryOptions{
		DiscoverFields: s.discoverFieldsOnCreate,
		MaxCollections: s.maxCollections,
	})
	if err != nil {
		s.logger.Warn("initial discovery errored", "integration_id", in.ID, "error", err)
		result = &domain.DiscoveryResult{Error: err.Error()}
	}
	return in, result, nil
}

// Get returns an integration the caller owns.
func (s *IntegrationService) Get(ctx context.Context, userID, id string) (*domain.Integration, error) {
	in, err := s.integrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.UserID != userID {
		return nil, domain.ErrAccessDenied("integration %s does not belong to the caller", id)
	}
	return in, nil
}

// List returns the caller's integrations.
func (s *IntegrationService) List(ctx context.Context, userID string) ([]domain.Integration, error) {
	return s.integrations.ListByUser(ctx, userID)
}

// Update applies partial changes to an owned integration. A configuration
// change must pass connection validation before it is stored.
func (s *IntegrationService) Update(ctx context.Context, userID, id string, req domain.UpdateIntegrationRequest) (*domain.Integration, error) {
	in, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Configuration != nil {
		def, err := DefinitionFor(in.Type)
		if err != nil {
			return nil, err
		}
		if err := def.ValidateConfig(req.Configuration); err != nil {
			return nil, err
		}
		a, err := s.registry.Lookup(in.Type)
		if err != nil {
			return nil, err
		}
		if !a.ValidateConnection(ctx, req.Configuration) {
			return nil, domain.ErrValidation("connection validation failed for new configuration")
		}
	}

	return s.integrations.Update(ctx, id, req)
}

// Delete removes an owned integration. Discovered collections and fields go
// with it.
func (s *IntegrationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.integrations.Delete(ctx, id)
}

// TestConnection re-runs connection validation for an owned integration.
func (s *IntegrationService) TestConnection(ctx context.Context, userID, id string) (bool, error) {
	in, err := s.Get(ctx, userID, id)
	if err != nil {
		return false, err
	}
	a, err := s.registry.Lookup(in.Type)
	if err != nil {
		return false, err
	}
	return a.ValidateConnection(ctx, in.Configuration), nil
}

// Discover runs the discovery pipeline on demand for an owned integration.
func (s *IntegrationService) Discover(ctx context.Context, userID, id string, opts domain.DiscoveryOptions) (*domain.DiscoveryResult, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.discovery.Run(ctx, id, opts)
}

// ToggleActive flips the active flag on an owned integration. Inactive
// integrations are skipped by scheduled rediscovery.
func (s *IntegrationService) ToggleActive(ctx context.Context, userID, id string) (*domain.Integration, error) {
	in, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	active := !in.IsActive
	return s.integrations.Update(ctx, id, domain.UpdateIntegrationRequest{IsActive: &active})
}

// UpdateMetadata replaces the freeform metadata blob on an owned integration.
func (s *IntegrationService) UpdateMetadata(ctx context.Context, userID, id string, meta domain.Metadata) (*domain.Integration, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.integrations.Update(ctx, id, domain.UpdateIntegrationRequest{Metadata: meta})
}

// Collections lists discovered collections for an owned integration,
// newest-first.
func (s *IntegrationService) Collections(ctx context.Context, userID, id string) ([]domain.Collection, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.collections.ListByIntegration(ctx, id, 0)
}

// CollectionFields lists the physical fields discovered for one collection,
// after checking the caller owns the collection's integration.
func (s *IntegrationService) CollectionFields(ctx context.Context, userID, collectionID string) ([]domain.PhysicalField, error) {
	c, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, c.IntegrationID); err != nil {
		return nil, err
	}
	return s.fields.ListByCollection(ctx, collectionID)
}
