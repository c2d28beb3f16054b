package service

import (
	"context"
	"errors"
	"log/slog"

	"schemacat/internal/domain"
)

// MappingService manages schema-to-collection mappings and their field
// mappings. It enforces referential validity that the store does not: the
// schema and collection must exist, every logical field must belong to the
// schema, every physical field to the collection, and confidence scores must
// lie in [0,1].
type MappingService struct {
	mappings    domain.MappingRepository
	schemas     domain.LogicalSchemaRepository
	collections domain.CollectionRepository
	fields      domain.PhysicalFieldRepository
	logger      *slog.Logger
}

// NewMappingService creates a new MappingService.
func NewMappingService(
	mappings domain.MappingRepository,
	schemas domain.LogicalSchemaRepository,
	collections domain.CollectionRepository,
	fields domain.PhysicalFieldRepository,
	logger *slog.Logger,
) *MappingService {
	return &MappingService{
		mappings:    mappings,
		schemas:     schemas,
		collections: collections,
		fields:      fields,
		logger:      logger,
	}
}

// Create validates and persists a mapping with its field mappings.
func (s *MappingService) Create(ctx context.Context, req domain.CreateMappingRequest) (*domain.MappingDetail, error) {
	schema, err := s.schemas.GetByID(ctx, req.LogicalSchemaID)
	if err != nil {
		return nil, err
	}
	collection, err := s.collections.GetByID(ctx, req.CollectionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateFieldMappings(ctx, schema, collection.ID, req.FieldMappings); err != nil {
		return nil, err
	}

	detail, err := s.mappings.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("mapping created",
		"mapping_id", detail.ID,
		"schema_id", req.LogicalSchemaID,
		"collection_id", req.CollectionID,
		"field_mappings", len(detail.FieldMappings))
	return detail, nil
}

// Get returns a mapping with everything loaded.
func (s *MappingService) Get(ctx context.Context, id string) (*domain.MappingDetail, error) {
	return s.mappings.GetByID(ctx, id)
}

// ListBySchema returns all mappings of a schema.
func (s *MappingService) ListBySchema(ctx context.Context, schemaID string) ([]domain.MappingDetail, error) {
	if _, err := s.schemas.GetByID(ctx, schemaID); err != nil {
		return nil, err
	}
	return s.mappings.ListBySchema(ctx, schemaID)
}

// Delete removes a mapping and, by cascade, its field mappings.
func (s *MappingService) Delete(ctx context.Context, id string) error {
	return s.mappings.Delete(ctx, id)
}

// ReplaceFieldMappings swaps the complete field mapping set of a mapping.
// The new set fully replaces the old one; an empty set clears it.
func (s *MappingService) ReplaceFieldMappings(ctx context.Context, mappingID string, fieldMappings []domain.CreateFieldMappingRequest) (*domain.MappingDetail, error) {
	current, err := s.mappings.GetByID(ctx, mappingID)
	if err != nil {
		return nil, err
	}
	schema, err := s.schemas.GetByID(ctx, current.LogicalSchemaID)
	if err != nil {
		return nil, err
	}
	if err := s.validateFieldMappings(ctx, schema, current.CollectionID, fieldMappings); err != nil {
		return nil, err
	}
	return s.mappings.ReplaceFieldMappings(ctx, mappingID, fieldMappings)
}

// FieldMappings lists the field mappings of a mapping with both endpoints
// loaded.
func (s *MappingService) FieldMappings(ctx context.Context, mappingID string) ([]domain.FieldMappingDetail, error) {
	if _, err := s.mappings.GetByID(ctx, mappingID); err != nil {
		return nil, err
	}
	return s.mappings.ListFieldMappings(ctx, mappingID)
}

// FieldMappingsFor looks up the mapping between a schema and a collection and
// returns its field mappings. No mapping at all is not an error; the result
// is just empty.
func (s *MappingService) FieldMappingsFor(ctx context.Context, schemaID, collectionID string) ([]domain.FieldMappingDetail, error) {
	if _, err := s.schemas.GetByID(ctx, schemaID); err != nil {
		return nil, err
	}
	m, err := s.mappings.FindBySchemaAndCollection(ctx, schemaID, collectionID)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return []domain.FieldMappingDetail{}, nil
		}
		return nil, err
	}
	return s.mappings.ListFieldMappings(ctx, m.ID)
}

func (s *MappingService) validateFieldMappings(ctx context.Context, schema *domain.LogicalSchema, collectionID string, reqs []domain.CreateFieldMappingRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	logical := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		logical[f.ID] = true
	}
	physicalFields, err := s.fields.ListByCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	physical := make(map[string]bool, len(physicalFields))
	for _, f := range physicalFields {
		physical[f.ID] = true
	}

	for _, fm := range reqs {
		if !logical[fm.LogicalFieldID] {
			return domain.ErrValidation("logical field %s does not belong to schema %s", fm.LogicalFieldID, schema.ID)
		}
		if !physical[fm.PhysicalFieldID] {
			return domain.ErrValidation("physical field %s does not belong to collection %s", fm.PhysicalFieldID, collectionID)
		}
		if fm.Confidence != nil && (*fm.Confidence < 0 || *fm.Confidence > 1) {
			return domain.ErrValidation("confidence must be between 0 and 1, got %v", *fm.Confidence)
		}
	}
	return nil
}
