package service

import (
	"context"
	"log/slog"

	"schemacat/internal/domain"
)

// SchemaService manages logical schemas and their fields.
type SchemaService struct {
	schemas domain.LogicalSchemaRepository
	logger  *slog.Logger
}

// NewSchemaService creates a new SchemaService.
func NewSchemaService(schemas domain.LogicalSchemaRepository, logger *slog.Logger) *SchemaService {
	return &SchemaService{schemas: schemas, logger: logger}
}

// Create validates and persists a schema with its fields.
func (s *SchemaService) Create(ctx context.Context, req domain.CreateLogicalSchemaRequest) (*domain.LogicalSchema, error) {
	if req.Name == "" {
		return nil, domain.ErrValidation("schema name is required")
	}
	for _, f := range req.Fields {
		if f.Name == "" {
			return nil, domain.ErrValidation("schema field name is required")
		}
		if f.DataType != "" && !domain.ValidFieldDataType(f.DataType) {
			return nil, domain.ErrValidation("unknown data type %q for field %q", f.DataType, f.Name)
		}
	}

	created, err := s.schemas.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("logical schema created", "schema_id", created.ID, "name", created.Name, "fields", len(created.Fields))
	return created, nil
}

// Get returns a schema by ID with its fields.
func (s *SchemaService) Get(ctx context.Context, id string) (*domain.LogicalSchema, error) {
	return s.schemas.GetByID(ctx, id)
}

// GetByName returns a schema by its unique name.
func (s *SchemaService) GetByName(ctx context.Context, name string) (*domain.LogicalSchema, error) {
	return s.schemas.GetByName(ctx, name)
}

// List returns all schemas.
func (s *SchemaService) List(ctx context.Context) ([]domain.LogicalSchema, error) {
	return s.schemas.List(ctx)
}

// Update applies partial changes to a schema.
func (s *SchemaService) Update(ctx context.Context, id string, req domain.UpdateLogicalSchemaRequest) (*domain.LogicalSchema, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, domain.ErrValidation("schema name cannot be empty")
	}
	return s.schemas.Update(ctx, id, req)
}

// Delete removes a schema, its fields, and any mappings referencing it.
func (s *SchemaService) Delete(ctx context.Context, id string) error {
	return s.schemas.Delete(ctx, id)
}

// AddField appends one field to a schema.
func (s *SchemaService) AddField(ctx context.Context, schemaID string, req domain.CreateLogicalFieldRequest) (*domain.LogicalField, error) {
	if req.Name == "" {
		return nil, domain.ErrValidation("schema field name is required")
	}
	if req.DataType != "" && !domain.ValidFieldDataType(req.DataType) {
		return nil, domain.ErrValidation("unknown data type %q for field %q", req.DataType, req.Name)
	}
	if _, err := s.schemas.GetByID(ctx, schemaID); err != nil {
		return nil, err
	}
	return s.schemas.AddField(ctx, schemaID, req)
}

// UpdateField applies partial changes to one field.
func (s *SchemaService) UpdateField(ctx context.Context, fieldID string, req domain.UpdateLogicalFieldRequest) (*domain.LogicalField, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, domain.ErrValidation("schema field name cannot be empty")
	}
	if req.DataType != nil && !domain.ValidFieldDataType(*req.DataType) {
		return nil, domain.ErrValidation("unknown data type %q", *req.DataType)
	}
	return s.schemas.UpdateField(ctx, fieldID, req)
}

// DeleteField removes one field from its schema.
func (s *SchemaService) DeleteField(ctx context.Context, fieldID string) error {
	return s.schemas.DeleteField(ctx, fieldID)
}
