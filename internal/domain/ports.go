package domain

import "context"

// UserRepository provides CRUD operations for users.
type UserRepository interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
	TouchLastLogin(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) error
}

// IntegrationRepository provides CRUD operations for integrations.
type IntegrationRepository interface {
	Create(ctx context.Context, req CreateIntegrationRequest) (*Integration, error)
	GetByID(ctx context.Context, id string) (*Integration, error)
	List(ctx context.Context) ([]Integration, error)
	ListByUser(ctx context.Context, userID string) ([]Integration, error)
	ListActiveByUser(ctx context.Context, userID string) ([]Integration, error)
	ListByUserAndType(ctx context.Context, userID, integrationType string) ([]Integration, error)
	Update(ctx context.Context, id string, req UpdateIntegrationRequest) (*Integration, error)
	Delete(ctx context.Context, id string) error
}

// CollectionRepository provides operations for discovered collections.
// Creates are append-only: re-discovery inserts new rows, it does not upsert.
type CollectionRepository interface {
	Create(ctx context.Context, c *Collection) (*Collection, error)
	GetByID(ctx context.Context, id string) (*Collection, error)
	// ListByIntegration returns collections newest-first. limit <= 0 means
	// no limit.
	ListByIntegration(ctx context.Context, integrationID string, limit int) ([]Collection, error)
	Delete(ctx context.Context, id string) error
}

// PhysicalFieldRepository provides operations for discovered fields.
type PhysicalFieldRepository interface {
	Create(ctx context.Context, f *PhysicalField) (*PhysicalField, error)
	ListByCollection(ctx context.Context, collectionID string) ([]PhysicalField, error)
}

// LogicalSchemaRepository provides CRUD operations for logical schemas and
// their fields. Schema reads return fields eagerly loaded, name-ordered.
type LogicalSchemaRepository interface {
	Create(ctx context.Context, req CreateLogicalSchemaRequest) (*LogicalSchema, error)
	GetByID(ctx context.Context, id string) (*LogicalSchema, error)
	GetByName(ctx context.Context, name string) (*LogicalSchema, error)
	List(ctx context.Context) ([]LogicalSchema, error)
	Update(ctx context.Context, id string, req UpdateLogicalSchemaRequest) (*LogicalSchema, error)
	Delete(ctx context.Context, id string) error

	AddField(ctx context.Context, schemaID string, req CreateLogicalFieldRequest) (*LogicalField, error)
	UpdateField(ctx context.Context, fieldID string, req UpdateLogicalFieldRequest) (*LogicalField, error)
	DeleteField(ctx context.Context, fieldID string) error
}

// MappingRepository provides operations for schema-to-collection mappings
// and their field mappings.
type MappingRepository interface {
	// Create persists the mapping and its nested field mappings.
	Create(ctx context.Context, req CreateMappingRequest) (*MappingDetail, error)
	GetByID(ctx context.Context, id string) (*MappingDetail, error)
	// ListBySchema returns every mapping for a schema newest-first, with
	// collection, integration, physical fields, and field mappings loaded.
	ListBySchema(ctx context.Context, logicalSchemaID string) ([]MappingDetail, error)
	FindBySchemaAndCollection(ctx context.Context, logicalSchemaID, collectionID string) (*MappingDetail, error)
	// Delete removes the mapping; field mappings go with it (cascade).
	Delete(ctx context.Context, id string) error

	// ReplaceFieldMappings deletes every field mapping under the mapping
	// and inserts the new set. Replace-all, not a diff or upsert.
	ReplaceFieldMappings(ctx context.Context, mappingID string, fieldMappings []CreateFieldMappingRequest) (*MappingDetail, error)
	ListFieldMappings(ctx context.Context, mappingID string) ([]FieldMappingDetail, error)
}
