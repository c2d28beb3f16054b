package domain

import "time"

// LogicalSchema is a user-authored, vendor-neutral schema. Names are unique
// across the catalog.
type LogicalSchema struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Version     string         `json:"version,omitempty"`
	Metadata    Metadata       `json:"metadata,omitempty"`
	Fields      []LogicalField `json:"logicalFields,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// LogicalField is one field of a logical schema.
type LogicalField struct {
	ID          string        `json:"id"`
	SchemaID    string        `json:"schemaId"`
	Name        string        `json:"name"`
	DataType    FieldDataType `json:"dataType"`
	Description string        `json:"description,omitempty"`
	IsRequired  bool          `json:"isRequired"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// CreateLogicalSchemaRequest holds input for creating a schema with its fields.
type CreateLogicalSchemaRequest struct {
	Name        string
	Description string
	Version     string
	Metadata    Metadata
	Fields      []CreateLogicalFieldRequest
}

// CreateLogicalFieldRequest holds input for one field of a schema.
type CreateLogicalFieldRequest struct {
	Name        string
	DataType    FieldDataType
	Description string
	IsRequired  bool
}

// UpdateLogicalSchemaRequest holds optional fields for updating a schema.
// Nil fields are left unchanged.
type UpdateLogicalSchemaRequest struct {
	Name        *string
	Description *string
	Version     *string
	Metadata    Metadata
}

// UpdateLogicalFieldRequest holds optional fields for updating a field.
type UpdateLogicalFieldRequest struct {
	Name        *string
	DataType    *FieldDataType
	Description *string
	IsRequired  *bool
}
