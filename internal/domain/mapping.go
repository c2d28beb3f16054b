package domain

import "time"

// SchemaToCollectionMapping binds one logical schema to one discovered
// collection. Deleting it cascades to its field mappings.
type SchemaToCollectionMapping struct {
	ID              string    `json:"id"`
	LogicalSchemaID string    `json:"logicalSchemaId"`
	CollectionID    string    `json:"collectionId"`
	Metadata        Metadata  `json:"metadata,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FieldMapping binds one logical field to one physical field within the
// context of a schema-to-collection mapping. Confidence, when set, is
// bounded to [0,1]. Uniqueness of (mapping, logical field) is a caller
// responsibility, not a store constraint.
type FieldMapping struct {
	ID              string    `json:"id"`
	MappingID       string    `json:"schemaToCollectionId"`
	LogicalFieldID  string    `json:"logicalFieldId"`
	PhysicalFieldID string    `json:"physicalFieldId"`
	Transformation  string    `json:"transformation,omitempty"`
	Confidence      *float64  `json:"confidence,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FieldMappingDetail is a field mapping with both of its endpoints loaded.
type FieldMappingDetail struct {
	FieldMapping
	LogicalField  LogicalField  `json:"logicalField"`
	PhysicalField PhysicalField `json:"physicalField"`
}

// MappingDetail is a schema-to-collection mapping with its collection
// (integration and physical fields included) and field mappings eagerly
// loaded. This is the shape the query compiler consumes.
type MappingDetail struct {
	SchemaToCollectionMapping
	Collection    CollectionDetail     `json:"collection"`
	FieldMappings []FieldMappingDetail `json:"fieldMappings"`
	LogicalSchema *LogicalSchema       `json:"logicalSchema,omitempty"`
}

// FieldNameTable builds the logical-to-physical field name table used for
// query translation. Names, not IDs: adapters operate on names.
func (m *MappingDetail) FieldNameTable() map[string]string {
	table := make(map[string]string, len(m.FieldMappings))
	for _, fm := range m.FieldMappings {
		table[fm.LogicalField.Name] = fm.PhysicalField.Name
	}
	return table
}

// CreateFieldMappingRequest holds input for one field mapping.
type CreateFieldMappingRequest struct {
	LogicalFieldID  string   `json:"logicalFieldId"`
	PhysicalFieldID string   `json:"physicalFieldId"`
	Transformation  string   `json:"transformation,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
}

// CreateMappingRequest holds input for creating a schema-to-collection
// mapping together with its field mappings.
type CreateMappingRequest struct {
	LogicalSchemaID string                      `json:"logicalSchemaId"`
	CollectionID    string                      `json:"collectionId"`
	FieldMappings   []CreateFieldMappingRequest `json:"fieldMappings"`
	Metadata        Metadata                    `json:"metadata,omitempty"`
}
