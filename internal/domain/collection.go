package domain

import "time"

// FieldDataType is the inferred data type of a physical or logical field.
type FieldDataType string

const (
	FieldTypeString  FieldDataType = "STRING"
	FieldTypeNumber  FieldDataType = "NUMBER"
	FieldTypeBoolean FieldDataType = "BOOLEAN"
	FieldTypeDate    FieldDataType = "DATE"
	FieldTypeJSON    FieldDataType = "JSON"
)

// ValidFieldDataType reports whether t is a declared data type.
func ValidFieldDataType(t FieldDataType) bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeDate, FieldTypeJSON:
		return true
	}
	return false
}

// Collection is a discovered addressable grouping of events within an
// integration (e.g. a Splunk index+sourcetype combination). The Name is
// adapter-defined and must parse back into adapter-native coordinates.
type Collection struct {
	ID            string    `json:"id"`
	IntegrationID string    `json:"integrationId"`
	Name          string    `json:"name"`
	Metadata      Metadata  `json:"metadata,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PhysicalField is a field observed within a collection during discovery.
type PhysicalField struct {
	ID           string        `json:"id"`
	CollectionID string        `json:"collectionId"`
	Name         string        `json:"name"`
	DataType     FieldDataType `json:"dataType"`
	Metadata     Metadata      `json:"metadata,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// CollectionDetail is a collection with its owning integration and
// discovered physical fields eagerly loaded.
type CollectionDetail struct {
	Collection
	Integration    Integration     `json:"integration"`
	PhysicalFields []PhysicalField `json:"physicalFields"`
}
