package domain

// DiscoveredCollection is one collection reported by an adapter before it is
// persisted. Metadata reproduces vendor-specific facts (event counts, sizes)
// used downstream for re-identification.
type DiscoveredCollection struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// DiscoveredField is one field reported by an adapter for a collection.
type DiscoveredField struct {
	Name     string        `json:"name"`
	DataType FieldDataType `json:"dataType"`
	Metadata Metadata      `json:"metadata,omitempty"`
}

// CollectionDiscovery is the in-band result of a collection discovery call.
// Failures are reported via Success=false and Error, never as a Go error,
// so batch callers can continue past individual bad sources.
type CollectionDiscovery struct {
	Collections []DiscoveredCollection `json:"collections"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
}

// FieldDiscovery is the in-band result of a field discovery call, with the
// same failure contract as CollectionDiscovery.
type FieldDiscovery struct {
	Fields  []DiscoveredField `json:"fields"`
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
}

// DiscoveryResult is the aggregate outcome of running the discovery
// pipeline for one integration. Counts reflect rows actually persisted, not
// rows reported by the adapter; Success is governed solely by the
// collection phase.
type DiscoveryResult struct {
	Success            bool   `json:"success"`
	CollectionsCreated int    `json:"collectionsCreated"`
	FieldsCreated      int    `json:"fieldsCreated"`
	Error              string `json:"error,omitempty"`
}

// DiscoveryOptions controls the optional field-discovery phase.
type DiscoveryOptions struct {
	// DiscoverFields enables the per-collection field discovery phase,
	// which can be slow against large backends.
	DiscoverFields bool `json:"discoverFields"`
	// MaxCollections caps how many most-recently-created collections get
	// field discovery. Zero means the default of 10.
	MaxCollections int `json:"maxCollections"`
}
