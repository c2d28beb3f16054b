// Package adapter defines the capability contract every datasource
// integration implements, and the registry that dispatches on integration
// type. Adapters are stateless: connection configuration is passed on every
// call, so one shared instance per type serves all integrations safely.
package adapter

import (
	"context"

	"schemacat/internal/domain"
)

// Adapter is the per-vendor capability set: connection validation, schema
// discovery, query translation, and query execution.
//
// Failure conventions are part of the contract and must not vary per
// adapter: discovery reports failures in-band via the result's Success and
// Error fields and never returns a Go error; ValidateConnection returns
// false for expected failure modes (unreachable host, bad credentials);
// Query returns an error when the backend's job does not complete within
// the poll budget, because a caller awaiting results must be told.
type Adapter interface {
	// ValidateConnection performs a lightweight round-trip to the backend.
	ValidateConnection(ctx context.Context, cfg domain.DatasourceConfig) bool

	// DiscoverCollections lists the backend's addressable collections.
	// Each entry carries a stable name that DiscoverFields must accept
	// unchanged.
	DiscoverCollections(ctx context.Context, cfg domain.DatasourceConfig) domain.CollectionDiscovery

	// DiscoverFields lists the fields of one collection, identified by the
	// exact name emitted by DiscoverCollections.
	DiscoverFields(ctx context.Context, cfg domain.DatasourceConfig, collectionName string) domain.FieldDiscovery

	// ConvertQueryAST renders the AST as a vendor-native query string using
	// the logical-to-physical field name table. Pure and deterministic: no
	// I/O, no error path. Unmapped fields fall back to the logical name;
	// unknown operators fall back to the equality rendering.
	ConvertQueryAST(ast *domain.QueryAST, fieldMappings map[string]string) string

	// Query executes a native query against one collection, polling an
	// asynchronous job if the vendor requires it.
	Query(ctx context.Context, cfg domain.DatasourceConfig, collectionName string, params map[string]any) ([]map[string]any, error)
}

// Registry maps an integration-type tag to its shared adapter instance.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry over the given adapters.
func NewRegistry(adapters map[string]Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for typ, a := range adapters {
		r.adapters[typ] = a
	}
	return r
}

// Lookup returns the adapter for an integration type. An unknown type is a
// caller error, never a silent default.
func (r *Registry) Lookup(integrationType string) (Adapter, error) {
	a, ok := r.adapters[integrationType]
	if !ok {
		return nil, domain.ErrValidation("no adapter registered for integration type: %q", integrationType)
	}
	return a, nil
}

// Types returns the registered integration-type tags.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.adapters))
	for typ := range r.adapters {
		types = append(types, typ)
	}
	return types
}
