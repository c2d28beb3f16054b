package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemacat/internal/domain"
)

type stubAdapter struct{}

func (stubAdapter) ValidateConnection(context.Context, domain.DatasourceConfig) bool { return true }
func (stubAdapter) DiscoverCollections(context.Context, domain.DatasourceConfig) domain.CollectionDiscovery {
	return domain.CollectionDiscovery{Success: true}
}
func (stubAdapter) DiscoverFields(context.Context, domain.DatasourceConfig, string) domain.FieldDiscovery {
	return domain.FieldDiscovery{Success: true}
}
func (stubAdapter) ConvertQueryAST(*domain.QueryAST, map[string]string) string { return "stub" }
func (stubAdapter) Query(context.Context, domain.DatasourceConfig, string, map[string]any) ([]map[string]any, error) {
	return nil, nil
}

var _ Adapter = stubAdapter{}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(map[string]Adapter{"splunk": stubAdapter{}})

	a, err := reg.Lookup("splunk")
	require.NoError(t, err)
	assert.NotNil(t, a)

	// Unknown tags are a caller error, not a silent default.
	_, err = reg.Lookup("datadog")
	require.Error(t, err)
	assert.IsType(t, &domain.ValidationError{}, err)

	assert.ElementsMatch(t, []string{"splunk"}, reg.Types())
}
