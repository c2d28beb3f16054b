package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemacat/internal/adapter"
	"schemacat/internal/domain"
)

func TestRediscovery_SweepsActiveIntegrationsOnly(t *testing.T) {
	var discoveredFor []string
	a := &mockAdapter{
		collectFn: func(ctx context.Context, cfg domain.DatasourceConfig) domain.CollectionDiscovery {
			return domain.CollectionDiscovery{Success: true}
		},
	}

	integrations := &mockIntegrationRepo{
		listFn: func(ctx context.Context) ([]domain.Integration, error) {
			return []domain.Integration{
				{ID: "int-active", Type: "splunk", IsActive: true},
				{ID: "int-disabled", Type: "splunk", IsActive: false},
				{ID: "int-active-2", Type: "splunk", IsActive: true},
			}, nil
		},
		getByIDFn: func(ctx context.Context, id string) (*domain.Integration, error) {
			discoveredFor = append(discoveredFor, id)
			return &domain.Integration{ID: id, Type: "splunk", IsActive: true}, nil
		},
	}
	collections := &mockCollectionRepo{
		createFn: func(ctx context.Context, c *domain.Collection) (*domain.Collection, error) { return c, nil },
	}
	registry := adapter.NewRegistry(map[string]adapter.Adapter{"splunk": a})
	discovery := NewDiscoveryService(integrations, collections, &mockFieldRepo{}, registry, discardLogger())

	r := NewRediscoverer(integrations, discovery, domain.DiscoveryOptions{}, discardLogger())
	r.RunAll(context.Background())

	assert.Equal(t, []string{"int-active", "int-active-2"}, discoveredFor)
}

func TestRediscovery_InvalidScheduleIsRejected(t *testing.T) {
	r := NewRediscoverer(&mockIntegrationRepo{}, nil, domain.DiscoveryOptions{}, discardLogger())

	err := r.Start("not a cron spec")
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestDefinitions(t *testing.T) {
	def, err := DefinitionFor("splunk")
	require.NoError(t, err)
	assert.True(t, def.SupportsStrategy(domain.StrategyAPIKey))
	assert.False(t, def.SupportsStrategy(domain.StrategyOAuth))

	require.Error(t, def.ValidateConfig(domain.DatasourceConfig{"host": "h"}))
	require.NoError(t, def.ValidateConfig(domain.DatasourceConfig{"host": "h", "api-key": "k"}))

	_, err = DefinitionFor("mystery")
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)

	assert.NotEmpty(t, Definitions())
}
