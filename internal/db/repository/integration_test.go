package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemacat/internal/domain"
)

func TestIntegrationRepo_CreateAndGet(t *testing.T) {
	conn := openTestDB(t)
	repo := NewIntegrationRepo(conn)
	ctx := context.Background()

	u := seedUser(t, conn, "owner@example.com")

	created, err := repo.Create(ctx, domain.CreateIntegrationRequest{
		UserID:   u.ID,
		Name:     "dev splunk",
		Type:     "splunk",
		Strategy: domain.StrategyAPIKey,
		Configuration: domain.DatasourceConfig{
			"host":    "https://splunk.dev",
			"api-key": "k",
		},
		Metadata: domain.Metadata{"env": "dev"},
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "splunk", got.Type)
	assert.Equal(t, "https://splunk.dev", got.Configuration["host"])
	assert.Equal(t, "dev", got.Metadata["env"])
}

func TestIntegrationRepo_CreateUnknownUserFails(t *testing.T) {
	conn := openTestDB(t)
	repo := NewIntegrationRepo(conn)

	_, err := repo.Create(context.Background(), domain.CreateIntegrationRequest{
		UserID:        "no-such-user",
		Name:          "x",
		Type:          "splunk",
		Strategy:      domain.StrategyAPIKey,
		Configuration: domain.DatasourceConfig{},
	})
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestIntegrationRepo_ListFilters(t *testing.T) {
	conn := openTestDB(t)
	repo := NewIntegrationRepo(conn)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice@example.com")
	bob := seedUser(t, conn, "bob@example.com")

	aliceSplunk := seedIntegration(t, conn, alice.ID)
	seedIntegration(t, conn, bob.ID)

	other, err := repo.Create(ctx, domain.CreateIntegrationRequest{
		UserID:        alice.ID,
		Name:          "warehouse",
		Type:          "postgres",
		Strategy:      domain.StrategyAPIKey,
		Configuration: domain.DatasourceConfig{},
	})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byType, err := repo.ListByUserAndType(ctx, alice.ID, "splunk")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, aliceSplunk.ID, byType[0].ID)

	inactive := false
	_, err = repo.Update(ctx, other.ID, domain.UpdateIntegrationRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err := repo.ListActiveByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, aliceSplunk.ID, active[0].ID)
}

func TestIntegrationRepo_UpdateReplacesConfiguration(t *testing.T) {
	conn := openTestDB(t)
	repo := NewIntegrationRepo(conn)
	ctx := context.Background()

	u := seedUser(t, conn, "cfg@example.com")
	in := seedIntegration(t, conn, u.ID)

	updated, err := repo.Update(ctx, in.ID, domain.UpdateIntegrationRequest{
		Configuration: domain.DatasourceConfig{"host": "https://new-host"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://new-host", updated.Configuration["host"])
	assert.NotContains(t, updated.Configuration, "api-key", "configuration is replaced, not merged")
	assert.Equal(t, in.Name, updated.Name)
}

func TestIntegrationRepo_DeleteCascadesCollections(t *testing.T) {
	conn := openTestDB(t)
	repo := NewIntegrationRepo(conn)
	ctx := context.Background()

	u := seedUser(t, conn, "cascade@example.com")
	in := seedIntegration(t, conn, u.ID)
	c := seedCollection(t, conn, in.ID, "index:main, sourcetype:syslog")
	seedPhysicalField(t, conn, c.ID, "host")

	require.NoError(t, repo.Delete(ctx, in.ID))

	assert.Zero(t, countRows(t, conn, "collections", "integration_id", in.ID))
	assert.Zero(t, countRows(t, conn, "physical_fields", "collection_id", c.ID))
}
