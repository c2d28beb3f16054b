package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemacat/internal/domain"
)

type mappingFixture struct {
	integration *domain.Integration
	collection  *domain.Collection
	schema      *domain.LogicalSchema
	physical    map[string]*domain.PhysicalField
}

func setupMapping(t *testing.T) (ctx context.Context, repo *MappingRepo, fx mappingFixture, conn *sql.DB) {
	t.Helper()
	c := openTestDB(t)
	ctx = context.Background()
	repo = NewMappingRepo(c)

	u := seedUser(t, c, "mapper@example.com")
	fx.integration = seedIntegration(t, c, u.ID)
	fx.collection = seedCollection(t, c, fx.integration.ID, "index:main, sourcetype:sysmon")
	fx.schema = seedSchema(t, c, "process_events", "user", "image")
	fx.physical = map[string]*domain.PhysicalField{
		"User":  seedPhysicalField(t, c, fx.collection.ID, "User"),
		"Image": seedPhysicalField(t, c, fx.collection.ID, "Image"),
	}
	return ctx, repo, fx, c
}

func fieldByName(t *testing.T, s *domain.LogicalSchema, name string) domain.LogicalField {
	t.Helper()
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("schema %s has no field %q", s.Name, name)
	return domain.LogicalField{}
}

func TestMappingRepo_CreateWithFieldMappings(t *testing.T) {
	ctx, repo, fx, _ := setupMapping(t)

	confidence := 0.9
	detail, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    fx.collection.ID,
		FieldMappings: []domain.CreateFieldMappingRequest{
			{
				LogicalFieldID:  fieldByName(t, fx.schema, "user").ID,
				PhysicalFieldID: fx.physical["User"].ID,
				Confidence:      &confidence,
			},
			{
				LogicalFieldID:  fieldByName(t, fx.schema, "image").ID,
				PhysicalFieldID: fx.physical["Image"].ID,
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, fx.schema.ID, detail.LogicalSchemaID)
	assert.Equal(t, fx.collection.ID, detail.Collection.ID)
	assert.Equal(t, fx.integration.ID, detail.Collection.Integration.ID)
	assert.Len(t, detail.Collection.PhysicalFields, 2)
	require.Len(t, detail.FieldMappings, 2)

	table := detail.FieldNameTable()
	assert.Equal(t, "User", table["user"])
	assert.Equal(t, "Image", table["image"])
}

func TestMappingRepo_CreateUnknownCollectionFails(t *testing.T) {
	ctx, repo, fx, _ := setupMapping(t)

	_, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    "no-such-collection",
	})
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestMappingRepo_FindBySchemaAndCollection(t *testing.T) {
	ctx, repo, fx, _ := setupMapping(t)

	created, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    fx.collection.ID,
	})
	require.NoError(t, err)

	found, err := repo.FindBySchemaAndCollection(ctx, fx.schema.ID, fx.collection.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindBySchemaAndCollection(ctx, fx.schema.ID, "other-collection")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMappingRepo_ReplaceFieldMappingsIsReplaceAll(t *testing.T) {
	ctx, repo, fx, _ := setupMapping(t)

	userField := fieldByName(t, fx.schema, "user")
	imageField := fieldByName(t, fx.schema, "image")

	created, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    fx.collection.ID,
		FieldMappings: []domain.CreateFieldMappingRequest{
			{LogicalFieldID: userField.ID, PhysicalFieldID: fx.physical["User"].ID},
			{LogicalFieldID: imageField.ID, PhysicalFieldID: fx.physical["Image"].ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.FieldMappings, 2)

	// A replacement containing one entry wipes the other, it is not a merge.
	replaced, err := repo.ReplaceFieldMappings(ctx, created.ID, []domain.CreateFieldMappingRequest{
		{LogicalFieldID: imageField.ID, PhysicalFieldID: fx.physical["Image"].ID},
	})
	require.NoError(t, err)
	require.Len(t, replaced.FieldMappings, 1)
	assert.Equal(t, imageField.ID, replaced.FieldMappings[0].LogicalFieldID)

	// An empty replacement clears everything.
	cleared, err := repo.ReplaceFieldMappings(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, cleared.FieldMappings)
}

func TestMappingRepo_ReplaceFieldMappingsMissingMapping(t *testing.T) {
	ctx, repo, _, _ := setupMapping(t)

	_, err := repo.ReplaceFieldMappings(ctx, "no-such-mapping", nil)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMappingRepo_DeleteCascadesFieldMappings(t *testing.T) {
	ctx, repo, fx, conn := setupMapping(t)

	created, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    fx.collection.ID,
		FieldMappings: []domain.CreateFieldMappingRequest{
			{LogicalFieldID: fieldByName(t, fx.schema, "user").ID, PhysicalFieldID: fx.physical["User"].ID},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, conn, "field_mappings", "mapping_id", created.ID))

	require.NoError(t, repo.Delete(ctx, created.ID))

	assert.Zero(t, countRows(t, conn, "field_mappings", "mapping_id", created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMappingRepo_DuplicateLogicalFieldIsAccepted(t *testing.T) {
	ctx, repo, fx, _ := setupMapping(t)

	userField := fieldByName(t, fx.schema, "user")

	// The store does not police one-physical-per-logical; that is the
	// mapping service's job.
	detail, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    fx.collection.ID,
		FieldMappings: []domain.CreateFieldMappingRequest{
			{LogicalFieldID: userField.ID, PhysicalFieldID: fx.physical["User"].ID},
			{LogicalFieldID: userField.ID, PhysicalFieldID: fx.physical["Image"].ID},
		},
	})
	require.NoError(t, err)
	assert.Len(t, detail.FieldMappings, 2)
}

func TestMappingRepo_ListBySchema(t *testing.T) {
	ctx, repo, fx, conn := setupMapping(t)

	second := seedCollection(t, conn, fx.integration.ID, "index:main, sourcetype:wineventlog")

	_, err := repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    fx.collection.ID,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.CreateMappingRequest{
		LogicalSchemaID: fx.schema.ID,
		CollectionID:    second.ID,
	})
	require.NoError(t, err)

	details, err := repo.ListBySchema(ctx, fx.schema.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, fx.integration.ID, d.Collection.Integration.ID)
	}
}
