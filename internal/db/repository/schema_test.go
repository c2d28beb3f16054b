package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemacat/internal/domain"
)

func TestLogicalSchemaRepo_CreateWithFields(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLogicalSchemaRepo(conn)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.CreateLogicalSchemaRequest{
		Name:        "process_events",
		Description: "Process execution events",
		Version:     "1.0",
		Fields: []domain.CreateLogicalFieldRequest{
			{Name: "user", DataType: domain.FieldTypeString},
			{Name: "image", DataType: domain.FieldTypeString, IsRequired: true},
			{Name: "command_line"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Fields, 3)

	// Fields come back name-ordered, with STRING as the default type.
	assert.Equal(t, "command_line", created.Fields[0].Name)
	assert.Equal(t, domain.FieldTypeString, created.Fields[0].DataType)
	assert.Equal(t, "image", created.Fields[1].Name)
	assert.True(t, created.Fields[1].IsRequired)
	assert.Equal(t, "user", created.Fields[2].Name)

	byName, err := repo.GetByName(ctx, "process_events")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Len(t, byName.Fields, 3)
}

func TestLogicalSchemaRepo_DuplicateNameConflicts(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLogicalSchemaRepo(conn)
	ctx := context.Background()

	seedSchema(t, conn, "dns_events", "query")

	_, err := repo.Create(ctx, domain.CreateLogicalSchemaRequest{Name: "dns_events"})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestLogicalSchemaRepo_UpdatePartial(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLogicalSchemaRepo(conn)
	ctx := context.Background()

	s := seedSchema(t, conn, "auth_events", "user", "result")

	desc := "Authentication events"
	version := "2.0"
	updated, err := repo.Update(ctx, s.ID, domain.UpdateLogicalSchemaRequest{
		Description: &desc,
		Version:     &version,
	})
	require.NoError(t, err)
	assert.Equal(t, "auth_events", updated.Name)
	assert.Equal(t, "Authentication events", updated.Description)
	assert.Equal(t, "2.0", updated.Version)
}

func TestLogicalSchemaRepo_FieldLifecycle(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLogicalSchemaRepo(conn)
	ctx := context.Background()

	s := seedSchema(t, conn, "net_events", "src_ip")

	added, err := repo.AddField(ctx, s.ID, domain.CreateLogicalFieldRequest{
		Name:     "dst_port",
		DataType: domain.FieldTypeNumber,
	})
	require.NoError(t, err)
	assert.Equal(t, s.ID, added.SchemaID)

	newName := "dest_port"
	required := true
	updated, err := repo.UpdateField(ctx, added.ID, domain.UpdateLogicalFieldRequest{
		Name:       &newName,
		IsRequired: &required,
	})
	require.NoError(t, err)
	assert.Equal(t, "dest_port", updated.Name)
	assert.Equal(t, domain.FieldTypeNumber, updated.DataType)
	assert.True(t, updated.IsRequired)

	require.NoError(t, repo.DeleteField(ctx, added.ID))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "src_ip", got.Fields[0].Name)

	err = repo.DeleteField(ctx, added.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLogicalSchemaRepo_DeleteCascadesFields(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLogicalSchemaRepo(conn)
	ctx := context.Background()

	s := seedSchema(t, conn, "gone_events", "a", "b")
	require.NoError(t, repo.Delete(ctx, s.ID))

	assert.Zero(t, countRows(t, conn, "logical_fields", "schema_id", s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
