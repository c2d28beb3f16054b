package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"schemacat/internal/db"
	"schemacat/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	writeDB, _ := db.OpenTestSQLite(t)
	return writeDB
}

func seedUser(t *testing.T, conn *sql.DB, email string) *domain.User {
	t.Helper()
	u, err := NewUserRepo(conn).Create(context.Background(), domain.CreateUserRequest{
		Email:        email,
		PasswordHash: "$2a$10$notarealhash",
		Name:         "Test User",
	})
	require.NoError(t, err)
	return u
}

func seedIntegration(t *testing.T, conn *sql.DB, userID string) *domain.Integration {
	t.Helper()
	in, err := NewIntegrationRepo(conn).Create(context.Background(), domain.CreateIntegrationRequest{
		UserID:   userID,
		Name:     "prod splunk",
		Type:     "splunk",
		Strategy: domain.StrategyAPIKey,
		Configuration: domain.DatasourceConfig{
			"host":    "https://splunk.example.com",
			"api-key": "secret",
		},
	})
	require.NoError(t, err)
	return in
}

func seedCollection(t *testing.T, conn *sql.DB, integrationID, name string) *domain.Collection {
	t.Helper()
	c, err := NewCollectionRepo(conn).Create(context.Background(), &domain.Collection{
		IntegrationID: integrationID,
		Name:          name,
	})
	require.NoError(t, err)
	return c
}

func seedPhysicalField(t *testing.T, conn *sql.DB, collectionID, name string) *domain.PhysicalField {
	t.Helper()
	f, err := NewPhysicalFieldRepo(conn).Create(context.Background(), &domain.PhysicalField{
		CollectionID: collectionID,
		Name:         name,
		DataType:     domain.FieldTypeString,
	})
	require.NoError(t, err)
	return f
}

func seedSchema(t *testing.T, conn *sql.DB, name string, fieldNames ...string) *domain.LogicalSchema {
	t.Helper()
	req := domain.CreateLogicalSchemaRequest{Name: name, Version: "1.0"}
	for _, fn := range fieldNames {
		req.Fields = append(req.Fields, domain.CreateLogicalFieldRequest{Name: fn, DataType: domain.FieldTypeString})
	}
	s, err := NewLogicalSchemaRepo(conn).Create(context.Background(), req)
	require.NoError(t, err)
	return s
}

func countRows(t *testing.T, conn *sql.DB, table, whereCol, whereVal string) int {
	t.Helper()
	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE `+whereCol+` = ?`, whereVal).Scan(&n)
	require.NoError(t, err)
	return n
}
