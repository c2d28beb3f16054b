package repository

import (
	"context"
	"database/sql"

	"schemacat/internal/domain"
)

var (
	_ domain.CollectionRepository    = (*CollectionRepo)(nil)
	_ domain.PhysicalFieldRepository = (*PhysicalFieldRepo)(nil)
)

// CollectionRepo implements domain.CollectionRepository using SQLite.
// Creates are append-only; discovery never upserts.
type CollectionRepo struct {
	db *sql.DB
}

// NewCollectionRepo creates a new CollectionRepo.
func NewCollectionRepo(db *sql.DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

const collectionColumns = `id, integration_id, name, metadata, created_at, updated_at`

func scanCollection(row interface{ Scan(...any) error }) (*domain.Collection, error) {
	var c domain.Collection
	var metadata sql.NullString
	if err := row.Scan(&c.ID, &c.IntegrationID, &c.Name, &metadata, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Metadata = metadataFromDB(metadata)
	return &c, nil
}

func (r *CollectionRepo) Create(ctx context.Context, c *domain.Collection) (*domain.Collection, error) {
	metadata, err := metadataToDB(c.Metadata)
	if err != nil {
		return nil, err
	}

	created := *c
	created.ID = domain.NewID()
	created.CreatedAt = now()
	created.UpdatedAt = created.CreatedAt

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO collections (id, integration_id, name, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.IntegrationID, created.Name, metadata, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *CollectionRepo) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, id)
	c, err := scanCollection(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return c, nil
}

func (r *CollectionRepo) ListByIntegration(ctx context.Context, integrationID string, limit int) ([]domain.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE integration_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{integrationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var collections []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, *c)
	}
	return collections, rows.Err()
}

func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("collection %s not found", id)
	}
	return nil
}

// PhysicalFieldRepo implements domain.PhysicalFieldRepository using SQLite.
type PhysicalFieldRepo struct {
	db *sql.DB
}

// NewPhysicalFieldRepo creates a new PhysicalFieldRepo.
func NewPhysicalFieldRepo(db *sql.DB) *PhysicalFieldRepo {
	return &PhysicalFieldRepo{db: db}
}

func (r *PhysicalFieldRepo) Create(ctx context.Context, f *domain.PhysicalField) (*domain.PhysicalField, error) {
	metadata, err := metadataToDB(f.Metadata)
	if err != nil {
		return nil, err
	}

	created := *f
	created.ID = domain.NewID()
	created.CreatedAt = now()
	if created.DataType == "" {
		created.DataType = domain.FieldTypeString
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO physical_fields (id, collection_id, name, data_type, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.CollectionID, created.Name, string(created.DataType), metadata, created.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &created, nil
}

func (r *PhysicalFieldRepo) ListByCollection(ctx context.Context, collectionID string) ([]domain.PhysicalField, error) {
	return listPhysicalFields(ctx, r.db, collectionID)
}

func listPhysicalFields(ctx context.Context, db *sql.DB, collectionID string) ([]domain.PhysicalField, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, collection_id, name, data_type, metadata, created_at
		 FROM physical_fields WHERE collection_id = ? ORDER BY name ASC`, collectionID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var fields []domain.PhysicalField
	for rows.Next() {
		var f domain.PhysicalField
		var dataType string
		var metadata sql.NullString
		if err := rows.Scan(&f.ID, &f.CollectionID, &f.Name, &dataType, &metadata, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.DataType = domain.FieldDataType(dataType)
		f.Metadata = metadataFromDB(metadata)
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
