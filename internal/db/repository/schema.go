package repository

import (
	"context"
	"database/sql"

	"schemacat/internal/domain"
)

var _ domain.LogicalSchemaRepository = (*LogicalSchemaRepo)(nil)

// LogicalSchemaRepo implements domain.LogicalSchemaRepository using SQLite.
type LogicalSchemaRepo struct {
	db *sql.DB
}

// NewLogicalSchemaRepo creates a new LogicalSchemaRepo.
func NewLogicalSchemaRepo(db *sql.DB) *LogicalSchemaRepo {
	return &LogicalSchemaRepo{db: db}
}

const schemaColumns = `id, name, description, version, metadata, created_at, updated_at`

func scanSchema(row interface{ Scan(...any) error }) (*domain.LogicalSchema, error) {
	var s domain.LogicalSchema
	var metadata sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Version, &metadata, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Metadata = metadataFromDB(metadata)
	return &s, nil
}

func (r *LogicalSchemaRepo) Create(ctx context.Context, req domain.CreateLogicalSchemaRequest) (*domain.LogicalSchema, error) {
	metadata, err := metadataToDB(req.Metadata)
	if err != nil {
		return nil, err
	}

	s := &domain.LogicalSchema{
		ID:          domain.NewID(),
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Metadata:    req.Metadata,
		CreatedAt:   now(),
	}
	s.UpdatedAt = s.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO logical_schemas (id, name, description, version, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Description, s.Version, metadata, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}

	for _, f := range req.Fields {
		field := domain.LogicalField{
			ID:          domain.NewID(),
			SchemaID:    s.ID,
			Name:        f.Name,
			DataType:    f.DataType,
			Description: f.Description,
			IsRequired:  f.IsRequired,
			CreatedAt:   s.CreatedAt,
		}
		if field.DataType == "" {
			field.DataType = domain.FieldTypeString
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO logical_fields (id, schema_id, name, data_type, description, is_required, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			field.ID, field.SchemaID, field.Name, string(field.DataType), field.Description,
			boolToInt(field.IsRequired), field.CreatedAt)
		if err != nil {
			return nil, mapDBError(err)
		}
		s.Fields = append(s.Fields, field)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, s.ID)
}

func (r *LogicalSchemaRepo) GetByID(ctx context.Context, id string) (*domain.LogicalSchema, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+schemaColumns+` FROM logical_schemas WHERE id = ?`, id)
	s, err := scanSchema(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	if s.Fields, err = r.listFields(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *LogicalSchemaRepo) GetByName(ctx context.Context, name string) (*domain.LogicalSchema, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+schemaColumns+` FROM logical_schemas WHERE name = ?`, name)
	s, err := scanSchema(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	if s.Fields, err = r.listFields(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *LogicalSchemaRepo) List(ctx context.Context) ([]domain.LogicalSchema, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+schemaColumns+` FROM logical_schemas ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var schemas []domain.LogicalSchema
	for rows.Next() {
		s, err := scanSchema(rows)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range schemas {
		if schemas[i].Fields, err = r.listFields(ctx, schemas[i].ID); err != nil {
			return nil, err
		}
	}
	return schemas, nil
}

func (r *LogicalSchemaRepo) listFields(ctx context.Context, schemaID string) ([]domain.LogicalField, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, schema_id, name, data_type, description, is_required, created_at
		 FROM logical_fields WHERE schema_id = ? ORDER BY name ASC`, schemaID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var fields []domain.LogicalField
	for rows.Next() {
		f, err := scanLogicalField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *f)
	}
	return fields, rows.Err()
}

func scanLogicalField(row interface{ Scan(...any) error }) (*domain.LogicalField, error) {
	var f domain.LogicalField
	var dataType string
	var isRequired int64
	if err := row.Scan(&f.ID, &f.SchemaID, &f.Name, &dataType, &f.Description, &isRequired, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.DataType = domain.FieldDataType(dataType)
	f.IsRequired = isRequired != 0
	return &f, nil
}

func (r *LogicalSchemaRepo) Update(ctx context.Context, id string, req domain.UpdateLogicalSchemaRequest) (*domain.LogicalSchema, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Version != nil {
		current.Version = *req.Version
	}
	if req.Metadata != nil {
		current.Metadata = req.Metadata
	}
	current.UpdatedAt = now()

	metadata, err := metadataToDB(current.Metadata)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE logical_schemas SET name = ?, description = ?, version = ?, metadata = ?, updated_at = ? WHERE id = ?`,
		current.Name, current.Description, current.Version, metadata, current.UpdatedAt, id)
	if err != nil {
		return nil, mapDBError(err)
	}
	return current, nil
}

func (r *LogicalSchemaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logical_schemas WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("logical schema %s not found", id)
	}
	return nil
}

func (r *LogicalSchemaRepo) AddField(ctx context.Context, schemaID string, req domain.CreateLogicalFieldRequest) (*domain.LogicalField, error) {
	f := &domain.LogicalField{
		ID:          domain.NewID(),
		SchemaID:    schemaID,
		Name:        req.Name,
		DataType:    req.DataType,
		Description: req.Description,
		IsRequired:  req.IsRequired,
		CreatedAt:   now(),
	}
	if f.DataType == "" {
		f.DataType = domain.FieldTypeString
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO logical_fields (id, schema_id, name, data_type, description, is_required, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.SchemaID, f.Name, string(f.DataType), f.Description, boolToInt(f.IsRequired), f.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return f, nil
}

func (r *LogicalSchemaRepo) UpdateField(ctx context.Context, fieldID string, req domain.UpdateLogicalFieldRequest) (*domain.LogicalField, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, schema_id, name, data_type, description, is_required, created_at
		 FROM logical_fields WHERE id = ?`, fieldID)
	current, err := scanLogicalField(row)
	if err != nil {
		return nil, mapDBError(err)
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.DataType != nil {
		current.DataType = *req.DataType
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.IsRequired != nil {
		current.IsRequired = *req.IsRequired
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE logical_fields SET name = ?, data_type = ?, description = ?, is_required = ? WHERE id = ?`,
		current.Name, string(current.DataType), current.Description, boolToInt(current.IsRequired), fieldID)
	if err != nil {
		return nil, mapDBError(err)
	}
	return current, nil
}

func (r *LogicalSchemaRepo) DeleteField(ctx context.Context, fieldID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logical_fields WHERE id = ?`, fieldID)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("logical field %s not found", fieldID)
	}
	return nil
}
