package repository

import (
	"context"
	"database/sql"

	"schemacat/internal/domain"
)

var _ domain.MappingRepository = (*MappingRepo)(nil)

// MappingRepo implements domain.MappingRepository using SQLite. All reads
// return MappingDetail with the collection, its integration, its physical
// fields, and the field mappings eagerly loaded.
type MappingRepo struct {
	db *sql.DB
}

// NewMappingRepo creates a new MappingRepo.
func NewMappingRepo(db *sql.DB) *MappingRepo {
	return &MappingRepo{db: db}
}

const mappingColumns = `id, logical_schema_id, collection_id, metadata, created_at, updated_at`

func scanMapping(row interface{ Scan(...any) error }) (*domain.SchemaToCollectionMapping, error) {
	var m domain.SchemaToCollectionMapping
	var metadata sql.NullString
	if err := row.Scan(&m.ID, &m.LogicalSchemaID, &m.CollectionID, &metadata, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Metadata = metadataFromDB(metadata)
	return &m, nil
}

func (r *MappingRepo) Create(ctx context.Context, req domain.CreateMappingRequest) (*domain.MappingDetail, error) {
	metadata, err := metadataToDB(req.Metadata)
	if err != nil {
		return nil, err
	}

	id := domain.NewID()
	createdAt := now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schema_collection_mappings (id, logical_schema_id, collection_id, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, req.LogicalSchemaID, req.CollectionID, metadata, createdAt, createdAt)
	if err != nil {
		return nil, mapDBError(err)
	}

	if err := insertFieldMappings(ctx, tx, id, req.FieldMappings); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

func insertFieldMappings(ctx context.Context, tx *sql.Tx, mappingID string, reqs []domain.CreateFieldMappingRequest) error {
	for _, fm := range reqs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO field_mappings (id, mapping_id, logical_field_id, physical_field_id, transformation, confidence, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			domain.NewID(), mappingID, fm.LogicalFieldID, fm.PhysicalFieldID,
			fm.Transformation, ptrToNullFloat(fm.Confidence), now())
		if err != nil {
			return mapDBError(err)
		}
	}
	return nil
}

func (r *MappingRepo) GetByID(ctx context.Context, id string) (*domain.MappingDetail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+mappingColumns+` FROM schema_collection_mappings WHERE id = ?`, id)
	m, err := scanMapping(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.loadDetail(ctx, m)
}

func (r *MappingRepo) ListBySchema(ctx context.Context, logicalSchemaID string) ([]domain.MappingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mappingColumns+` FROM schema_collection_mappings
		 WHERE logical_schema_id = ? ORDER BY created_at DESC, id DESC`, logicalSchemaID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var mappings []domain.SchemaToCollectionMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	details := make([]domain.MappingDetail, 0, len(mappings))
	for i := range mappings {
		d, err := r.loadDetail(ctx, &mappings[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (r *MappingRepo) FindBySchemaAndCollection(ctx context.Context, logicalSchemaID, collectionID string) (*domain.MappingDetail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+mappingColumns+` FROM schema_collection_mappings
		 WHERE logical_schema_id = ? AND collection_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`, logicalSchemaID, collectionID)
	m, err := scanMapping(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.loadDetail(ctx, m)
}

func (r *MappingRepo) Delete(ctx context.Context, id string) error {
	// Field mappings go with the mapping via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM schema_collection_mappings WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("mapping %s not found", id)
	}
	return nil
}

func (r *MappingRepo) ReplaceFieldMappings(ctx context.Context, mappingID string, fieldMappings []domain.CreateFieldMappingRequest) (*domain.MappingDetail, error) {
	if _, err := r.GetByID(ctx, mappingID); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `DELETE FROM field_mappings WHERE mapping_id = ?`, mappingID)
	if err != nil {
		return nil, mapDBError(err)
	}

	if err := insertFieldMappings(ctx, tx, mappingID, fieldMappings); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE schema_collection_mappings SET updated_at = ? WHERE id = ?`, now(), mappingID)
	if err != nil {
		return nil, mapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, mappingID)
}

func (r *MappingRepo) ListFieldMappings(ctx context.Context, mappingID string) ([]domain.FieldMappingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fm.id, fm.mapping_id, fm.logical_field_id, fm.physical_field_id, fm.transformation, fm.confidence, fm.created_at,
		        lf.id, lf.schema_id, lf.name, lf.data_type, lf.description, lf.is_required, lf.created_at,
		        pf.id, pf.collection_id, pf.name, pf.data_type, pf.metadata, pf.created_at
		 FROM field_mappings fm
		 JOIN logical_fields lf ON lf.id = fm.logical_field_id
		 JOIN physical_fields pf ON pf.id = fm.physical_field_id
		 WHERE fm.mapping_id = ?
		 ORDER BY fm.created_at ASC, fm.id ASC`, mappingID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var details []domain.FieldMappingDetail
	for rows.Next() {
		var d domain.FieldMappingDetail
		var confidence sql.NullFloat64
		var lfDataType, pfDataType string
		var lfRequired int64
		var pfMetadata sql.NullString
		err := rows.Scan(
			&d.ID, &d.MappingID, &d.LogicalFieldID, &d.PhysicalFieldID, &d.Transformation, &confidence, &d.CreatedAt,
			&d.LogicalField.ID, &d.LogicalField.SchemaID, &d.LogicalField.Name, &lfDataType,
			&d.LogicalField.Description, &lfRequired, &d.LogicalField.CreatedAt,
			&d.PhysicalField.ID, &d.PhysicalField.CollectionID, &d.PhysicalField.Name, &pfDataType,
			&pfMetadata, &d.PhysicalField.CreatedAt)
		if err != nil {
			return nil, err
		}
		d.Confidence = nullFloatToPtr(confidence)
		d.LogicalField.DataType = domain.FieldDataType(lfDataType)
		d.LogicalField.IsRequired = lfRequired != 0
		d.PhysicalField.DataType = domain.FieldDataType(pfDataType)
		d.PhysicalField.Metadata = metadataFromDB(pfMetadata)
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *MappingRepo) loadDetail(ctx context.Context, m *domain.SchemaToCollectionMapping) (*domain.MappingDetail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, m.CollectionID)
	collection, err := scanCollection(row)
	if err != nil {
		return nil, mapDBError(err)
	}

	row = r.db.QueryRowContext(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE id = ?`, collection.IntegrationID)
	integration, err := scanIntegration(row)
	if err != nil {
		return nil, mapDBError(err)
	}

	physicalFields, err := listPhysicalFields(ctx, r.db, collection.ID)
	if err != nil {
		return nil, err
	}

	fieldMappings, err := r.ListFieldMappings(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	return &domain.MappingDetail{
		SchemaToCollectionMapping: *m,
		Collection: domain.CollectionDetail{
			Collection:     *collection,
			Integration:    *integration,
			PhysicalFields: physicalFields,
		},
		FieldMappings: fieldMappings,
	}, nil
}
