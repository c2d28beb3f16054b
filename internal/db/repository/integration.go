package repository

import (
	"context"
	"database/sql"

	"schemacat/internal/domain"
)

var _ domain.IntegrationRepository = (*IntegrationRepo)(nil)

// IntegrationRepo implements domain.IntegrationRepository using SQLite.
type IntegrationRepo struct {
	db *sql.DB
}

// NewIntegrationRepo creates a new IntegrationRepo.
func NewIntegrationRepo(db *sql.DB) *IntegrationRepo {
	return &IntegrationRepo{db: db}
}

const integrationColumns = `id, user_id, name, type, strategy, configuration, metadata, is_active, created_at, updated_at`

func scanIntegration(row interface{ Scan(...any) error }) (*domain.Integration, error) {
	var in domain.Integration
	var config string
	var metadata sql.NullString
	var isActive int64
	if err := row.Scan(&in.ID, &in.UserID, &in.Name, &in.Type, &in.Strategy,
		&config, &metadata, &isActive, &in.CreatedAt, &in.UpdatedAt); err != nil {
		return nil, err
	}
	in.Configuration = configFromDB(config)
	in.Metadata = metadataFromDB(metadata)
	in.IsActive = isActive != 0
	return &in, nil
}

func (r *IntegrationRepo) Create(ctx context.Context, req domain.CreateIntegrationRequest) (*domain.Integration, error) {
	config, err := configToDB(req.Configuration)
	if err != nil {
		return nil, err
	}
	metadata, err := metadataToDB(req.Metadata)
	if err != nil {
		return nil, err
	}

	in := &domain.Integration{
		ID:            domain.NewID(),
		UserID:        req.UserID,
		Name:          req.Name,
		Type:          req.Type,
		Strategy:      req.Strategy,
		Configuration: req.Configuration,
		Metadata:      req.Metadata,
		IsActive:      true,
		CreatedAt:     now(),
	}
	in.UpdatedAt = in.CreatedAt

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO integrations (id, user_id, name, type, strategy, configuration, metadata, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		in.ID, in.UserID, in.Name, in.Type, in.Strategy, config, metadata, in.CreatedAt, in.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return in, nil
}

func (r *IntegrationRepo) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE id = ?`, id)
	in, err := scanIntegration(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return in, nil
}

func (r *IntegrationRepo) List(ctx context.Context) ([]domain.Integration, error) {
	return r.list(ctx, `SELECT `+integrationColumns+` FROM integrations ORDER BY created_at DESC`)
}

func (r *IntegrationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Integration, error) {
	return r.list(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *IntegrationRepo) ListActiveByUser(ctx context.Context, userID string) ([]domain.Integration, error) {
	return r.list(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE user_id = ? AND is_active = 1 ORDER BY created_at DESC`, userID)
}

func (r *IntegrationRepo) ListByUserAndType(ctx context.Context, userID, integrationType string) ([]domain.Integration, error) {
	return r.list(ctx,
		`SELECT `+integrationColumns+` FROM integrations WHERE user_id = ? AND type = ? ORDER BY created_at DESC`,
		userID, integrationType)
}

func (r *IntegrationRepo) list(ctx context.Context, query string, args ...any) ([]domain.Integration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var integrations []domain.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		integrations = append(integrations, *in)
	}
	return integrations, rows.Err()
}

func (r *IntegrationRepo) Update(ctx context.Context, id string, req domain.UpdateIntegrationRequest) (*domain.Integration, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Configuration != nil {
		current.Configuration = req.Configuration
	}
	if req.Metadata != nil {
		current.Metadata = req.Metadata
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	current.UpdatedAt = now()

	config, err := configToDB(current.Configuration)
	if err != nil {
		return nil, err
	}
	metadata, err := metadataToDB(current.Metadata)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE integrations SET name = ?, configuration = ?, metadata = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		current.Name, config, metadata, boolToInt(current.IsActive), current.UpdatedAt, id)
	if err != nil {
		return nil, mapDBError(err)
	}
	return current, nil
}

func (r *IntegrationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM integrations WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("integration %s not found", id)
	}
	return nil
}
