package repository

import (
	"context"
	"database/sql"

	"schemacat/internal/domain"
)

var _ domain.UserRepository = (*UserRepo)(nil)

// UserRepo implements domain.UserRepository using SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, password_hash, name, is_active, last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var isActive int64
	var lastLogin sql.NullTime
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &isActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.IsActive = isActive != 0
	u.LastLoginAt = nullTimeToPtr(lastLogin)
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	u := &domain.User{
		ID:           domain.NewID(),
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		Name:         req.Name,
		IsActive:     true,
		CreatedAt:    now(),
	}
	u.UpdatedAt = u.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.PasswordHash != nil {
		current.PasswordHash = *req.PasswordHash
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	current.UpdatedAt = now()

	_, err = r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, password_hash = ?, name = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		current.Email, current.PasswordHash, current.Name, boolToInt(current.IsActive), current.UpdatedAt, id)
	if err != nil {
		return nil, mapDBError(err)
	}
	return current, nil
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, id string) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`, ts, ts, id)
	return mapDBError(err)
}

func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_active = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}
