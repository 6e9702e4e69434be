package repository

import (
	"context"
	"fmt"
	"strings"

	"boutique-tailoring/models"
)

const masterColumns = `id, email, password, username, first_name, last_name, phone, profile_image,
	status, role, created_at`

var insertMasterQuery = `INSERT INTO users (email, password, username, first_name, last_name, phone,
	profile_image, status, role)
	VALUES (:email, :password, :username, :first_name, :last_name, :phone,
	:profile_image, :status, :role)`

func (r *Repository) CreateMaster(ctx context.Context, m models.Master) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, insertMasterQuery, m)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", mapError(err))
	}
	return res.LastInsertId()
}

func (r *Repository) MasterEmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM users WHERE email = ?", email); err != nil {
		return false, fmt.Errorf("check email: %w", mapError(err))
	}
	return n > 0, nil
}

func (r *Repository) ListMasters(ctx context.Context) ([]models.Master, error) {
	masters := []models.Master{}
	if err := r.db.SelectContext(ctx, &masters, "SELECT "+masterColumns+" FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list users: %w", mapError(err))
	}
	return masters, nil
}

func (r *Repository) GetMaster(ctx context.Context, id int64) (models.Master, error) {
	var m models.Master
	if err := r.db.GetContext(ctx, &m, "SELECT "+masterColumns+" FROM users WHERE id = ?", id); err != nil {
		return models.Master{}, fmt.Errorf("user %d: %w", id, mapError(err))
	}
	return m, nil
}

func (r *Repository) GetMasterByEmail(ctx context.Context, email string) (models.Master, error) {
	var m models.Master
	if err := r.db.GetContext(ctx, &m, "SELECT "+masterColumns+" FROM users WHERE email = ?", email); err != nil {
		return models.Master{}, fmt.Errorf("user %s: %w", email, mapError(err))
	}
	return m, nil
}

// UpdateMaster sets the given columns. Callers pass whitelisted column names.
func (r *Repository) UpdateMaster(ctx context.Context, id int64, columns []string, values []interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	sets := make([]string, 0, len(columns))
	for _, col := range columns {
		sets = append(sets, col+" = ?")
	}
	args := append(append([]interface{}{}, values...), id)
	res, err := r.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return nil
}

func (r *Repository) DeleteMaster(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	return nil
}
