package repository

import (
	"context"
	"fmt"

	"boutique-tailoring/models"
)

const storeColumns = `store_id, store_name, store_code, phone_number, email, alternate_contact,
	address_line1, address_line2, city, district, state, country, pincode, store_manager,
	opening_date, working_hours, status, created_at`

var insertStoreQuery = `INSERT INTO stores (store_name, store_code, phone_number, email, alternate_contact,
	address_line1, address_line2, city, district, state, country, pincode, store_manager,
	opening_date, working_hours, status)
	VALUES (:store_name, :store_code, :phone_number, :email, :alternate_contact,
	:address_line1, :address_line2, :city, :district, :state, :country, :pincode, :store_manager,
	:opening_date, :working_hours, :status)`

func (r *Repository) CreateStore(ctx context.Context, s models.Store) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, insertStoreQuery, s)
	if err != nil {
		return 0, fmt.Errorf("insert store: %w", mapError(err))
	}
	return res.LastInsertId()
}

func (r *Repository) ListStores(ctx context.Context) ([]models.Store, error) {
	stores := []models.Store{}
	if err := r.db.SelectContext(ctx, &stores, "SELECT "+storeColumns+" FROM stores ORDER BY store_name"); err != nil {
		return nil, fmt.Errorf("list stores: %w", mapError(err))
	}
	return stores, nil
}

func (r *Repository) GetStore(ctx context.Context, id int64) (models.Store, error) {
	var s models.Store
	if err := r.db.GetContext(ctx, &s, "SELECT "+storeColumns+" FROM stores WHERE store_id = ?", id); err != nil {
		return models.Store{}, fmt.Errorf("store %d: %w", id, mapError(err))
	}
	return s, nil
}

var updateStoreQuery = `UPDATE stores SET store_name = :store_name, store_code = :store_code,
	phone_number = :phone_number, email = :email, alternate_contact = :alternate_contact,
	address_line1 = :address_line1, address_line2 = :address_line2, city = :city,
	district = :district, state = :state, country = :country, pincode = :pincode,
	store_manager = :store_manager, opening_date = :opening_date,
	working_hours = :working_hours, status = :status
	WHERE store_id = :store_id`

func (r *Repository) UpdateStore(ctx context.Context, s models.Store) error {
	res, err := r.db.NamedExecContext(ctx, updateStoreQuery, s)
	if err != nil {
		return fmt.Errorf("update store %d: %w", s.ID, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("store %d: %w", s.ID, err)
	}
	return nil
}

// DeleteStore succeeds whether or not the store existed.
func (r *Repository) DeleteStore(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM stores WHERE store_id = ?", id); err != nil {
		return fmt.Errorf("delete store %d: %w", id, mapError(err))
	}
	return nil
}
