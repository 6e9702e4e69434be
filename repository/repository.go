package repository

import (
	"context"
	"fmt"

	"boutique-tailoring/models"

	"github.com/jmoiron/sqlx"
)

// Tx is the write surface of one unit of work.
type Tx interface {
	InsertCustomer(ctx context.Context, c models.Customer) (int64, error)
	InsertOrder(ctx context.Context, o models.Order) (int64, error)
	SetOrderInvoice(ctx context.Context, orderID int64, invoice string) error
	InsertParticular(ctx context.Context, p models.Particular) (int64, error)
	InsertOrderImage(ctx context.Context, img models.OrderImage) (int64, error)
	InsertMeasurement(ctx context.Context, m models.Measurement) (int64, error)
	InsertSleeveMeasurement(ctx context.Context, s models.SleeveMeasurement) error
	InsertCustomMeasurement(ctx context.Context, c models.CustomMeasurement) error
	StoreCode(ctx context.Context, storeID int64) (string, error)

	InsertCustomerMeasurement(ctx context.Context, m models.CustomerMeasurement) (int64, error)
	InsertMeasurementPhoto(ctx context.Context, p models.MeasurementPhoto) error
	InsertPurchase(ctx context.Context, p models.Purchase) (int64, error)
	LinkPurchaseMeasurement(ctx context.Context, purchaseID, measurementID int64) error
	InsertAssignment(ctx context.Context, a models.Assignment) error
}

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Transact runs fn inside a transaction. The transaction is rolled back when
// fn returns an error or panics, and committed otherwise.
func (r *Repository) Transact(ctx context.Context, fn func(tx Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", mapError(err))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&txRepo{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", mapError(err))
	}
	return nil
}

type txRepo struct {
	tx *sqlx.Tx
}

func (t *txRepo) insert(ctx context.Context, query string, arg interface{}) (int64, error) {
	res, err := t.tx.NamedExecContext(ctx, query, arg)
	if err != nil {
		return 0, mapError(err)
	}
	return res.LastInsertId()
}

var insertCustomerQuery = `INSERT INTO customers (full_name, email, phone, whatsapp, dob, address, store_id)
	VALUES (:full_name, :email, :phone, :whatsapp, :dob, :address, :store_id)`

func (t *txRepo) InsertCustomer(ctx context.Context, c models.Customer) (int64, error) {
	id, err := t.insert(ctx, insertCustomerQuery, c)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

var insertOrderQuery = `INSERT INTO orders (customer_id, order_taken_by, assigned_to, store_id, taken_date,
	delivery_date, special_note, advance, total_amount, balance_amount, status)
	VALUES (:customer_id, :order_taken_by, :assigned_to, :store_id, :taken_date,
	:delivery_date, :special_note, :advance, :total_amount, :balance_amount, :status)`

func (t *txRepo) InsertOrder(ctx context.Context, o models.Order) (int64, error) {
	id, err := t.insert(ctx, insertOrderQuery, o)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

var setOrderInvoiceQuery = "UPDATE orders SET invoice = ? WHERE order_id = ?"

func (t *txRepo) SetOrderInvoice(ctx context.Context, orderID int64, invoice string) error {
	if _, err := t.tx.ExecContext(ctx, setOrderInvoiceQuery, invoice, orderID); err != nil {
		return fmt.Errorf("update invoice: %w", mapError(err))
	}
	return nil
}

var insertParticularQuery = `INSERT INTO order_particulars (order_id, description, price, status)
	VALUES (:order_id, :description, :price, :status)`

func (t *txRepo) InsertParticular(ctx context.Context, p models.Particular) (int64, error) {
	id, err := t.insert(ctx, insertParticularQuery, p)
	if err != nil {
		return 0, fmt.Errorf("insert particular: %w", err)
	}
	return id, nil
}

var insertOrderImageQuery = "INSERT INTO order_images (particular_id, image_url) VALUES (:particular_id, :image_url)"

func (t *txRepo) InsertOrderImage(ctx context.Context, img models.OrderImage) (int64, error) {
	id, err := t.insert(ctx, insertOrderImageQuery, img)
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", err)
	}
	return id, nil
}

var insertMeasurementQuery = "INSERT INTO measurements (order_id, `L`, `SH`, `ARM`, `UB`, `MB`, `W`, `POINT`, `FN`, `BN`, `HIP`, `SEAT`, `THIGH`) " +
	"VALUES (:order_id, :L, :SH, :ARM, :UB, :MB, :W, :POINT, :FN, :BN, :HIP, :SEAT, :THIGH)"

func (t *txRepo) InsertMeasurement(ctx context.Context, m models.Measurement) (int64, error) {
	id, err := t.insert(ctx, insertMeasurementQuery, m)
	if err != nil {
		return 0, fmt.Errorf("insert measurement: %w", err)
	}
	return id, nil
}

var insertSleeveQuery = "INSERT INTO sl_measurements (measurement_id, position, `L`, `W`, `A`) " +
	"VALUES (:measurement_id, :position, :L, :W, :A)"

func (t *txRepo) InsertSleeveMeasurement(ctx context.Context, s models.SleeveMeasurement) error {
	if _, err := t.insert(ctx, insertSleeveQuery, s); err != nil {
		return fmt.Errorf("insert SL measurement: %w", err)
	}
	return nil
}

var insertCustomMeasurementQuery = `INSERT INTO custom_measurements (measurement_id, name, value)
	VALUES (:measurement_id, :name, :value)`

func (t *txRepo) InsertCustomMeasurement(ctx context.Context, c models.CustomMeasurement) error {
	if _, err := t.insert(ctx, insertCustomMeasurementQuery, c); err != nil {
		return fmt.Errorf("insert custom measurement: %w", err)
	}
	return nil
}

var storeCodeQuery = "SELECT store_code FROM stores WHERE store_id = ?"

func (t *txRepo) StoreCode(ctx context.Context, storeID int64) (string, error) {
	var code string
	if err := t.tx.GetContext(ctx, &code, storeCodeQuery, storeID); err != nil {
		return "", fmt.Errorf("store %d code: %w", storeID, mapError(err))
	}
	return code, nil
}

var insertCustomerMeasurementQuery = `INSERT INTO customer_measurements (customer_id, name, details,
	length, shoulder, arm, left_sleeve_length, left_sleeve_width, left_sleeve_arms,
	right_sleeve_length, right_sleeve_width, right_sleeve_arms, upper_body, middle_body, waist,
	dot_point, top_length, pant_length, hip, seat, thigh, maxi_length, maxi_height,
	skirt_length, skirt_height, others)
	VALUES (:customer_id, :name, :details,
	:length, :shoulder, :arm, :left_sleeve_length, :left_sleeve_width, :left_sleeve_arms,
	:right_sleeve_length, :right_sleeve_width, :right_sleeve_arms, :upper_body, :middle_body, :waist,
	:dot_point, :top_length, :pant_length, :hip, :seat, :thigh, :maxi_length, :maxi_height,
	:skirt_length, :skirt_height, :others)`

func (t *txRepo) InsertCustomerMeasurement(ctx context.Context, m models.CustomerMeasurement) (int64, error) {
	id, err := t.insert(ctx, insertCustomerMeasurementQuery, m)
	if err != nil {
		return 0, fmt.Errorf("insert measurement sheet: %w", err)
	}
	return id, nil
}

var insertMeasurementPhotoQuery = `INSERT INTO measurement_photos (measurement_id, photo_path)
	VALUES (:measurement_id, :photo_path)`

func (t *txRepo) InsertMeasurementPhoto(ctx context.Context, p models.MeasurementPhoto) error {
	if _, err := t.insert(ctx, insertMeasurementPhotoQuery, p); err != nil {
		return fmt.Errorf("insert measurement photo: %w", err)
	}
	return nil
}

var insertPurchaseQuery = `INSERT INTO purchase (customer_id, total_amount, advance_amount, balance_amount,
	payment_method, status, invoice_number)
	VALUES (:customer_id, :total_amount, :advance_amount, :balance_amount,
	:payment_method, :status, :invoice_number)`

func (t *txRepo) InsertPurchase(ctx context.Context, p models.Purchase) (int64, error) {
	id, err := t.insert(ctx, insertPurchaseQuery, p)
	if err != nil {
		return 0, fmt.Errorf("insert purchase: %w", err)
	}
	return id, nil
}

var linkPurchaseMeasurementQuery = "INSERT INTO purchase_measurements (purchase_id, measurement_id) VALUES (?, ?)"

func (t *txRepo) LinkPurchaseMeasurement(ctx context.Context, purchaseID, measurementID int64) error {
	if _, err := t.tx.ExecContext(ctx, linkPurchaseMeasurementQuery, purchaseID, measurementID); err != nil {
		return fmt.Errorf("link measurement %d: %w", measurementID, mapError(err))
	}
	return nil
}

var insertAssignmentQuery = `INSERT INTO assignments (purchase_id, master_id, in_date, out_date)
	VALUES (:purchase_id, :master_id, :in_date, :out_date)`

func (t *txRepo) InsertAssignment(ctx context.Context, a models.Assignment) error {
	if _, err := t.insert(ctx, insertAssignmentQuery, a); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}
