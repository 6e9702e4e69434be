package repository

import (
	"context"
	"fmt"

	"boutique-tailoring/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const orderRecordSelect = `SELECT o.order_id, o.customer_id, o.order_taken_by, o.assigned_to, o.store_id,
	o.taken_date, o.delivery_date, o.special_note, o.advance, o.total_amount, o.balance_amount,
	o.status, o.invoice,
	COALESCE(c.full_name, '') AS full_name, COALESCE(c.phone, '') AS phone, c.whatsapp,
	COALESCE(c.address, '') AS address, COALESCE(c.store_id, 0) AS customer_store_id,
	mt.username AS taken_by_name, ma.username AS assigned_to_name,
	s.store_name, s.store_code
	FROM orders o
	LEFT JOIN customers c ON o.customer_id = c.customer_id
	LEFT JOIN stores s ON o.store_id = s.store_id
	LEFT JOIN users mt ON o.order_taken_by = mt.id
	LEFT JOIN users ma ON o.assigned_to = ma.id`

// GetOrderDetails loads one order with its particulars, images and
// measurement set.
func (r *Repository) GetOrderDetails(ctx context.Context, orderID int64) (models.OrderDetails, error) {
	var rec models.OrderRecord
	if err := r.db.GetContext(ctx, &rec, orderRecordSelect+" WHERE o.order_id = ?", orderID); err != nil {
		return models.OrderDetails{}, fmt.Errorf("order %d: %w", orderID, mapError(err))
	}
	return r.composeDetails(ctx, rec)
}

func (r *Repository) composeDetails(ctx context.Context, rec models.OrderRecord) (models.OrderDetails, error) {
	particulars, err := r.particularViews(ctx, rec.ID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	measurements, err := r.measurementView(ctx, rec.ID)
	if err != nil {
		return models.OrderDetails{}, err
	}
	return models.NewOrderDetails(rec, particulars, measurements), nil
}

var particularsQuery = `SELECT particular_id, order_id, COALESCE(description, '') AS description, price, status
	FROM order_particulars WHERE order_id = ? ORDER BY particular_id`

var imagesQuery = "SELECT image_id, particular_id, image_url FROM order_images WHERE particular_id IN (?) ORDER BY image_id"

func (r *Repository) particularViews(ctx context.Context, orderID int64) ([]models.ParticularView, error) {
	var rows []models.Particular
	if err := r.db.SelectContext(ctx, &rows, particularsQuery, orderID); err != nil {
		return nil, fmt.Errorf("particulars of order %d: %w", orderID, mapError(err))
	}
	views := make([]models.ParticularView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}
	query, args, err := sqlx.In(imagesQuery, ids)
	if err != nil {
		return nil, err
	}
	var images []models.OrderImage
	if err := r.db.SelectContext(ctx, &images, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("images of order %d: %w", orderID, mapError(err))
	}
	byParticular := make(map[int64][]string, len(rows))
	for _, img := range images {
		byParticular[img.ParticularID] = append(byParticular[img.ParticularID], img.ImageURL)
	}

	for _, p := range rows {
		urls := byParticular[p.ID]
		if urls == nil {
			urls = []string{}
		}
		views = append(views, models.ParticularView{
			ParticularID: p.ID,
			Description:  p.Description,
			Price:        p.Price,
			Status:       p.Status,
			Images:       urls,
		})
	}
	return views, nil
}

var measurementQuery = "SELECT measurement_id, order_id, `L`, `SH`, `ARM`, `UB`, `MB`, `W`, `POINT`, `FN`, `BN`, `HIP`, `SEAT`, `THIGH` " +
	"FROM measurements WHERE order_id = ? ORDER BY measurement_id LIMIT 1"

var sleevesQuery = "SELECT sl_id, measurement_id, position, `L`, `W`, `A` FROM sl_measurements WHERE measurement_id = ? ORDER BY position"

var customMeasurementsQuery = `SELECT custom_id, measurement_id, name, COALESCE(value, '') AS value
	FROM custom_measurements WHERE measurement_id = ? ORDER BY custom_id`

// measurementView returns nil when the order has no measurement set.
func (r *Repository) measurementView(ctx context.Context, orderID int64) (*models.MeasurementView, error) {
	var rows []models.Measurement
	if err := r.db.SelectContext(ctx, &rows, measurementQuery, orderID); err != nil {
		return nil, fmt.Errorf("measurements of order %d: %w", orderID, mapError(err))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	m := rows[0]

	var sleeves []models.SleeveMeasurement
	if err := r.db.SelectContext(ctx, &sleeves, sleevesQuery, m.ID); err != nil {
		return nil, fmt.Errorf("SL measurements %d: %w", m.ID, mapError(err))
	}
	var custom []models.CustomMeasurement
	if err := r.db.SelectContext(ctx, &custom, customMeasurementsQuery, m.ID); err != nil {
		return nil, fmt.Errorf("custom measurements %d: %w", m.ID, mapError(err))
	}
	return models.NewMeasurementView(m, sleeves, custom), nil
}

const orderListFrom = ` FROM orders o
	LEFT JOIN customers c ON o.customer_id = c.customer_id
	LEFT JOIN stores s ON o.store_id = s.store_id
	LEFT JOIN users u ON o.assigned_to = u.id`

const orderListSelect = `SELECT o.order_id, o.assigned_to, o.invoice, o.taken_date, o.delivery_date, o.status,
	o.total_amount, o.advance, o.balance_amount,
	c.full_name AS customer_name, c.phone, c.address, s.store_name, u.username AS master_name` + orderListFrom

// ListOrders returns one page of the flat order list, newest first, and the
// number of orders matching the filter.
func (r *Repository) ListOrders(ctx context.Context, f models.OrderFilter) ([]models.OrderSummary, int, error) {
	var c conditions
	c.like("c.full_name", f.CustomerName)
	c.like("c.phone", f.Phone)
	if f.TakenDate != "" {
		c.equal("o.taken_date", f.TakenDate)
	}
	if f.DeliveryDate != "" {
		c.equal("o.delivery_date", f.DeliveryDate)
	}
	if f.StoreID > 0 {
		c.equal("o.store_id", f.StoreID)
	}
	c.like("o.invoice", f.Invoice)
	if f.AssignedTo > 0 {
		c.equal("o.assigned_to", f.AssignedTo)
	}
	if f.Status != "" {
		c.equal("o.status", f.Status)
	}
	if f.PendingOnly {
		c.add("o.status <> ?", models.StatusDelivered)
	}

	countQuery, countArgs, err := c.build(r.db, "SELECT COUNT(*)"+orderListFrom, "")
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", mapError(err))
	}

	query, args, err := c.build(r.db, orderListSelect, " ORDER BY o.order_id DESC LIMIT ? OFFSET ?", f.Limit, offset(f.Page, f.Limit))
	if err != nil {
		return nil, 0, err
	}
	var rows []models.OrderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", mapError(err))
	}
	orders := make([]models.OrderSummary, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.Summary())
	}
	return orders, total, nil
}

// SearchOrders returns nested orders matching the multi-value filters,
// most recently taken first. Pagination applies only when both Page and
// PerPage are set.
func (r *Repository) SearchOrders(ctx context.Context, s models.OrderSearch) ([]models.OrderDetails, int, error) {
	var c conditions
	if len(s.StoreIDs) > 0 {
		c.add("o.store_id IN (?)", s.StoreIDs)
	}
	c.like("c.full_name", s.CustomerName)
	c.like("c.phone", s.CustomerPhone)
	if len(s.TakenBy) > 0 {
		c.add("o.order_taken_by IN (?)", s.TakenBy)
	}
	if len(s.AssignedTo) > 0 {
		c.add("o.assigned_to IN (?)", s.AssignedTo)
	}
	if s.TakenDateFrom != "" {
		c.add("o.taken_date >= ?", s.TakenDateFrom)
	}
	if s.TakenDateTo != "" {
		c.add("o.taken_date <= ?", s.TakenDateTo)
	}
	if s.DeliveryDateFrom != "" {
		c.add("o.delivery_date >= ?", s.DeliveryDateFrom)
	}
	if s.DeliveryDateTo != "" {
		c.add("o.delivery_date <= ?", s.DeliveryDateTo)
	}
	if len(s.Statuses) > 0 {
		c.add("o.status IN (?)", s.Statuses)
	}

	countQuery, countArgs, err := c.build(r.db, "SELECT COUNT(*) FROM orders o LEFT JOIN customers c ON o.customer_id = c.customer_id", "")
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", mapError(err))
	}

	suffix := " ORDER BY o.taken_date DESC, o.order_id DESC"
	var extra []interface{}
	if s.Page > 0 && s.PerPage > 0 {
		suffix += " LIMIT ? OFFSET ?"
		extra = append(extra, s.PerPage, offset(s.Page, s.PerPage))
	}
	query, args, err := c.build(r.db, orderRecordSelect, suffix, extra...)
	if err != nil {
		return nil, 0, err
	}
	var recs []models.OrderRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search orders: %w", mapError(err))
	}

	orders := make([]models.OrderDetails, 0, len(recs))
	for _, rec := range recs {
		d, err := r.composeDetails(ctx, rec)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, d)
	}
	return orders, total, nil
}

// orderFieldColumns whitelists the columns UpdateOrderField may touch.
var orderFieldColumns = map[string]string{
	"assigned_to": "assigned_to",
	"status":      "status",
}

func (r *Repository) UpdateOrderField(ctx context.Context, orderID int64, field string, value interface{}) error {
	column, ok := orderFieldColumns[field]
	if !ok {
		return fmt.Errorf("order field %q cannot be updated", field)
	}
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET "+column+" = ? WHERE order_id = ?", value, orderID)
	if err != nil {
		return fmt.Errorf("update order %d: %w", orderID, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("order %d: %w", orderID, err)
	}
	return nil
}

var updateParticularQuery = "UPDATE order_particulars SET price = ?, status = ? WHERE particular_id = ?"

func (r *Repository) UpdateParticular(ctx context.Context, particularID int64, price decimal.Decimal, status string) error {
	res, err := r.db.ExecContext(ctx, updateParticularQuery, price, status, particularID)
	if err != nil {
		return fmt.Errorf("update particular %d: %w", particularID, mapError(err))
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("particular %d: %w", particularID, err)
	}
	return nil
}
