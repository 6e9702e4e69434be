package repository

import (
	"context"
	"fmt"

	"boutique-tailoring/models"
)

const purchaseStatusExpr = "CASE WHEN a.out_date IS NULL THEN 'Pending' ELSE 'Completed' END"

const purchaseMasterExpr = "CONCAT(u.first_name, ' ', u.last_name)"

const purchaseListQuery = `SELECT p.purchase_id, p.invoice_number, c.store_id, s.store_name,
	c.full_name AS customer_name, c.phone, COUNT(pm.measurement_id) AS measurement_count,
	a.in_date, a.out_date, ` + purchaseStatusExpr + ` AS status,
	p.total_amount, p.balance_amount, p.advance_amount, ` + purchaseMasterExpr + ` AS master_name
	FROM purchase p
	JOIN customers c ON c.customer_id = p.customer_id
	LEFT JOIN stores s ON c.store_id = s.store_id
	LEFT JOIN purchase_measurements pm ON p.purchase_id = pm.purchase_id
	LEFT JOIN assignments a ON p.purchase_id = a.purchase_id
	LEFT JOIN users u ON a.master_id = u.id`

const purchaseGroupBy = ` GROUP BY p.purchase_id, p.invoice_number, c.store_id, s.store_name, c.full_name,
	c.phone, a.assignment_id, a.in_date, a.out_date, p.total_amount, p.balance_amount, p.advance_amount,
	u.first_name, u.last_name`

// ListPurchases searches purchases by invoice, phone, customer, store,
// assignment dates and master name.
func (r *Repository) ListPurchases(ctx context.Context, f models.PurchaseFilter) ([]models.PurchaseSummary, int, error) {
	var c conditions
	if f.Search != "" {
		term := "%" + f.Search + "%"
		c.add(`(p.invoice_number LIKE ? OR c.phone LIKE ? OR c.full_name LIKE ? OR s.store_name LIKE ?
			OR a.in_date LIKE ? OR a.out_date LIKE ? OR `+purchaseMasterExpr+` LIKE ?)`,
			term, term, term, term, term, term, term)
	}
	if f.Status == models.PurchasePending || f.Status == models.PurchaseCompleted {
		c.add(purchaseStatusExpr+" = ?", f.Status)
	}

	grouped, args, err := c.build(r.db, purchaseListQuery, purchaseGroupBy)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ("+grouped+") AS derived", args...); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", mapError(err))
	}

	query, args, err := c.build(r.db, purchaseListQuery, purchaseGroupBy+" ORDER BY p.purchase_id DESC LIMIT ? OFFSET ?",
		f.Limit, offset(f.Page, f.Limit))
	if err != nil {
		return nil, 0, err
	}
	purchases := []models.PurchaseSummary{}
	if err := r.db.SelectContext(ctx, &purchases, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", mapError(err))
	}
	return purchases, total, nil
}
