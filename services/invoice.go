package services

import (
	"fmt"
	"time"
)

// OrderInvoiceNumber numbers an order: store code, underscore, order id
// padded to four digits ("S1", 7 gives "S1_0007").
func OrderInvoiceNumber(storeCode string, orderID int64) string {
	return fmt.Sprintf("%s_%04d", storeCode, orderID)
}

// PurchaseInvoiceNumber numbers a purchase: store code, the purchase date as
// ddmmyy, then the customer id ("S1", 2026-10-14, 42 gives "S114102642").
func PurchaseInvoiceNumber(storeCode string, date time.Time, customerID int64) string {
	return fmt.Sprintf("%s%s%d", storeCode, date.Format("020106"), customerID)
}
