package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDelivered  = "delivered"
)

var OrderStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusDelivered}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID            int64           `db:"order_id"`
	CustomerID    int64           `db:"customer_id"`
	OrderTakenBy  int64           `db:"order_taken_by"`
	AssignedTo    int64           `db:"assigned_to"`
	StoreID       int64           `db:"store_id"`
	TakenDate     string          `db:"taken_date"`
	DeliveryDate  *string         `db:"delivery_date"`
	SpecialNote   *string         `db:"special_note"`
	Advance       decimal.Decimal `db:"advance"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	BalanceAmount decimal.Decimal `db:"balance_amount"`
	Status        string          `db:"status"`
	Invoice       *string         `db:"invoice"`
}

type Particular struct {
	ID          int64           `db:"particular_id"`
	OrderID     int64           `db:"order_id"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Status      string          `db:"status"`
}

type OrderImage struct {
	ID           int64  `db:"image_id"`
	ParticularID int64  `db:"particular_id"`
	ImageURL     string `db:"image_url"`
}

type MasterRef struct {
	MasterID FlexID `json:"masterId" validate:"required"`
	Name     string `json:"name,omitempty"`
}

type OrderDates struct {
	TakenDate    FlexString `json:"takenDate" validate:"required,isodate"`
	DeliveryDate FlexString `json:"deliveryDate" validate:"omitempty,isodate"`
}

// OrderBlock is the flat alternative to orderTakenBy/assignedTo/dates.
type OrderBlock struct {
	TakenBy      FlexID     `json:"taken_by"`
	AssignedTo   FlexID     `json:"assigned_to"`
	TakenDate    FlexString `json:"taken_date"`
	DeliveryDate FlexString `json:"delivery_date"`
	SpecialNote  FlexString `json:"special_note"`
	Advance      *Number    `json:"advance"`
}

type ParticularInput struct {
	Description FlexString `json:"description"`
	Price       Number     `json:"price"`
	Status      FlexString `json:"status" validate:"omitempty,orderstatus"`
	// Images are delivered as multipart files; anything sent here is ignored.
	Images json.RawMessage `json:"images,omitempty" validate:"-"`
}

func (p ParticularInput) StatusOrDefault() string {
	if p.Status == "" {
		return StatusPending
	}
	return string(p.Status)
}

type CreateOrderRequest struct {
	Customer     *CustomerInput    `json:"customer" validate:"required"`
	Order        *OrderBlock       `json:"order,omitempty" validate:"-"`
	OrderTakenBy *MasterRef        `json:"orderTakenBy" validate:"required"`
	AssignedTo   *MasterRef        `json:"assignedTo" validate:"required"`
	Dates        *OrderDates       `json:"dates" validate:"required"`
	Particulars  []ParticularInput `json:"particulars" validate:"dive"`
	Measurements *MeasurementInput `json:"measurements"`
	SpecialNote  FlexString        `json:"specialNote"`
	Advance      *Number           `json:"advance"`
	// Totals are recomputed server side.
	Totals json.RawMessage `json:"totals,omitempty" validate:"-"`
}

// Normalize folds the flat order block and customer aliases into the
// canonical sections.
func (r *CreateOrderRequest) Normalize() {
	if o := r.Order; o != nil {
		if r.OrderTakenBy == nil {
			r.OrderTakenBy = &MasterRef{MasterID: o.TakenBy}
		}
		if r.AssignedTo == nil {
			r.AssignedTo = &MasterRef{MasterID: o.AssignedTo}
		}
		if r.Dates == nil {
			r.Dates = &OrderDates{TakenDate: o.TakenDate, DeliveryDate: o.DeliveryDate}
		}
		if r.SpecialNote == "" {
			r.SpecialNote = o.SpecialNote
		}
		if r.Advance == nil {
			r.Advance = o.Advance
		}
	}
	if r.Customer != nil {
		r.Customer.normalize()
	}
}

// Total is the sum of particular prices.
func (r *CreateOrderRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Particulars {
		total = total.Add(p.Price.Decimal)
	}
	return total.Round(2)
}

func (r *CreateOrderRequest) AdvanceAmount() decimal.Decimal {
	return r.Advance.Amount()
}

type CreateOrderResult struct {
	OrderID       int64  `json:"order_id"`
	InvoiceNumber string `json:"invoiceNumber"`
}

// OrderRecord is an order joined with its customer, masters and store.
type OrderRecord struct {
	Order
	CustomerName     string  `db:"full_name"`
	CustomerPhone    string  `db:"phone"`
	CustomerWhatsapp *string `db:"whatsapp"`
	CustomerAddress  string  `db:"address"`
	CustomerStoreID  int64   `db:"customer_store_id"`
	TakenByName      *string `db:"taken_by_name"`
	AssignedToName   *string `db:"assigned_to_name"`
	StoreName        *string `db:"store_name"`
	StoreCode        *string `db:"store_code"`
}

type OrderHeader struct {
	OrderID       int64           `json:"order_id"`
	Invoice       *string         `json:"invoice"`
	Advance       decimal.Decimal `json:"advance"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	TakenBy       int64           `json:"taken_by"`
	AssignedTo    int64           `json:"assigned_to"`
	TakenDate     string          `json:"taken_date"`
	DeliveryDate  *string         `json:"delivery_date"`
	SpecialNote   *string         `json:"special_note"`
	Status        string          `json:"status"`
	StoreID       int64           `json:"store_id"`
}

type ParticularView struct {
	ParticularID int64           `json:"particular_id"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	Images       []string        `json:"images"`
}

type DatesView struct {
	TakenDate    string  `json:"takenDate"`
	DeliveryDate *string `json:"deliveryDate"`
}

type MasterRefView struct {
	MasterID int64   `json:"masterId"`
	Name     *string `json:"name"`
}

type StoreRef struct {
	StoreID   int64   `json:"store_id"`
	StoreName *string `json:"store_name"`
	StoreCode *string `json:"store_code"`
}

// OrderDetails is the nested order shape served to the admin app.
type OrderDetails struct {
	Order        OrderHeader      `json:"order"`
	Customer     CustomerView     `json:"customer"`
	Particulars  []ParticularView `json:"particulars"`
	Measurements *MeasurementView `json:"measurements"`
	Dates        DatesView        `json:"dates"`
	OrderTakenBy MasterRefView    `json:"orderTakenBy"`
	AssignedTo   MasterRefView    `json:"assignedTo"`
	SpecialNote  *string          `json:"specialNote"`
	Advance      decimal.Decimal  `json:"advance"`
	Total        decimal.Decimal  `json:"total"`
	Balance      decimal.Decimal  `json:"balance"`
	Status       string           `json:"status"`
	Store        StoreRef         `json:"store"`
}

func NewOrderDetails(rec OrderRecord, particulars []ParticularView, measurements *MeasurementView) OrderDetails {
	if particulars == nil {
		particulars = []ParticularView{}
	}
	return OrderDetails{
		Order: OrderHeader{
			OrderID:       rec.ID,
			Invoice:       rec.Invoice,
			Advance:       rec.Advance,
			TotalAmount:   rec.TotalAmount,
			BalanceAmount: rec.BalanceAmount,
			TakenBy:       rec.OrderTakenBy,
			AssignedTo:    rec.AssignedTo,
			TakenDate:     rec.TakenDate,
			DeliveryDate:  rec.DeliveryDate,
			SpecialNote:   rec.SpecialNote,
			Status:        rec.Status,
			StoreID:       rec.StoreID,
		},
		Customer: CustomerView{
			FullName: rec.CustomerName,
			Phone:    rec.CustomerPhone,
			Whatsapp: rec.CustomerWhatsapp,
			Address:  rec.CustomerAddress,
			StoreID:  rec.CustomerStoreID,
		},
		Particulars:  particulars,
		Measurements: measurements,
		Dates:        DatesView{TakenDate: rec.TakenDate, DeliveryDate: rec.DeliveryDate},
		OrderTakenBy: MasterRefView{MasterID: rec.OrderTakenBy, Name: rec.TakenByName},
		AssignedTo:   MasterRefView{MasterID: rec.AssignedTo, Name: rec.AssignedToName},
		SpecialNote:  rec.SpecialNote,
		Advance:      rec.Advance,
		Total:        rec.TotalAmount,
		Balance:      rec.BalanceAmount,
		Status:       rec.Status,
		Store:        StoreRef{StoreID: rec.StoreID, StoreName: rec.StoreName, StoreCode: rec.StoreCode},
	}
}

// OrderRow is one row of the flat order list query.
type OrderRow struct {
	OrderID       int64           `db:"order_id"`
	AssignedTo    int64           `db:"assigned_to"`
	Invoice       *string         `db:"invoice"`
	TakenDate     string          `db:"taken_date"`
	DeliveryDate  *string         `db:"delivery_date"`
	Status        string          `db:"status"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Advance       decimal.Decimal `db:"advance"`
	BalanceAmount decimal.Decimal `db:"balance_amount"`
	CustomerName  *string         `db:"customer_name"`
	Phone         *string         `db:"phone"`
	Address       *string         `db:"address"`
	StoreName     *string         `db:"store_name"`
	MasterName    *string         `db:"master_name"`
}

type OrderListCustomer struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// OrderSummary is one entry of the flat order list.
type OrderSummary struct {
	Invoice       *string           `json:"invoice"`
	OrderID       int64             `json:"order_id"`
	Customer      OrderListCustomer `json:"customer"`
	TakenDate     string            `json:"taken_date"`
	DeliveryDate  *string           `json:"delivery_date"`
	Status        string            `json:"status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Advance       decimal.Decimal   `json:"advance"`
	BalanceAmount decimal.Decimal   `json:"balance_amount"`
	StoreName     *string           `json:"store_name"`
	MasterName    *string           `json:"master_name"`
	AssignedTo    int64             `json:"assigned_to"`
}

func (r OrderRow) Summary() OrderSummary {
	return OrderSummary{
		Invoice:       r.Invoice,
		OrderID:       r.OrderID,
		Customer:      OrderListCustomer{FullName: r.CustomerName, Phone: r.Phone, Address: r.Address},
		TakenDate:     r.TakenDate,
		DeliveryDate:  r.DeliveryDate,
		Status:        r.Status,
		TotalAmount:   r.TotalAmount,
		Advance:       r.Advance,
		BalanceAmount: r.BalanceAmount,
		StoreName:     r.StoreName,
		MasterName:    r.MasterName,
		AssignedTo:    r.AssignedTo,
	}
}

// OrderFilter drives the flat order list. Zero values mean "no filter".
type OrderFilter struct {
	Page         int
	Limit        int
	CustomerName string
	Phone        string
	TakenDate    string
	DeliveryDate string
	Invoice      string
	Status       string
	StoreID      int64
	AssignedTo   int64
	// PendingOnly hides delivered orders.
	PendingOnly bool
}

type OrderPage struct {
	Orders     []OrderSummary `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// OrderSearch drives the nested customer-data search.
type OrderSearch struct {
	StoreIDs         []int64
	TakenBy          []int64
	AssignedTo       []int64
	Statuses         []string
	CustomerName     string
	CustomerPhone    string
	TakenDateFrom    string
	TakenDateTo      string
	DeliveryDateFrom string
	DeliveryDateTo   string
	Page             int
	PerPage          int
}

type SearchResult struct {
	Orders []OrderDetails `json:"orders"`
	Total  int            `json:"total"`
}

type UpdateOrderFieldRequest struct {
	OrderID FlexID     `json:"order_id" validate:"required"`
	Field   string     `json:"field" validate:"required,oneof=assigned_to status"`
	Value   FlexString `json:"value" validate:"required"`
}

type UpdateParticularRequest struct {
	ParticularID FlexID     `json:"particular_id" validate:"required"`
	Price        *Number    `json:"price" validate:"required"`
	Status       FlexString `json:"status" validate:"required,orderstatus"`
}
