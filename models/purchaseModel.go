package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPaymentMethod = "cash"

	PurchasePending   = "Pending"
	PurchaseCompleted = "Completed"
)

// BodyMeasures are the numeric fields of a purchase measurement sheet.
type BodyMeasures struct {
	Length            Number `json:"length" db:"length"`
	Shoulder          Number `json:"shoulder" db:"shoulder"`
	Arm               Number `json:"arm" db:"arm"`
	LeftSleeveLength  Number `json:"left_sleeve_length" db:"left_sleeve_length"`
	LeftSleeveWidth   Number `json:"left_sleeve_width" db:"left_sleeve_width"`
	LeftSleeveArms    Number `json:"left_sleeve_arms" db:"left_sleeve_arms"`
	RightSleeveLength Number `json:"right_sleeve_length" db:"right_sleeve_length"`
	RightSleeveWidth  Number `json:"right_sleeve_width" db:"right_sleeve_width"`
	RightSleeveArms   Number `json:"right_sleeve_arms" db:"right_sleeve_arms"`
	UpperBody         Number `json:"upper_body" db:"upper_body"`
	MiddleBody        Number `json:"middle_body" db:"middle_body"`
	Waist             Number `json:"waist" db:"waist"`
	DotPoint          Number `json:"dot_point" db:"dot_point"`
	TopLength         Number `json:"top_length" db:"top_length"`
	PantLength        Number `json:"pant_length" db:"pant_length"`
	Hip               Number `json:"hip" db:"hip"`
	Seat              Number `json:"seat" db:"seat"`
	Thigh             Number `json:"thigh" db:"thigh"`
	MaxiLength        Number `json:"maxi_length" db:"maxi_length"`
	MaxiHeight        Number `json:"maxi_height" db:"maxi_height"`
	SkirtLength       Number `json:"skirt_length" db:"skirt_length"`
	SkirtHeight       Number `json:"skirt_height" db:"skirt_height"`
}

// CustomerMeasurement is a measurement sheet row of the purchase flow.
type CustomerMeasurement struct {
	ID         int64  `db:"measurement_id"`
	CustomerID int64  `db:"customer_id"`
	Name       string `db:"name"`
	Details    string `db:"details"`
	BodyMeasures
	Others string `db:"others"`
}

type MeasurementPhoto struct {
	ID            int64  `db:"photo_id"`
	MeasurementID int64  `db:"measurement_id"`
	PhotoPath     string `db:"photo_path"`
}

type Purchase struct {
	ID            int64           `db:"purchase_id"`
	CustomerID    int64           `db:"customer_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AdvanceAmount decimal.Decimal `db:"advance_amount"`
	BalanceAmount decimal.Decimal `db:"balance_amount"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`
	InvoiceNumber string          `db:"invoice_number"`
}

type Assignment struct {
	ID         int64   `db:"assignment_id"`
	PurchaseID int64   `db:"purchase_id"`
	MasterID   int64   `db:"master_id"`
	InDate     string  `db:"in_date"`
	OutDate    *string `db:"out_date"`
}

type PurchaseCustomerInput struct {
	Name     FlexString `json:"name" validate:"required"`
	Email    FlexString `json:"email"`
	Phone    FlexString `json:"phone" validate:"required"`
	Whatsapp FlexString `json:"whatsapp"`
	DOB      FlexString `json:"dob" validate:"omitempty,isodate"`
	Address  FlexString `json:"address"`
	StoreID  FlexID     `json:"store_id" validate:"required"`
}

func (in PurchaseCustomerInput) Customer() Customer {
	return Customer{
		FullName: strings.TrimSpace(string(in.Name)),
		Email:    in.Email.Ptr(),
		Phone:    strings.TrimSpace(string(in.Phone)),
		Whatsapp: in.Whatsapp.Ptr(),
		DOB:      in.DOB.Ptr(),
		Address:  string(in.Address),
		StoreID:  in.StoreID.Int64(),
	}
}

type PurchaseMeasurementInput struct {
	Name    FlexString `json:"name" validate:"required"`
	Details FlexString `json:"details"`
	BodyMeasures
	Others FlexString `json:"others"`
	// Photos are data URIs such as "data:image/png;base64,...".
	Photos []string `json:"photos" validate:"-"`
}

func (in PurchaseMeasurementInput) Sheet(customerID int64) CustomerMeasurement {
	return CustomerMeasurement{
		CustomerID:   customerID,
		Name:         string(in.Name),
		Details:      string(in.Details),
		BodyMeasures: in.BodyMeasures,
		Others:       string(in.Others),
	}
}

type PaymentInput struct {
	TotalAmount   Number     `json:"total_amount"`
	Advance       Number     `json:"advance"`
	PaymentMethod FlexString `json:"payment_method"`
}

type AssignmentInput struct {
	MasterID FlexID     `json:"master_id" validate:"required"`
	InDate   FlexString `json:"in_date" validate:"omitempty,isodate"`
	OutDate  FlexString `json:"out_date" validate:"omitempty,isodate"`
}

type CreatePurchaseRequest struct {
	Customer     *PurchaseCustomerInput     `json:"customer" validate:"required"`
	Measurements []PurchaseMeasurementInput `json:"measurements" validate:"required,min=1,dive"`
	Payment      *PaymentInput              `json:"payment" validate:"required"`
	Assignments  []AssignmentInput          `json:"assignments" validate:"dive"`
}

type CreatePurchaseResult struct {
	PurchaseID     int64   `json:"purchase_id"`
	InvoiceNumber  string  `json:"invoice_number"`
	MeasurementIDs []int64 `json:"measurement_ids"`
}

// PurchaseSummary is one row of the purchase list. A purchase with several
// assignments yields one row per assignment.
type PurchaseSummary struct {
	PurchaseID       int64           `db:"purchase_id" json:"purchase_id"`
	InvoiceNumber    string          `db:"invoice_number" json:"invoice_number"`
	StoreID          int64           `db:"store_id" json:"store_id"`
	StoreName        *string         `db:"store_name" json:"store_name"`
	CustomerName     string          `db:"customer_name" json:"customer_name"`
	Phone            string          `db:"phone" json:"phone"`
	MeasurementCount int             `db:"measurement_count" json:"measurement_count"`
	InDate           *string         `db:"in_date" json:"in_date"`
	OutDate          *string         `db:"out_date" json:"out_date"`
	Status           string          `db:"status" json:"status"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
	BalanceAmount    decimal.Decimal `db:"balance_amount" json:"balance_amount"`
	AdvanceAmount    decimal.Decimal `db:"advance_amount" json:"advance_amount"`
	MasterName       *string         `db:"master_name" json:"master_name"`
}

type PurchaseFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type PurchasePagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

type PurchasePage struct {
	Purchases  []PurchaseSummary  `json:"data"`
	Pagination PurchasePagination `json:"pagination"`
}
