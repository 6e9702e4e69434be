package models

import "strings"

type Customer struct {
	ID       int64   `db:"customer_id" json:"customer_id"`
	FullName string  `db:"full_name" json:"full_name"`
	Email    *string `db:"email" json:"email"`
	Phone    string  `db:"phone" json:"phone"`
	Whatsapp *string `db:"whatsapp" json:"whatsapp"`
	DOB      *string `db:"dob" json:"dob"`
	Address  string  `db:"address" json:"address"`
	StoreID  int64   `db:"store_id" json:"store_id"`
}

// CustomerInput is the customer section of an order payload. Name and
// StoreIDAlias carry the alternate field names some clients send.
type CustomerInput struct {
	FullName     FlexString `json:"fullName" validate:"required"`
	Name         FlexString `json:"name,omitempty" validate:"-"`
	Email        FlexString `json:"email"`
	Phone        FlexString `json:"phone" validate:"required"`
	Whatsapp     FlexString `json:"whatsapp"`
	WhatsappSame FlexBool   `json:"whatsappSame"`
	DOB          FlexString `json:"dob" validate:"omitempty,isodate"`
	Address      FlexString `json:"address"`
	StoreID      FlexID     `json:"storeId" validate:"required"`
	StoreIDAlias FlexID     `json:"store_id,omitempty" validate:"-"`
}

func (in *CustomerInput) normalize() {
	if in.FullName == "" {
		in.FullName = in.Name
	}
	if in.StoreID == 0 {
		in.StoreID = in.StoreIDAlias
	}
	in.FullName = FlexString(strings.TrimSpace(string(in.FullName)))
	in.Phone = FlexString(strings.TrimSpace(string(in.Phone)))
}

// Customer builds the row to insert. When whatsappSame is set the phone
// number doubles as the WhatsApp number.
func (in CustomerInput) Customer() Customer {
	whatsapp := in.Whatsapp.Ptr()
	if in.WhatsappSame {
		whatsapp = in.Phone.Ptr()
	}
	return Customer{
		FullName: string(in.FullName),
		Email:    in.Email.Ptr(),
		Phone:    string(in.Phone),
		Whatsapp: whatsapp,
		DOB:      in.DOB.Ptr(),
		Address:  string(in.Address),
		StoreID:  in.StoreID.Int64(),
	}
}

// CustomerView is the customer block of the nested order shape.
type CustomerView struct {
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	Whatsapp *string `json:"whatsapp"`
	Address  string  `json:"address"`
	StoreID  int64   `json:"storeId"`
}
