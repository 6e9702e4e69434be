package models

const (
	DefaultWorkingHours = "9:00 AM - 9:00 PM"
	DefaultStoreStatus  = "Active"
)

type Store struct {
	ID               int64   `db:"store_id" json:"store_id"`
	StoreName        string  `db:"store_name" json:"store_name"`
	StoreCode        string  `db:"store_code" json:"store_code"`
	PhoneNumber      *string `db:"phone_number" json:"phone_number"`
	Email            *string `db:"email" json:"email"`
	AlternateContact *string `db:"alternate_contact" json:"alternate_contact"`
	AddressLine1     string  `db:"address_line1" json:"address_line1"`
	AddressLine2     *string `db:"address_line2" json:"address_line2"`
	City             string  `db:"city" json:"city"`
	District         *string `db:"district" json:"district"`
	State            string  `db:"state" json:"state"`
	Country          string  `db:"country" json:"country"`
	Pincode          string  `db:"pincode" json:"pincode"`
	StoreManager     *string `db:"store_manager" json:"store_manager"`
	OpeningDate      *string `db:"opening_date" json:"opening_date"`
	WorkingHours     string  `db:"working_hours" json:"working_hours"`
	Status           string  `db:"status" json:"status"`
	CreatedAt        string  `db:"created_at" json:"created_at"`
}

type StoreInput struct {
	StoreName        FlexString `json:"store_name" validate:"required"`
	StoreCode        FlexString `json:"store_code" validate:"required"`
	PhoneNumber      FlexString `json:"phone_number" validate:"omitempty,phone"`
	Email            FlexString `json:"email" validate:"omitempty,email"`
	AlternateContact FlexString `json:"alternate_contact"`
	AddressLine1     FlexString `json:"address_line1" validate:"required"`
	AddressLine2     FlexString `json:"address_line2"`
	City             FlexString `json:"city" validate:"required"`
	District         FlexString `json:"district"`
	State            FlexString `json:"state" validate:"required"`
	Country          FlexString `json:"country" validate:"required"`
	Pincode          FlexString `json:"pincode" validate:"required"`
	StoreManager     FlexString `json:"store_manager"`
	OpeningDate      FlexString `json:"opening_date" validate:"omitempty,isodate"`
	WorkingHours     FlexString `json:"working_hours"`
	Status           FlexString `json:"status"`
}

// Store applies the column defaults for working hours and status.
func (in StoreInput) Store() Store {
	s := Store{
		StoreName:        string(in.StoreName),
		StoreCode:        string(in.StoreCode),
		PhoneNumber:      in.PhoneNumber.Ptr(),
		Email:            in.Email.Ptr(),
		AlternateContact: in.AlternateContact.Ptr(),
		AddressLine1:     string(in.AddressLine1),
		AddressLine2:     in.AddressLine2.Ptr(),
		City:             string(in.City),
		District:         in.District.Ptr(),
		State:            string(in.State),
		Country:          string(in.Country),
		Pincode:          string(in.Pincode),
		StoreManager:     in.StoreManager.Ptr(),
		OpeningDate:      in.OpeningDate.Ptr(),
		WorkingHours:     string(in.WorkingHours),
		Status:           string(in.Status),
	}
	if s.WorkingHours == "" {
		s.WorkingHours = DefaultWorkingHours
	}
	if s.Status == "" {
		s.Status = DefaultStoreStatus
	}
	return s
}
