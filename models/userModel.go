package models

// Master is a staff member stored in the users table.
type Master struct {
	ID           int64   `db:"id" json:"id"`
	Email        string  `db:"email" json:"email"`
	Password     string  `db:"password" json:"-"`
	Username     *string `db:"username" json:"username"`
	FirstName    string  `db:"first_name" json:"first_name"`
	LastName     string  `db:"last_name" json:"last_name"`
	Phone        *string `db:"phone" json:"phone"`
	ProfileImage *string `db:"profile_image" json:"profile_image"`
	Status       string  `db:"status" json:"status"`
	Role         string  `db:"role" json:"role"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
}

func (m Master) DisplayName() string {
	if m.Username != nil && *m.Username != "" {
		return *m.Username
	}
	return m.FirstName + " " + m.LastName
}

type MasterInput struct {
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=8"`
	Username  string `json:"username" form:"username"`
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	LastName  string `json:"last_name" form:"last_name" validate:"required"`
	Phone     string `json:"phone" form:"phone"`
	Status    string `json:"status" form:"status"`
	Role      string `json:"role" form:"role"`
}

// MasterUpdate carries only the fields present in the request.
type MasterUpdate struct {
	ID        FlexID  `json:"id" validate:"required"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status"`
	Role      *string `json:"role"`
}

// Columns returns the column/value pairs to set, in a fixed order.
func (u MasterUpdate) Columns() ([]string, []interface{}) {
	var cols []string
	var vals []interface{}
	add := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add("first_name", u.FirstName)
	add("last_name", u.LastName)
	add("username", u.Username)
	add("phone", u.Phone)
	add("status", u.Status)
	add("role", u.Role)
	return cols, vals
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User         Master `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}
