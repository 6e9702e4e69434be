package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/models"

	"github.com/go-playground/validator"
)

var validate = newValidator()

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	mustRegister(v, "orderstatus", func(fl validator.FieldLevel) bool {
		return models.ValidOrderStatus(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate checks s against its struct tags and reports every violation as
// one *apperrors.ValidationError.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}

	out := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		out.Add(field, message(field, fe))
	}
	return out.OrNil()
}

// fieldPath drops the root struct name: "CreateOrderRequest.customer.phone"
// becomes "customer.phone".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

var numberType = reflect.TypeOf(models.Number{})

// isSection reports whether the failing field is a nested object rather than
// a scalar value.
func isSection(fe validator.FieldError) bool {
	t := fe.Type()
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != numberType
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if isSection(fe) {
			return "Missing section: " + field
		}
		if fe.Kind() == reflect.Slice {
			return "At least one entry is required: " + field
		}
		return "Missing required field: " + field
	case "min":
		if fe.Kind() == reflect.Slice && fe.Param() == "1" {
			return "At least one entry is required: " + field
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("At least %s entries are required: %s", fe.Param(), field)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return "Invalid email format: " + field
	case "isodate":
		return fmt.Sprintf("Invalid date for %s, expected YYYY-MM-DD", field)
	case "orderstatus":
		return fmt.Sprintf("Invalid status for %s, expected one of: %s", field, strings.Join(models.OrderStatuses, ", "))
	case "phone":
		return fmt.Sprintf("Invalid phone number for %s, expected 10 to 15 digits", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return "Invalid value for " + field
}
