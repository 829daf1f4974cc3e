package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrorResponse describes one failed field rule.
type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
	Message     string `json:"message"`
}

var validate = validator.New()

// Currency columns are decimal(10,2).
const (
	moneyMaxDigits = 10
	moneyPlaces    = 2
)

func init() {
	// Report wire names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// money expects the field as a decimal string (see RegisterCustomTypeFunc).
	validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return IsMoney(d)
	})
}

// IsMoney reports whether d fits a non-negative decimal(10,2) column.
func IsMoney(d decimal.Decimal) bool {
	if d.IsNegative() {
		return false
	}
	if !d.Equal(d.Round(moneyPlaces)) {
		return false
	}
	limit := decimal.New(1, moneyMaxDigits-moneyPlaces)
	return d.LessThan(limit)
}

// RegisterCustomTypeFunc lets domain types present themselves as primitives to the rules.
func RegisterCustomTypeFunc(fn validator.CustomTypeFunc, types ...interface{}) {
	validate.RegisterCustomTypeFunc(fn, types...)
}

// ValidateStruct runs every rule and returns all failures, not just the first.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid", Message: err.Error()}}
	}
	for _, err := range verrs {
		errors = append(errors, &ErrorResponse{
			FailedField: err.Field(),
			Tag:         err.Tag(),
			Value:       err.Param(),
			Message:     message(err),
		})
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s item(s).", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	case "money":
		return "Ensure this is a non-negative amount with at most 10 digits and 2 decimal places."
	case "email":
		return "Enter a valid email address."
	case "unique":
		return "Values must be unique."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
