package validator

import (
	"reflect"
	"time"

	"go-factory-console/internal/model"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse describes one field that failed validation, so the form can
// show the message next to the offending input.
type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

var validate = validator.New()

const dateLayout = "2006-01-02"

// now is replaced in tests.
var now = time.Now

func init() {
	// Amounts validate as plain numbers (gte=0 and friends)
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if a, ok := v.Interface().(model.Amount); ok {
			f, _ := a.Float64()
			return f
		}
		return nil
	}, model.Amount{})

	// Entry dates cannot lie in the future
	validate.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return !d.After(today())
	})

	// Expiry dates cannot lie in the past
	validate.RegisterValidation("not_past", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return !d.Before(today())
	})
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
