package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var fieldLabels = map[string]string{
	"Name":          "Name",
	"Email":         "Email",
	"Street":        "Street address",
	"City":          "City",
	"State":         "State",
	"Zip":           "PIN code",
	"Phone":         "Phone number",
	"PaymentMethod": "Payment method",
}

// FormValidator normalizes and checks the checkout form before anything leaves the process.
type FormValidator struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
}

func NewFormValidator() *FormValidator {
	return &FormValidator{
		validate: validator.New(),
		policy:   bluemonday.StrictPolicy(),
	}
}

func (v *FormValidator) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(strings.TrimSpace(s))))
}

// Normalize trims every field and strips markup.
func (v *FormValidator) Normalize(form models.ShippingForm) models.ShippingForm {
	return models.ShippingForm{
		Name:    v.clean(form.Name),
		Email:   v.clean(form.Email),
		Street:  v.clean(form.Street),
		City:    v.clean(form.City),
		State:   v.clean(form.State),
		Zip:     v.clean(form.Zip),
		Phone:   v.clean(form.Phone),
		Country: v.clean(form.Country),
	}
}

// Check returns a validation error naming every failing field, or nil.
func (v *FormValidator) Check(req *models.PlaceOrderRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return appErrors.ValidationError("Invalid checkout details").WithError(err)
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, describe(fieldErr))
	}

	return appErrors.ValidationError(strings.Join(details, "; ")).WithDetails(details).WithError(err)
}

func describe(fieldErr validator.FieldError) string {
	label, ok := fieldLabels[fieldErr.StructField()]
	if !ok {
		label = fieldErr.Field()
	}

	switch {
	case fieldErr.Tag() == "required":
		return label + " is required"
	case fieldErr.StructField() == "Zip":
		return "PIN code must be exactly 6 digits"
	case fieldErr.StructField() == "Phone":
		return "Phone number must be exactly 10 digits"
	case fieldErr.Tag() == "email":
		return label + " must be a valid email address"
	case fieldErr.Tag() == "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
