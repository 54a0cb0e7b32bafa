package checkout

import (
	"errors"

	"marmita-storefront/internal/payment"
	"marmita-storefront/internal/utils"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const minPhoneDigits = 10

var fieldErrors = map[string]struct {
	name string
	err  error
}{
	"CustomerName":    {"customer_name", ErrBlankName},
	"CustomerPhone":   {"customer_phone", ErrInvalidPhone},
	"CustomerAddress": {"customer_address", ErrBlankAddress},
	"PaymentMethod":   {"payment_method", ErrInvalidPaymentMethod},
}

func newValidator() *validatorv10.Validate {
	v := validatorv10.New()

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("phonedigits", func(fl validatorv10.FieldLevel) bool {
		return len(utils.DigitsOnly(fl.Field().String())) >= minPhoneDigits
	})
	_ = v.RegisterValidation("paymentmethod", func(fl validatorv10.FieldLevel) bool {
		return payment.Method(fl.Field().String()).Valid()
	})

	return v
}

// validateForm returns the first failing field as a *ValidationError.
func validateForm(v *validatorv10.Validate, form Form) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	fe := ve[0]
	if mapped, ok := fieldErrors[fe.StructField()]; ok {
		return &ValidationError{Field: mapped.name, Err: mapped.err}
	}
	return &ValidationError{Field: fe.Field(), Err: err}
}
