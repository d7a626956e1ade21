package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"bookit/internal/gateway"

	"github.com/go-playground/validator/v10"
)

// Form is the contact and consent data collected at checkout. PromoCode is
// only what the user typed; the booking carries the applied code, so it is
// not part of form validation.
type Form struct {
	FullName      string `json:"fullName" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email,max=255"`
	PromoCode     string `json:"promoCode"`
	AgreedToTerms bool   `json:"agreedToTerms" validate:"required"`
}

// ValidationError lists problems by form field. It matches
// gateway.ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return gateway.ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

var messages = map[string]string{
	"fullName.required":      "Full name is required",
	"fullName.max":           "Full name is too long",
	"email.required":         "Email is required",
	"email.email":            "Enter a valid email address",
	"email.max":              "Email is too long",
	"agreedToTerms.required": "Please agree to the terms and safety policy",
}

// Validate checks the form as it stands now. Surrounding whitespace does not
// count towards a value.
func (f Form) Validate() error {
	f = f.trimmed()
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = msg
		}
	}
	return &ValidationError{Fields: fields}
}

func (f Form) trimmed() Form {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.PromoCode = strings.TrimSpace(f.PromoCode)
	return f
}
