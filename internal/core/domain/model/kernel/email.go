package kernel

import (
	"strings"

	"parceldelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Email is a normalized (trimmed, lower-cased) e-mail address. Sender, payer and
// rider identities are all e-mails, and ownership checks compare them.
type Email struct {
	value string
}

// NewEmail normalizes s and checks that it is a well-formed address.
func NewEmail(s string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if err := validate.Var(normalized, "email"); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return Email{value: normalized}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// IsEqual compares normalized addresses, so case never matters.
func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

// IsZero reports the zero Email.
func (e Email) IsZero() bool {
	return e.value == ""
}

// Validate rejects the zero Email.
func (e Email) Validate() error {
	if e.IsZero() {
		return errs.NewValueIsRequiredError("email")
	}
	return nil
}
