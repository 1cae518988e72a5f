package kernel

import (
	"fmt"
	"strings"

	"parceldelivery/internal/pkg/errs"
)

// Money is an amount in minor currency units (cents) with an ISO 4217 code,
// stored lower-case the way the payment gateway reports it.
type Money struct {
	amount   int64
	currency string
}

// NewMoney rejects negative amounts and currency codes that are not three
// letters long. The code is trimmed and lower-cased.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	code := strings.ToLower(strings.TrimSpace(currency))
	if len(code) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a three letter ISO 4217 code", currency),
		)
	}
	return Money{amount: amount, currency: code}, nil
}

// Amount is the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency is the lower-case ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports a zero amount, whatever the currency.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// Validate rejects a Money that did not come from NewMoney.
func (m Money) Validate() error {
	if m.currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	return nil
}

// String formats the amount in major units, e.g. "15.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amount/100, m.amount%100, strings.ToUpper(m.currency))
}
