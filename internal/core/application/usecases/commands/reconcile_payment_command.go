package commands

import (
	"errors"
	"strings"

	"parceldelivery/internal/pkg/errs"
	"parceldelivery/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand asks to settle the checkout session with the given
// gateway reference. Delivering the same command any number of times has the
// effect of delivering it once.
type ReconcilePaymentCommand struct {
	sessionReference string

	guard guard.ConstructorGuard
}

func NewReconcilePaymentCommand(sessionReference string) (ReconcilePaymentCommand, error) {
	ref := strings.TrimSpace(sessionReference)
	if ref == "" {
		return ReconcilePaymentCommand{}, errs.NewValueIsRequiredError("sessionId")
	}
	return ReconcilePaymentCommand{
		sessionReference: ref,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) SessionReference() string {
	return c.sessionReference
}
