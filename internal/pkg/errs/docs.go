// Package errs provides the typed errors shared by the domain model, the use cases
// and the adapters.
//
// Every error type wraps a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired) so callers can classify failures with
// errors.Is while still extracting details with errors.As:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // notFound.ParamName, notFound.ID
//	}
//
// The HTTP adapter relies on these sentinels to choose status codes.
package errs
