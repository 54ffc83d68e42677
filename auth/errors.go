package auth

import (
	"errors"
	"strings"
)

// Kind classifies an authentication failure so the API boundary can choose
// a transport status without parsing messages.
type Kind int

const (
	// KindValidation marks malformed input caught before any store call.
	KindValidation Kind = iota + 1
	// KindRegistrationRejected marks a store refusal to create an account.
	KindRegistrationRejected
	// KindInvalidCredentials marks a failed login. Deliberately carries no
	// further detail to prevent username enumeration.
	KindInvalidCredentials
	// KindStoreUnavailable marks an infrastructure fault reaching the
	// credential store.
	KindStoreUnavailable
)

// Error is the typed failure returned by the service and the use cases.
// Details holds the ordered rejection reasons from the store, when any.
type Error struct {
	Kind    Kind
	Reason  string
	Details []string
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Reason
	}
	return e.Reason + ": " + strings.Join(e.Details, "; ")
}

// KindOf extracts the failure kind from err, or 0 when err is not an
// authentication failure.
func KindOf(err error) Kind {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return 0
}

// DetailsOf extracts the ordered detail messages from err, if any.
func DetailsOf(err error) []string {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Details
	}
	return nil
}

func validationError(details ...string) *Error {
	return &Error{Kind: KindValidation, Reason: "validation failed", Details: details}
}

func registrationRejected(details []string) *Error {
	return &Error{Kind: KindRegistrationRejected, Reason: "registration rejected", Details: details}
}

func invalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Reason: "invalid credentials"}
}

func storeUnavailable() *Error {
	return &Error{Kind: KindStoreUnavailable, Reason: "store unavailable"}
}
