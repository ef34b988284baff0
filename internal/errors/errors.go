package errors

import stderrors "errors"

// Error codes returned to callers. The set is closed: every failure of the
// withdrawal flow is reported as exactly one of them.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotVerified       = "NOT_VERIFIED"
	CodeDuplicatePending  = "DUPLICATE_PENDING"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeBusy              = "BUSY"
	CodeStorageFailure    = "STORAGE_FAILURE"
	CodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	CodeAlreadyVerified   = "ALREADY_VERIFIED"
)

// DomainError is a business-level failure: a stable code and a message that
// is safe to show to the caller.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so a re-worded error
// still satisfies errors.Is against its sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e with a different message.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message}
}

// As extracts the DomainError from err's chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code of the DomainError in err's chain, or
// CodeStorageFailure for anything else.
func CodeOf(err error) string {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeStorageFailure
}
