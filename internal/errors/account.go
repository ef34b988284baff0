package errors

var (
	ErrAccountNotFound = &DomainError{
		Code:    CodeAccountNotFound,
		Message: "account not found",
	}
	ErrAlreadyVerified = &DomainError{
		Code:    CodeAlreadyVerified,
		Message: "verification has passed and can no longer be changed",
	}
)
