package errors

var (
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "invalid withdrawal amount",
	}
	ErrBelowMinimum = &DomainError{
		Code:    CodeValidation,
		Message: "amount is below the minimum withdrawal",
	}
	ErrPayoutAccountMissing = &DomainError{
		Code:    CodeValidation,
		Message: "payout account is not set",
	}
	ErrNotVerified = &DomainError{
		Code:    CodeNotVerified,
		Message: "identity verification has not passed",
	}
	ErrDuplicatePending = &DomainError{
		Code:    CodeDuplicatePending,
		Message: "a withdrawal request is already pending review",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "insufficient balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount must be positive",
	}
	ErrBusy = &DomainError{
		Code:    CodeBusy,
		Message: "another withdrawal for this account is in progress, try again later",
	}
	ErrStorageFailure = &DomainError{
		Code:    CodeStorageFailure,
		Message: "internal error",
	}
)
