/*
Package settlement turns a withdrawal request into a debit plus a pending
withdrawal record, atomically.

A withdrawal runs these checks in order, inside one database transaction
and under a per-user critical section:

  - the amount parses, is positive, has at most two decimals and meets the
    minimum (100 by default)
  - identity verification has passed and a payout account is on file
  - no other request of the user is pending review
  - the balance covers the amount

then debits the balance and stores the request as pending. Any failure
rolls back both writes.

Usage:

	svc := settlement.NewService(store, verifier, ledger, registry, settlement.Config{
	    MinWithdrawal: decimal.NewFromInt(100),
	    LockTimeout:   5 * time.Second,
	}, nil)

	requestID, err := svc.Withdraw(ctx, userID, "150.00")

Concurrency:

Two withdrawals of the same user never overlap. The second waits for the
first up to Config.LockTimeout and then fails with BUSY. Withdrawals of
different users do not wait on each other.

Once the transaction has started it is not interrupted by the caller's
context; it runs to commit or rollback.

Error Handling:

Every failure is a *errors.DomainError with one of the codes
VALIDATION_ERROR, NOT_VERIFIED, DUPLICATE_PENDING, INSUFFICIENT_FUNDS,
INVALID_AMOUNT, BUSY or STORAGE_FAILURE. Storage details are logged and
never returned.
*/
package settlement
