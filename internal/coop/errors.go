package coop

import "errors"

// Domain errors raised by accounts, transactions and the registries.
// The HTTP layer maps these to status codes; the core never terminates
// the process on any of them.
var (
	// ErrInvalidArgument covers empty identity fields, nil references,
	// out-of-range interest rates and negative initial balances.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidAmount is returned when a deposit or withdrawal amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrDuplicateMember is returned when an id number is already registered.
	ErrDuplicateMember = errors.New("member already registered")

	// ErrDuplicateAccount is returned when an account number is already taken,
	// either within one member's accounts or at cooperative scope.
	ErrDuplicateAccount = errors.New("account number already in use")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBelowMinimumBalance is returned when a savings withdrawal would leave
	// the balance under the minimum floor.
	ErrBelowMinimumBalance = errors.New("withdrawal would breach minimum balance")
)

// IsRejection reports whether err is a business-rule rejection rather than a
// caller programming error. Used to pick log levels and HTTP codes.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrBelowMinimumBalance)
}
