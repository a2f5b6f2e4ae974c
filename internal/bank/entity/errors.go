package entity

import "errors"

// Domain failure reasons. Usecases wrap these in goerror business errors so
// callers can branch with errors.Is while the presentation layer shows the
// message and returns to a retry-capable prompt.
var (
	// ErrInvalidCredentials covers both an unknown username and a password
	// mismatch; the reason never reveals which field was wrong.
	ErrInvalidCredentials = errors.New("bank: invalid username or password")

	// ErrInvalidOTP indicates the one-time code did not match any step in the
	// accepted window.
	ErrInvalidOTP = errors.New("bank: otp code invalid or expired")

	// ErrInvalidTransfer indicates sender and receiver are the same account.
	ErrInvalidTransfer = errors.New("bank: sender and receiver must differ")

	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("bank: amount must be positive")

	// ErrUnknownReceiver indicates the receiver does not exist in the store.
	ErrUnknownReceiver = errors.New("bank: receiver account does not exist")

	// ErrInsufficientFunds indicates the sender's balance cannot cover the
	// amount at request time.
	ErrInsufficientFunds = errors.New("bank: insufficient funds")

	// ErrInsufficientFundsAtApproval indicates the sender's balance could no
	// longer cover a pending transfer when an admin approved it; the record is
	// auto-rejected.
	ErrInsufficientFundsAtApproval = errors.New("bank: insufficient funds at approval time")

	// ErrNotAllowed indicates the session's role lacks permission for the
	// requested operation.
	ErrNotAllowed = errors.New("bank: role is not allowed to perform this operation")

	// ErrNotAuthenticated indicates the session has not completed the login
	// flow.
	ErrNotAuthenticated = errors.New("bank: session is not authenticated")
)
