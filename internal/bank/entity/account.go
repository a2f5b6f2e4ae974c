package entity

import "github.com/shopspring/decimal"

// Account is one identity in the user store, keyed by username in the
// persisted document. Username is carried on the value for convenience and is
// immutable after creation.
type Account struct {
	Username  string          `json:"-"`
	Password  string          `json:"password"` // bcrypt digest
	Role      Role            `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	OTPSecret string          `json:"otp_secret"` // base32, fixed at creation
}

// PendingTransfer is a transfer above the auto-approve threshold awaiting an
// admin decision. IDs are monotonically assigned; status moves from pending to
// exactly one of approved or rejected and is then terminal.
type PendingTransfer struct {
	ID       int64           `json:"id"`
	Sender   string          `json:"sender"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
	Status   TransferStatus  `json:"status"`
}

// TransferResult reports how a transfer request was routed.
type TransferResult struct {
	// Completed is true when funds moved immediately.
	Completed bool
	// PendingID identifies the queued record when Completed is false.
	PendingID int64
}
