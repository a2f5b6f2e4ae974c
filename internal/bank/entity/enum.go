package entity

// Role is an account's assigned role, the sole input to authorization
// decisions.
type Role string

const (
	// RoleCustomer may view its own balance and create transfers.
	RoleCustomer Role = "customer"

	// RoleAdmin may list accounts and decide pending transfers.
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// String returns the persisted representation of the role.
func (r Role) String() string {
	return string(r)
}

// TransferStatus is the lifecycle state of a pending transfer.
type TransferStatus string

const (
	// TransferStatusPending awaits an admin decision.
	TransferStatusPending TransferStatus = "pending"

	// TransferStatusApproved is terminal; funds have moved.
	TransferStatusApproved TransferStatus = "approved"

	// TransferStatusRejected is terminal; no funds moved.
	TransferStatusRejected TransferStatus = "rejected"
)

// Terminal reports whether the status admits no further decisions.
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusApproved || s == TransferStatusRejected
}

// String returns the persisted representation of the status.
func (s TransferStatus) String() string {
	return string(s)
}

// AuthState is the login flow's position in its state machine. The value is
// held by the caller (the presentation layer) and passed back into each step.
type AuthState int

const (
	// StateAwaitingCredentials is the fresh-session state.
	StateAwaitingCredentials AuthState = iota

	// StateAwaitingOTP follows a successful password check. A failed OTP check
	// leaves the session here so the code can be retried.
	StateAwaitingOTP

	// StateAuthenticated is reached after a valid OTP; the session carries the
	// account's role from here on.
	StateAuthenticated

	// StateFailed is reached on a credential mismatch; the caller starts over.
	StateFailed
)

// String returns a readable name for logging.
func (s AuthState) String() string {
	switch s {
	case StateAwaitingCredentials:
		return "AwaitingCredentials"
	case StateAwaitingOTP:
		return "AwaitingOTP"
	case StateAuthenticated:
		return "Authenticated"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Session is the caller-held authentication state. No session survives a
// process restart; every login starts at StateAwaitingCredentials.
type Session struct {
	State    AuthState
	Username string
	Role     Role
	// Token is a signed session token, set once State is StateAuthenticated.
	Token string
}

// NewSession returns a fresh session at the start of the login flow.
func NewSession() *Session {
	return &Session{State: StateAwaitingCredentials}
}

// Authenticated reports whether the session completed both login steps.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated
}
