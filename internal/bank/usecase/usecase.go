// Package usecase implements the bank module's operations: the two-step login
// flow, transfers with threshold routing, and admin review of pending
// transfers. Each operation is a synchronous call that validates its input,
// consults the store, and returns either a result or a goerror-wrapped domain
// failure.
package usecase

import (
	"context"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/clock"
	"github.com/fintechlabs/teller/internal/pkg/config"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/fintechlabs/teller/internal/pkg/hash"
	"github.com/fintechlabs/teller/internal/pkg/jwt"
	"github.com/fintechlabs/teller/internal/pkg/otp"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/fintechlabs/teller/internal/pkg/uid"
	"github.com/fintechlabs/teller/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type repoStore interface {
	GetAccount(ctx context.Context, username string) (*entity.Account, error)
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	MoveFunds(ctx context.Context, sender, receiver string, amount decimal.Decimal) error
	AppendPending(ctx context.Context, pt entity.PendingTransfer) error
	ListPending(ctx context.Context) ([]entity.PendingTransfer, error)
	ResolvePending(ctx context.Context, id int64, approve bool) (*entity.PendingTransfer, error)
}

// Usecase carries the bank module's dependencies. All operations hang off it.
type Usecase struct {
	repoStore repoStore
	validator validator.Validator
	cfg       config.Config
	bcrypt    hash.Hash
	totp      otp.OTP
	clock     clock.Clocker
	uid       uid.NumberID
	jwt       jwt.JWT
	enforcer  *rbac.Enforcer
}

// Dependency lists what New needs to assemble a Usecase.
type Dependency struct {
	RepoStore repoStore
	Validator validator.Validator
	Config    config.Config
	Bcrypt    hash.Hash
	Totp      otp.OTP
	Clock     clock.Clocker
	UID       uid.NumberID
	JWT       jwt.JWT
	Enforcer  *rbac.Enforcer
}

// New assembles the bank usecase.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoStore: dep.RepoStore,
		validator: dep.Validator,
		cfg:       dep.Config,
		bcrypt:    dep.Bcrypt,
		totp:      dep.Totp,
		clock:     dep.Clock,
		uid:       dep.UID,
		jwt:       dep.JWT,
		enforcer:  dep.Enforcer,
	}
}

// autoApproveThreshold is the cutoff at or below which transfers complete
// without review.
func (s *Usecase) autoApproveThreshold() decimal.Decimal {
	return decimal.NewFromInt(s.cfg.GetInt64("modules.bank.auto_approve_threshold"))
}

// ensureAllowed checks the session finished both login steps, that its token
// is still valid for the same identity, and that its role may perform the
// action on the object. A missing, expired, or tampered token is treated the
// same as an incomplete login.
func (s *Usecase) ensureAllowed(sess *entity.Session, object, action string) error {
	if !sess.Authenticated() {
		return goerror.NewBusinessError(entity.ErrNotAuthenticated, goerror.CodeUnauthorized)
	}

	claims, err := s.jwt.Verify(sess.Token)
	if err != nil || claims.Username != sess.Username || claims.Role != sess.Role.String() {
		return goerror.NewBusinessError(entity.ErrNotAuthenticated, goerror.CodeUnauthorized)
	}

	if !s.enforcer.Allowed(sess.Role.String(), object, action) {
		return goerror.NewBusinessError(entity.ErrNotAllowed, goerror.CodeForbidden)
	}

	return nil
}
