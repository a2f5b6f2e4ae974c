// Package bank wires the demo banking module: auth flow, transfer engine,
// admin review, and the console front end, all backed by the JSON user store.
package bank

import (
	"io"

	"github.com/fintechlabs/teller/internal/bank/inbound/console"
	"github.com/fintechlabs/teller/internal/bank/outbound/store"
	"github.com/fintechlabs/teller/internal/bank/usecase"
	"github.com/fintechlabs/teller/internal/pkg/clock"
	"github.com/fintechlabs/teller/internal/pkg/config"
	"github.com/fintechlabs/teller/internal/pkg/hash"
	"github.com/fintechlabs/teller/internal/pkg/jwt"
	"github.com/fintechlabs/teller/internal/pkg/otp"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/fintechlabs/teller/internal/pkg/uid"
	"github.com/fintechlabs/teller/internal/pkg/validator"
)

// Dependency lists everything the bank module needs from the application.
type Dependency struct {
	Store     *store.Store        `validate:"required"`
	Config    config.Config       `validate:"required"`
	Validator validator.Validator `validate:"required"`
	Bcrypt    hash.Hash           `validate:"required"`
	Totp      otp.OTP             `validate:"required"`
	Clock     clock.Clocker       `validate:"required"`
	UID       uid.NumberID        `validate:"required"`
	JWT       jwt.JWT             `validate:"required"`
	Enforcer  *rbac.Enforcer      `validate:"required"`
	In        io.Reader           `validate:"required"`
	Out       io.Writer           `validate:"required"`
	QRPath    string              `validate:"required"`
}

// New assembles the module and returns its console front end.
func New(dep Dependency) (*console.Console, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		RepoStore: dep.Store,
		Validator: dep.Validator,
		Config:    dep.Config,
		Bcrypt:    dep.Bcrypt,
		Totp:      dep.Totp,
		Clock:     dep.Clock,
		UID:       dep.UID,
		JWT:       dep.JWT,
		Enforcer:  dep.Enforcer,
	})

	return console.New(uc, dep.In, dep.Out, dep.QRPath), nil
}
