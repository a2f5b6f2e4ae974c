// Package app wires dependencies and runs the interactive session.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fintechlabs/teller/internal/bank/inbound/console"
	"github.com/fintechlabs/teller/internal/bank/outbound/store"
	"github.com/fintechlabs/teller/internal/pkg/clock"
	"github.com/fintechlabs/teller/internal/pkg/config"
	"github.com/fintechlabs/teller/internal/pkg/hash"
	"github.com/fintechlabs/teller/internal/pkg/jwt"
	"github.com/fintechlabs/teller/internal/pkg/otp"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/fintechlabs/teller/internal/pkg/uid"
	"github.com/fintechlabs/teller/internal/pkg/validator"
)

// App wires dependencies and manages the session lifecycle.
type App struct {
	// configuration
	config config.Config

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	totp      otp.OTP
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT
	enforcer  *rbac.Enforcer

	// resources
	store *store.Store

	// front end
	console *console.Console
}

// New initializes the application with default wiring and returns an App
// instance. Initialization failures are fatal.
func New() *App {
	app := &App{}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initStore()
	app.initModules()

	return app
}

// Run loads the persisted store and drives the console until the input ends
// or the process receives a termination signal.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.store.Load(ctx); err != nil {
		return err
	}

	return a.console.Run(ctx)
}
