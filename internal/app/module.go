package app

import (
	"log/slog"
	"os"

	"github.com/fintechlabs/teller/internal/bank"
)

func (a *App) initModules() {
	c, err := bank.New(bank.Dependency{
		Store:     a.store,
		Config:    a.config,
		Validator: a.validator,
		Bcrypt:    a.bcrypt,
		Totp:      a.totp,
		Clock:     a.clock,
		UID:       a.uid,
		JWT:       a.jwt,
		Enforcer:  a.enforcer,
		In:        os.Stdin,
		Out:       os.Stdout,
		QRPath:    a.config.GetString("app.qr_path"),
	})
	if err != nil {
		slog.Error("failed to init module bank", "error", err)
		os.Exit(1)
	}

	a.console = c
}
