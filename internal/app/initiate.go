package app

import (
	"log/slog"
	"os"

	"github.com/fintechlabs/teller/internal/bank/outbound/store"
	"github.com/fintechlabs/teller/internal/pkg/clock"
	"github.com/fintechlabs/teller/internal/pkg/config"
	"github.com/fintechlabs/teller/internal/pkg/hash"
	"github.com/fintechlabs/teller/internal/pkg/instrument"
	"github.com/fintechlabs/teller/internal/pkg/jwt"
	"github.com/fintechlabs/teller/internal/pkg/otp"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/fintechlabs/teller/internal/pkg/uid"
	"github.com/fintechlabs/teller/internal/pkg/validator"
	libOTP "github.com/pquerna/otp"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	instrument.InitLogging(
		a.config.GetString("app.name"),
		a.config.GetArray("instrument.log_mask_fields"),
	)
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.bcrypt = hash.NewBcrypt(a.config.GetInt("hash.bcrypt.cost"), a.config.GetString("hash.bcrypt.pepper"))

	v10, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v10

	snow, err := uid.NewSnowflake(a.config.GetInt64("uid.node"))
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow

	a.totp = otp.NewTOTP(
		a.config.GetString("mfa.totp.issuer"),
		a.config.GetUint("mfa.totp.period"),
		a.config.GetUint("mfa.totp.skew"),
		libOTP.DigitsSix,
	)

	sessionJWT, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(a.config.GetString("jwt.secret")),
		Issuer: a.config.GetString("jwt.issuer"),
		TTL:    a.config.GetMinute("jwt.ttl_minutes"),
		Clock:  a.clock,
		UUID:   a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = sessionJWT

	enforcer, err := rbac.New()
	if err != nil {
		slog.Error("failed to init rbac enforcer", "error", err)
		os.Exit(1)
	}
	a.enforcer = enforcer
}

func (a *App) initStore() {
	a.store = store.New(
		a.config.GetString("store.path"),
		a.config.GetUint64("store.write_retries"),
		store.DemoSeed(a.bcrypt, a.totp),
	)
}
