package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fintechlabs/teller/internal/bank/entity"
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
	libOTP "github.com/pquerna/otp"
	"golang.org/x/crypto/bcrypt"
)

// testNow is aligned to a 30-second step so OTP codes are deterministic.
var testNow = time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)

const testConfig = `
modules:
  bank:
    auto_approve_threshold: 1000
`

type testBank struct {
	uc    *usecase.Usecase
	store *store.Store
	totp  *otp.TOTP
	clk   *clock.Fixed
	jwt   *jwt.Symmetric
}

// newTestBank wires a full usecase on a temp-dir store seeded with the demo
// accounts: customer1 (1500), customer2 (3200), and admin1.
func newTestBank(t *testing.T) *testBank {
	t.Helper()

	clk := clock.NewFixed(testNow)
	hasher := hash.NewBcrypt(bcrypt.MinCost, "")
	totp := otp.NewTOTP("Teller Test", 30, 1, libOTP.DigitsSix)

	st := store.New(filepath.Join(t.TempDir(), "users.json"), 1, store.DemoSeed(hasher, totp))
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("load store: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	snow, err := uid.NewSnowflake(1)
	if err != nil {
		t.Fatalf("build snowflake: %v", err)
	}

	enforcer, err := rbac.New()
	if err != nil {
		t.Fatalf("build enforcer: %v", err)
	}

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer: "teller",
		TTL:    30 * time.Minute,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("build jwt: %v", err)
	}

	uc := usecase.New(usecase.Dependency{
		RepoStore: st,
		Validator: v10,
		Config:    cfg,
		Bcrypt:    hasher,
		Totp:      totp,
		Clock:     clk,
		UID:       snow,
		JWT:       tokens,
		Enforcer:  enforcer,
	})

	return &testBank{uc: uc, store: st, totp: totp, clk: clk, jwt: tokens}
}

// otpCode generates the account's current code, the way an authenticator app
// would show it at the test clock's instant.
func (b *testBank) otpCode(t *testing.T, username string) string {
	t.Helper()

	acc, err := b.store.GetAccount(context.Background(), username)
	if err != nil {
		t.Fatalf("get account %s: %v", username, err)
	}

	code, err := b.totp.GenerateCode(acc.OTPSecret, b.clk.Now())
	if err != nil {
		t.Fatalf("generate otp code: %v", err)
	}

	return code
}

// login completes both authentication steps and returns the session.
func (b *testBank) login(t *testing.T, username, password string) *entity.Session {
	t.Helper()

	sess, err := b.uc.Login(context.Background(), usecase.LoginInput{Username: username, Password: password})
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}

	sess, err = b.uc.VerifyOTP(context.Background(), usecase.VerifyOTPInput{
		Session: sess,
		Code:    b.otpCode(t, username),
	})
	if err != nil {
		t.Fatalf("verify otp for %s: %v", username, err)
	}

	return sess
}
