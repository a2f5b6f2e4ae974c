package console_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/bank/inbound/console"
	"github.com/fintechlabs/teller/internal/bank/usecase"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/shopspring/decimal"
)

type fakeUsecase struct {
	loginFn         func(in usecase.LoginInput) (*entity.Session, error)
	verifyOTPFn     func(in usecase.VerifyOTPInput) (*entity.Session, error)
	totpProvisionFn func(in usecase.TOTPProvisionInput) (*usecase.TOTPProvisionOutput, error)
	transferFn      func(in usecase.TransferInput) (*entity.TransferResult, error)
	balanceFn       func(in usecase.BalanceInput) (decimal.Decimal, error)
	listAccountsFn  func(in usecase.ListAccountsInput) ([]entity.Account, error)
	listPendingFn   func(in usecase.ListPendingInput) ([]entity.PendingTransfer, error)
	approveFn       func(in usecase.DecideInput) (*entity.PendingTransfer, error)
	rejectFn        func(in usecase.DecideInput) (*entity.PendingTransfer, error)
}

func (f *fakeUsecase) Login(_ context.Context, in usecase.LoginInput) (*entity.Session, error) {
	return f.loginFn(in)
}

func (f *fakeUsecase) VerifyOTP(_ context.Context, in usecase.VerifyOTPInput) (*entity.Session, error) {
	return f.verifyOTPFn(in)
}

func (f *fakeUsecase) TOTPProvision(_ context.Context, in usecase.TOTPProvisionInput) (*usecase.TOTPProvisionOutput, error) {
	return f.totpProvisionFn(in)
}

func (f *fakeUsecase) Transfer(_ context.Context, in usecase.TransferInput) (*entity.TransferResult, error) {
	return f.transferFn(in)
}

func (f *fakeUsecase) Balance(_ context.Context, in usecase.BalanceInput) (decimal.Decimal, error) {
	return f.balanceFn(in)
}

func (f *fakeUsecase) ListAccounts(_ context.Context, in usecase.ListAccountsInput) ([]entity.Account, error) {
	return f.listAccountsFn(in)
}

func (f *fakeUsecase) ListPending(_ context.Context, in usecase.ListPendingInput) ([]entity.PendingTransfer, error) {
	return f.listPendingFn(in)
}

func (f *fakeUsecase) Approve(_ context.Context, in usecase.DecideInput) (*entity.PendingTransfer, error) {
	return f.approveFn(in)
}

func (f *fakeUsecase) Reject(_ context.Context, in usecase.DecideInput) (*entity.PendingTransfer, error) {
	return f.rejectFn(in)
}

// twoStepLogin wires the fake's auth steps for a fixed identity.
func twoStepLogin(username string, role entity.Role) (
	func(usecase.LoginInput) (*entity.Session, error),
	func(usecase.VerifyOTPInput) (*entity.Session, error),
) {
	login := func(in usecase.LoginInput) (*entity.Session, error) {
		if in.Username != username {
			return nil, goerror.NewBusinessError(entity.ErrInvalidCredentials, goerror.CodeUnauthorized)
		}
		return &entity.Session{State: entity.StateAwaitingOTP, Username: username, Role: role}, nil
	}

	verify := func(in usecase.VerifyOTPInput) (*entity.Session, error) {
		if in.Code != "123456" {
			return nil, goerror.NewBusinessError(entity.ErrInvalidOTP, goerror.CodeUnauthorized)
		}
		in.Session.State = entity.StateAuthenticated
		return in.Session, nil
	}

	return login, verify
}

func runScript(t *testing.T, uc console.Usecase, qrPath, script string) string {
	t.Helper()

	var out bytes.Buffer
	c := console.New(uc, strings.NewReader(script), &out, qrPath)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run console: %v", err)
	}

	return out.String()
}

func TestConsoleCustomerSession(t *testing.T) {
	// Arrange
	login, verify := twoStepLogin("customer1", entity.RoleCustomer)
	uc := &fakeUsecase{
		loginFn:     login,
		verifyOTPFn: verify,
		balanceFn: func(usecase.BalanceInput) (decimal.Decimal, error) {
			return decimal.NewFromInt(1500), nil
		},
		transferFn: func(in usecase.TransferInput) (*entity.TransferResult, error) {
			if in.Receiver == "customer2" && in.Amount.Equal(decimal.NewFromInt(50)) {
				return &entity.TransferResult{Completed: true}, nil
			}
			return &entity.TransferResult{PendingID: 9}, nil
		},
	}

	script := strings.Join([]string{
		"customer1",
		"secure123",
		"123456",
		"balance",
		"transfer customer2 50",
		"transfer customer2 5000",
		"logout",
		"exit",
	}, "\n") + "\n"

	// Act
	out := runScript(t, uc, filepath.Join(t.TempDir(), "qr.png"), script)

	// Assert
	for _, want := range []string{
		"Welcome customer1 (customer)",
		"Balance: $1500",
		"Transfer of $50 to customer2 completed",
		"Transfer of $5000 to customer2 queued for admin approval (id 9)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n---\n%s", want, out)
		}
	}
}

func TestConsoleOTPRetry(t *testing.T) {
	// Arrange
	login, verify := twoStepLogin("customer1", entity.RoleCustomer)
	uc := &fakeUsecase{
		loginFn:     login,
		verifyOTPFn: verify,
		balanceFn: func(usecase.BalanceInput) (decimal.Decimal, error) {
			return decimal.NewFromInt(1500), nil
		},
	}

	script := strings.Join([]string{
		"customer1",
		"secure123",
		"000000", // rejected, prompt repeats
		"123456",
		"logout",
		"exit",
	}, "\n") + "\n"

	// Act
	out := runScript(t, uc, filepath.Join(t.TempDir(), "qr.png"), script)

	// Assert
	if !strings.Contains(out, "error: bank: otp code invalid or expired") {
		t.Errorf("output missing otp failure message\n---\n%s", out)
	}
	if !strings.Contains(out, "Welcome customer1 (customer)") {
		t.Errorf("retry with the correct code should finish the login\n---\n%s", out)
	}
}

func TestConsoleAdminSession(t *testing.T) {
	// Arrange
	login, verify := twoStepLogin("admin1", entity.RoleAdmin)
	uc := &fakeUsecase{
		loginFn:     login,
		verifyOTPFn: verify,
		listAccountsFn: func(usecase.ListAccountsInput) ([]entity.Account, error) {
			return []entity.Account{
				{Username: "customer1", Balance: decimal.NewFromInt(1500)},
				{Username: "customer2", Balance: decimal.NewFromInt(3200)},
			}, nil
		},
		listPendingFn: func(usecase.ListPendingInput) ([]entity.PendingTransfer, error) {
			return []entity.PendingTransfer{
				{ID: 9, Sender: "customer1", Receiver: "customer2", Amount: decimal.NewFromInt(5000)},
			}, nil
		},
		approveFn: func(in usecase.DecideInput) (*entity.PendingTransfer, error) {
			return &entity.PendingTransfer{ID: in.ID, Status: entity.TransferStatusApproved}, nil
		},
		rejectFn: func(in usecase.DecideInput) (*entity.PendingTransfer, error) {
			return &entity.PendingTransfer{ID: in.ID, Status: entity.TransferStatusRejected}, nil
		},
	}

	script := strings.Join([]string{
		"admin1",
		"adminpass",
		"123456",
		"accounts",
		"pending",
		"approve 9",
		"reject 10",
		"logout",
		"exit",
	}, "\n") + "\n"

	// Act
	out := runScript(t, uc, filepath.Join(t.TempDir(), "qr.png"), script)

	// Assert
	for _, want := range []string{
		"Welcome admin1 (admin)",
		"customer1 — balance $1500",
		"customer2 — balance $3200",
		"#9 customer1 -> customer2 | $5000",
		"transfer #9 is now approved",
		"transfer #10 is now rejected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n---\n%s", want, out)
		}
	}
}

func TestConsoleProvisioning(t *testing.T) {
	// Arrange
	qrPath := filepath.Join(t.TempDir(), "qr.png")
	png := []byte{0x89, 'P', 'N', 'G'}

	uc := &fakeUsecase{
		totpProvisionFn: func(in usecase.TOTPProvisionInput) (*usecase.TOTPProvisionOutput, error) {
			if in.Username != "customer1" {
				return nil, goerror.NewBusinessError(goerror.ErrNotFound, goerror.CodeNotFound)
			}
			return &usecase.TOTPProvisionOutput{URI: "otpauth://totp/Teller:customer1", QRPNG: png}, nil
		},
	}

	script := "qr customer1\nqr nobody\nexit\n"

	// Act
	out := runScript(t, uc, qrPath, script)

	// Assert
	if !strings.Contains(out, "Provisioning URI: otpauth://totp/Teller:customer1") {
		t.Errorf("output missing provisioning uri\n---\n%s", out)
	}
	if !strings.Contains(out, "error: resource not found") {
		t.Errorf("output missing not-found message\n---\n%s", out)
	}

	saved, err := os.ReadFile(qrPath)
	if err != nil {
		t.Fatalf("read saved qr: %v", err)
	}
	if !bytes.Equal(saved, png) {
		t.Errorf("saved qr bytes differ from the rendered image")
	}
}

func TestConsoleFailedLogin(t *testing.T) {
	// Arrange
	login, verify := twoStepLogin("customer1", entity.RoleCustomer)
	uc := &fakeUsecase{loginFn: login, verifyOTPFn: verify}

	script := "nobody\nwrongpass\nexit\n"

	// Act
	out := runScript(t, uc, filepath.Join(t.TempDir(), "qr.png"), script)

	// Assert: the failure returns to the login prompt instead of a dashboard.
	if !strings.Contains(out, "error: bank: invalid username or password") {
		t.Errorf("output missing credential failure message\n---\n%s", out)
	}
	if strings.Contains(out, "Welcome") {
		t.Errorf("failed login must not reach a dashboard\n---\n%s", out)
	}
}
