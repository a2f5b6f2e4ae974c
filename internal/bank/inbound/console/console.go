// Package console is the interactive terminal front end: 2FA provisioning,
// the two-step login, and the role-specific dashboards. It holds no business
// state beyond the caller-side auth session; every action is a synchronous
// usecase call and every failure returns the user to a retry-capable prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/bank/usecase"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/shopspring/decimal"
)

// Usecase is the slice of bank operations the console drives.
type Usecase interface {
	Login(ctx context.Context, in usecase.LoginInput) (*entity.Session, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*entity.Session, error)
	TOTPProvision(ctx context.Context, in usecase.TOTPProvisionInput) (*usecase.TOTPProvisionOutput, error)
	Transfer(ctx context.Context, in usecase.TransferInput) (*entity.TransferResult, error)
	Balance(ctx context.Context, in usecase.BalanceInput) (decimal.Decimal, error)
	ListAccounts(ctx context.Context, in usecase.ListAccountsInput) ([]entity.Account, error)
	ListPending(ctx context.Context, in usecase.ListPendingInput) ([]entity.PendingTransfer, error)
	Approve(ctx context.Context, in usecase.DecideInput) (*entity.PendingTransfer, error)
	Reject(ctx context.Context, in usecase.DecideInput) (*entity.PendingTransfer, error)
}

// Console reads commands line by line and renders results as plain text.
type Console struct {
	uc     Usecase
	in     *bufio.Scanner
	out    io.Writer
	qrPath string
}

// New constructs a Console. qrPath is where provisioning QR images are saved.
func New(uc Usecase, in io.Reader, out io.Writer, qrPath string) *Console {
	return &Console{
		uc:     uc,
		in:     bufio.NewScanner(in),
		out:    out,
		qrPath: qrPath,
	}
}

// Run drives login sessions until the input ends or the user exits.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Teller — demo banking with 2FA login and role-based dashboards")
	fmt.Fprintln(c.out, `Type a username to begin, "qr <username>" for 2FA setup, or "exit".`)

	for {
		line, ok := c.prompt("login> ")
		if !ok || line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		if name, found := strings.CutPrefix(line, "qr "); found {
			c.showProvisioning(ctx, strings.TrimSpace(name))
			continue
		}

		sess, ok := c.login(ctx, line)
		if !ok || !sess.Authenticated() {
			continue
		}

		fmt.Fprintf(c.out, "Welcome %s (%s)\n", sess.Username, sess.Role)

		switch sess.Role {
		case entity.RoleCustomer:
			c.customerDashboard(ctx, sess)
		case entity.RoleAdmin:
			c.adminDashboard(ctx, sess)
		default:
			fmt.Fprintf(c.out, "no dashboard for role %q\n", sess.Role)
		}
	}
}

// login runs the password step followed by the OTP retry loop. A blank OTP
// entry abandons the attempt.
func (c *Console) login(ctx context.Context, username string) (*entity.Session, bool) {
	password, ok := c.prompt("password> ")
	if !ok {
		return nil, false
	}

	sess, err := c.uc.Login(ctx, usecase.LoginInput{Username: username, Password: password})
	if err != nil {
		c.printErr(err)
		return nil, false
	}

	for {
		code, ok := c.prompt("otp> ")
		if !ok || code == "" {
			return nil, false
		}

		sess, err = c.uc.VerifyOTP(ctx, usecase.VerifyOTPInput{Session: sess, Code: code})
		if err != nil {
			c.printErr(err)
			continue // session stays at AwaitingOTP; retry with the next code
		}

		return sess, true
	}
}

func (c *Console) showProvisioning(ctx context.Context, username string) {
	out, err := c.uc.TOTPProvision(ctx, usecase.TOTPProvisionInput{Username: username})
	if err != nil {
		c.printErr(err)
		return
	}

	fmt.Fprintf(c.out, "Provisioning URI: %s\n", out.URI)

	if err := os.WriteFile(c.qrPath, out.QRPNG, 0o600); err != nil {
		fmt.Fprintf(c.out, "could not save QR image: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "QR code saved to %s — scan it with your authenticator app\n", c.qrPath)
}

func (c *Console) customerDashboard(ctx context.Context, sess *entity.Session) {
	fmt.Fprintln(c.out, "commands: balance | transfer <receiver> <amount> | logout")

	for {
		line, ok := c.prompt(sess.Username + "> ")
		if !ok || line == "logout" {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "balance":
			balance, err := c.uc.Balance(ctx, usecase.BalanceInput{Session: sess})
			if err != nil {
				c.printErr(err)
				continue
			}
			fmt.Fprintf(c.out, "Balance: $%s\n", balance)

		case "transfer":
			if len(fields) != 3 {
				fmt.Fprintln(c.out, "usage: transfer <receiver> <amount>")
				continue
			}

			amount, err := decimal.NewFromString(fields[2])
			if err != nil {
				fmt.Fprintf(c.out, "invalid amount %q\n", fields[2])
				continue
			}

			result, err := c.uc.Transfer(ctx, usecase.TransferInput{
				Session:  sess,
				Receiver: fields[1],
				Amount:   amount,
			})
			if err != nil {
				c.printErr(err)
				continue
			}

			if result.Completed {
				fmt.Fprintf(c.out, "Transfer of $%s to %s completed\n", amount, fields[1])
			} else {
				fmt.Fprintf(c.out, "Transfer of $%s to %s queued for admin approval (id %d)\n", amount, fields[1], result.PendingID)
			}

		default:
			fmt.Fprintf(c.out, "unknown command %q\n", fields[0])
		}
	}
}

func (c *Console) adminDashboard(ctx context.Context, sess *entity.Session) {
	fmt.Fprintln(c.out, "commands: accounts | pending | approve <id> | reject <id> | logout")

	for {
		line, ok := c.prompt(sess.Username + "> ")
		if !ok || line == "logout" {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "accounts":
			accounts, err := c.uc.ListAccounts(ctx, usecase.ListAccountsInput{Session: sess})
			if err != nil {
				c.printErr(err)
				continue
			}
			for _, acc := range accounts {
				fmt.Fprintf(c.out, "%s — balance $%s\n", acc.Username, acc.Balance)
			}

		case "pending":
			pending, err := c.uc.ListPending(ctx, usecase.ListPendingInput{Session: sess})
			if err != nil {
				c.printErr(err)
				continue
			}
			if len(pending) == 0 {
				fmt.Fprintln(c.out, "no pending transfers")
				continue
			}
			for _, pt := range pending {
				fmt.Fprintf(c.out, "#%d %s -> %s | $%s\n", pt.ID, pt.Sender, pt.Receiver, pt.Amount)
			}

		case "approve", "reject":
			if len(fields) != 2 {
				fmt.Fprintf(c.out, "usage: %s <id>\n", fields[0])
				continue
			}

			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Fprintf(c.out, "invalid id %q\n", fields[1])
				continue
			}

			in := usecase.DecideInput{Session: sess, ID: id}
			var pt *entity.PendingTransfer
			if fields[0] == "approve" {
				pt, err = c.uc.Approve(ctx, in)
			} else {
				pt, err = c.uc.Reject(ctx, in)
			}
			if err != nil {
				c.printErr(err)
				continue
			}
			fmt.Fprintf(c.out, "transfer #%d is now %s\n", pt.ID, pt.Status)

		default:
			fmt.Fprintf(c.out, "unknown command %q\n", fields[0])
		}
	}
}

// prompt prints the prompt and reads one trimmed line. ok is false once the
// input is exhausted.
func (c *Console) prompt(p string) (line string, ok bool) {
	fmt.Fprint(c.out, p)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// printErr shows the user-facing message of structured errors and falls back
// to the raw error text otherwise.
func (c *Console) printErr(err error) {
	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Msg() != "" {
		fmt.Fprintf(c.out, "error: %s\n", gerr.Msg())
		return
	}
	fmt.Fprintf(c.out, "error: %v\n", err)
}
