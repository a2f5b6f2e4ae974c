package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/bank/usecase"
	"github.com/shopspring/decimal"
)

func TestTransfer(t *testing.T) {
	t.Run("AutoApproved", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act
		res, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer2",
			Amount:   decimal.NewFromInt(10),
		})

		// Assert
		if err != nil {
			t.Fatalf("transfer: %v", err)
		}
		if !res.Completed {
			t.Fatalf("expected a below-threshold transfer to complete immediately")
		}

		sender, _ := b.store.GetAccount(context.Background(), "customer1")
		receiver, _ := b.store.GetAccount(context.Background(), "customer2")
		if !sender.Balance.Equal(decimal.NewFromInt(1490)) {
			t.Errorf("sender balance = %s, want 1490", sender.Balance)
		}
		if !receiver.Balance.Equal(decimal.NewFromInt(3210)) {
			t.Errorf("receiver balance = %s, want 3210", receiver.Balance)
		}
	})

	t.Run("AtThresholdAutoApproved", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act: the threshold itself is inclusive.
		res, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer2",
			Amount:   decimal.NewFromInt(1000),
		})

		// Assert
		if err != nil {
			t.Fatalf("transfer: %v", err)
		}
		if !res.Completed {
			t.Fatalf("expected an at-threshold transfer to complete immediately")
		}
	})

	t.Run("AboveThresholdQueued", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act
		res, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer2",
			Amount:   decimal.NewFromInt(1200),
		})

		// Assert
		if err != nil {
			t.Fatalf("transfer: %v", err)
		}
		if res.Completed {
			t.Fatalf("expected an above-threshold transfer to queue for review")
		}
		if res.PendingID == 0 {
			t.Fatalf("expected a pending ID for the queued transfer")
		}

		// No balance moves until an admin decides.
		sender, _ := b.store.GetAccount(context.Background(), "customer1")
		if !sender.Balance.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("sender balance = %s while pending, want 1500", sender.Balance)
		}

		admin := b.login(t, "admin1", "adminpass")
		pending, err := b.uc.ListPending(context.Background(), usecase.ListPendingInput{Session: admin})
		if err != nil {
			t.Fatalf("list pending: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != res.PendingID {
			t.Fatalf("pending = %+v, want the queued record with ID %d", pending, res.PendingID)
		}
	})

	t.Run("SelfTransfer", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act
		_, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer1",
			Amount:   decimal.NewFromInt(10),
		})

		// Assert
		if !errors.Is(err, entity.ErrInvalidTransfer) {
			t.Fatalf("expected ErrInvalidTransfer, got %v", err)
		}
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
			// Act
			_, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
				Session:  sess,
				Receiver: "customer2",
				Amount:   amount,
			})

			// Assert
			if !errors.Is(err, entity.ErrInvalidAmount) {
				t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
			}
		}
	})

	t.Run("UnknownReceiver", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act
		_, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "nobody",
			Amount:   decimal.NewFromInt(10),
		})

		// Assert
		if !errors.Is(err, entity.ErrUnknownReceiver) {
			t.Fatalf("expected ErrUnknownReceiver, got %v", err)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act: over the sender's balance, so it fails before any routing.
		_, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer2",
			Amount:   decimal.NewFromInt(2000),
		})

		// Assert
		if !errors.Is(err, entity.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("AdminRoleForbidden", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "admin1", "adminpass")

		// Act
		_, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer1",
			Amount:   decimal.NewFromInt(10),
		})

		// Assert
		if !errors.Is(err, entity.ErrNotAllowed) {
			t.Fatalf("expected ErrNotAllowed, got %v", err)
		}
	})

	t.Run("UnauthenticatedSession", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)

		sess, err := b.uc.Login(context.Background(), usecase.LoginInput{
			Username: "customer1",
			Password: "secure123",
		})
		if err != nil {
			t.Fatalf("login: %v", err)
		}

		// Act: the otp step was never completed.
		_, err = b.uc.Transfer(context.Background(), usecase.TransferInput{
			Session:  sess,
			Receiver: "customer2",
			Amount:   decimal.NewFromInt(10),
		})

		// Assert
		if !errors.Is(err, entity.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("TotalFundsConserved", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		for _, amount := range []int64{10, 250, 1000} {
			if _, err := b.uc.Transfer(context.Background(), usecase.TransferInput{
				Session:  sess,
				Receiver: "customer2",
				Amount:   decimal.NewFromInt(amount),
			}); err != nil {
				t.Fatalf("transfer %d: %v", amount, err)
			}
		}

		// Act
		accounts, err := b.store.ListAccounts(context.Background())
		if err != nil {
			t.Fatalf("list accounts: %v", err)
		}

		total := decimal.Zero
		for _, acc := range accounts {
			total = total.Add(acc.Balance)
		}

		// Assert
		if !total.Equal(decimal.NewFromInt(4700)) {
			t.Fatalf("total funds = %s, want 4700", total)
		}
	})
}

func TestBalance(t *testing.T) {
	t.Run("CustomerReadsOwnBalance", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer2", "wallet321")

		// Act
		got, err := b.uc.Balance(context.Background(), usecase.BalanceInput{Session: sess})

		// Assert
		if err != nil {
			t.Fatalf("balance: %v", err)
		}
		if !got.Equal(decimal.NewFromInt(3200)) {
			t.Errorf("balance = %s, want 3200", got)
		}
	})

	t.Run("AdminRoleForbidden", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "admin1", "adminpass")

		// Act
		_, err := b.uc.Balance(context.Background(), usecase.BalanceInput{Session: sess})

		// Assert
		if !errors.Is(err, entity.ErrNotAllowed) {
			t.Fatalf("expected ErrNotAllowed, got %v", err)
		}
	})
}

func TestListAccounts(t *testing.T) {
	t.Run("AdminSeesCustomersOnly", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "admin1", "adminpass")

		// Act
		accounts, err := b.uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Session: sess})

		// Assert
		if err != nil {
			t.Fatalf("list accounts: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("len(accounts) = %d, want 2 customers", len(accounts))
		}
		if accounts[0].Username != "customer1" || accounts[1].Username != "customer2" {
			t.Errorf("accounts = %q/%q, want customer1/customer2", accounts[0].Username, accounts[1].Username)
		}
	})

	t.Run("CustomerRoleForbidden", func(t *testing.T) {
		// Arrange
		b := newTestBank(t)
		sess := b.login(t, "customer1", "secure123")

		// Act
		_, err := b.uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Session: sess})

		// Assert
		if !errors.Is(err, entity.ErrNotAllowed) {
			t.Fatalf("expected ErrNotAllowed, got %v", err)
		}
	})
}
