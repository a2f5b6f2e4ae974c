package usecase

import (
	"context"
	"log/slog"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// BalanceInput requests the session account's own balance.
type BalanceInput struct {
	Session *entity.Session `validate:"required"`
}

// Balance returns the authenticated customer's current balance.
func (s *Usecase) Balance(ctx context.Context, in BalanceInput) (decimal.Decimal, error) {
	if err := s.validator.Validate(in); err != nil {
		return decimal.Zero, goerror.NewInvalidInput(err)
	}

	if err := s.ensureAllowed(in.Session, rbac.ObjectBalance, rbac.ActionRead); err != nil {
		return decimal.Zero, err
	}

	acc, err := s.repoStore.GetAccount(ctx, in.Session.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get account from store", "username", in.Session.Username, "error", err)
		return decimal.Zero, goerror.NewServer(err)
	}

	return acc.Balance, nil
}

// ListAccountsInput requests the admin overview of customer accounts.
type ListAccountsInput struct {
	Session *entity.Session `validate:"required"`
}

// ListAccounts returns every customer account with its balance, sorted by
// username, for the admin dashboard.
func (s *Usecase) ListAccounts(ctx context.Context, in ListAccountsInput) ([]entity.Account, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureAllowed(in.Session, rbac.ObjectAccounts, rbac.ActionRead); err != nil {
		return nil, err
	}

	accounts, err := s.repoStore.ListAccounts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list accounts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return lo.Filter(accounts, func(acc entity.Account, _ int) bool {
		return acc.Role == entity.RoleCustomer
	}), nil
}
