package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/shopspring/decimal"
)

// TransferInput is a transfer request from the session's account.
type TransferInput struct {
	Session  *entity.Session `validate:"required"`
	Receiver string          `validate:"required"`
	Amount   decimal.Decimal
}

// Transfer validates and routes a transfer from the authenticated sender.
//
// Amounts at or below the auto-approve threshold debit/credit immediately and
// persist. Larger amounts are queued as a pending transfer for admin review
// with no balance change; funds are not reserved while the decision is
// outstanding, so a sender can over-commit across several pending requests.
func (s *Usecase) Transfer(ctx context.Context, in TransferInput) (*entity.TransferResult, error) {
	in.Receiver = strings.TrimSpace(in.Receiver)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureAllowed(in.Session, rbac.ObjectTransfer, rbac.ActionCreate); err != nil {
		return nil, err
	}

	sender := in.Session.Username

	if in.Receiver == sender {
		return nil, goerror.NewBusinessError(entity.ErrInvalidTransfer, goerror.CodeUnprocessable)
	}

	if !in.Amount.IsPositive() {
		return nil, goerror.NewBusinessError(entity.ErrInvalidAmount, goerror.CodeUnprocessable)
	}

	if _, err := s.repoStore.GetAccount(ctx, in.Receiver); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "transfer to unknown receiver", "sender", sender, "receiver", in.Receiver)
			return nil, goerror.NewBusinessError(entity.ErrUnknownReceiver, goerror.CodeUnprocessable)
		}
		slog.ErrorContext(ctx, "failed to get receiver from store", "receiver", in.Receiver, "error", err)
		return nil, goerror.NewServer(err)
	}

	acc, err := s.repoStore.GetAccount(ctx, sender)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get sender from store", "sender", sender, "error", err)
		return nil, goerror.NewServer(err)
	}

	if acc.Balance.LessThan(in.Amount) {
		slog.WarnContext(ctx, "transfer exceeds sender balance", "sender", sender)
		return nil, goerror.NewBusinessError(entity.ErrInsufficientFunds, goerror.CodeUnprocessable)
	}

	if in.Amount.LessThanOrEqual(s.autoApproveThreshold()) {
		if err := s.repoStore.MoveFunds(ctx, sender, in.Receiver, in.Amount); err != nil {
			if errors.Is(err, entity.ErrInsufficientFunds) {
				return nil, goerror.NewBusinessError(entity.ErrInsufficientFunds, goerror.CodeUnprocessable)
			}
			slog.ErrorContext(ctx, "failed to move funds", "sender", sender, "receiver", in.Receiver, "error", err)
			return nil, goerror.NewServer(err)
		}

		slog.InfoContext(ctx, "transfer completed", "sender", sender, "receiver", in.Receiver)
		return &entity.TransferResult{Completed: true}, nil
	}

	pt := entity.PendingTransfer{
		ID:       s.uid.Generate(),
		Sender:   sender,
		Receiver: in.Receiver,
		Amount:   in.Amount,
		Status:   entity.TransferStatusPending,
	}

	if err := s.repoStore.AppendPending(ctx, pt); err != nil {
		slog.ErrorContext(ctx, "failed to queue pending transfer", "sender", sender, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "transfer queued for approval", "sender", sender, "receiver", in.Receiver, "pending_id", pt.ID)
	return &entity.TransferResult{PendingID: pt.ID}, nil
}
