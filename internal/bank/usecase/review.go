package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
	"github.com/fintechlabs/teller/internal/pkg/rbac"
	"github.com/samber/lo"
)

// ListPendingInput requests the open review queue.
type ListPendingInput struct {
	Session *entity.Session `validate:"required"`
}

// ListPending returns undecided transfers in insertion order, oldest first.
func (s *Usecase) ListPending(ctx context.Context, in ListPendingInput) ([]entity.PendingTransfer, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureAllowed(in.Session, rbac.ObjectPending, rbac.ActionRead); err != nil {
		return nil, err
	}

	all, err := s.repoStore.ListPending(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list pending transfers", "error", err)
		return nil, goerror.NewServer(err)
	}

	return lo.Filter(all, func(pt entity.PendingTransfer, _ int) bool {
		return pt.Status == entity.TransferStatusPending
	}), nil
}

// DecideInput identifies the pending transfer an admin is deciding.
type DecideInput struct {
	Session *entity.Session `validate:"required"`
	ID      int64           `validate:"required"`
}

// Approve applies an approve decision to a pending transfer.
//
// The sender's funds are re-validated at decision time: on a shortfall the
// record is rejected automatically and ErrInsufficientFundsAtApproval is
// returned. Terminal records (already approved or rejected) cannot be decided
// again and yield NotFound.
func (s *Usecase) Approve(ctx context.Context, in DecideInput) (*entity.PendingTransfer, error) {
	return s.decide(ctx, in, true)
}

// Reject marks a pending transfer rejected without touching balances.
func (s *Usecase) Reject(ctx context.Context, in DecideInput) (*entity.PendingTransfer, error) {
	return s.decide(ctx, in, false)
}

func (s *Usecase) decide(ctx context.Context, in DecideInput, approve bool) (*entity.PendingTransfer, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureAllowed(in.Session, rbac.ObjectPending, rbac.ActionDecide); err != nil {
		return nil, err
	}

	pt, err := s.repoStore.ResolvePending(ctx, in.ID, approve)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "decision for unknown or decided transfer", "pending_id", in.ID)
		return nil, goerror.NewBusinessError(goerror.ErrNotFound, goerror.CodeNotFound)
	}
	if errors.Is(err, entity.ErrInsufficientFundsAtApproval) {
		slog.WarnContext(ctx, "approval auto-rejected, sender funds short", "pending_id", in.ID)
		return nil, goerror.NewBusinessError(entity.ErrInsufficientFundsAtApproval, goerror.CodeUnprocessable)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve pending transfer", "pending_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "pending transfer decided",
		"pending_id", pt.ID, "status", pt.Status.String(), "decided_by", in.Session.Username)
	return pt, nil
}
