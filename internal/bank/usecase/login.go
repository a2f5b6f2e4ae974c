package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
)

// LoginInput is the credential step of the login flow.
type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Login performs the first authentication step: username plus password.
//
// On success the returned session is in StateAwaitingOTP; the caller must
// complete VerifyOTP before the session grants anything. An unknown username
// and a wrong password produce the same failure reason so the response never
// reveals which field was wrong; both return a session in StateFailed, from
// which the caller starts over. This step never mutates the store.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*entity.Session, error) {
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoStore.GetAccount(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown account", "username", in.Username)
		return &entity.Session{State: entity.StateFailed}, goerror.NewBusinessError(entity.ErrInvalidCredentials, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get account from store", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(acc.Password, in.Password) {
		slog.WarnContext(ctx, "password does not match", "username", in.Username)
		return &entity.Session{State: entity.StateFailed}, goerror.NewBusinessError(entity.ErrInvalidCredentials, goerror.CodeUnauthorized)
	}

	return &entity.Session{
		State:    entity.StateAwaitingOTP,
		Username: acc.Username,
		Role:     acc.Role,
	}, nil
}
