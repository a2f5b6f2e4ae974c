package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fintechlabs/teller/internal/bank/entity"
	"github.com/fintechlabs/teller/internal/pkg/goerror"
)

// VerifyOTPInput is the one-time-password step of the login flow.
type VerifyOTPInput struct {
	Session *entity.Session `validate:"required"`
	Code    string          `validate:"required"`
}

// VerifyOTP performs the second authentication step.
//
// The session must be in StateAwaitingOTP. On a code mismatch the session
// stays there so the user can retry with the next code; there is no attempt
// limit. On success the session moves to StateAuthenticated, carrying the
// account's role and a signed session token. This step never mutates the
// store.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*entity.Session, error) {
	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Session.State != entity.StateAwaitingOTP {
		slog.WarnContext(ctx, "otp step out of order", "state", in.Session.State.String())
		return nil, goerror.NewBusinessError(entity.ErrNotAuthenticated, goerror.CodeUnauthorized)
	}

	if !isSixDigits(in.Code) {
		slog.WarnContext(ctx, "otp code has invalid format", "username", in.Session.Username)
		return nil, goerror.NewBusinessError(entity.ErrInvalidOTP, goerror.CodeUnauthorized)
	}

	acc, err := s.repoStore.GetAccount(ctx, in.Session.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account vanished between login steps", "username", in.Session.Username)
		return nil, goerror.NewBusinessError(entity.ErrInvalidCredentials, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get account from store", "username", in.Session.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, acc.OTPSecret, s.clock.Now()) {
		slog.WarnContext(ctx, "otp code rejected", "username", in.Session.Username)
		return nil, goerror.NewBusinessError(entity.ErrInvalidOTP, goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(acc.Username, acc.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "username", acc.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	in.Session.State = entity.StateAuthenticated
	in.Session.Role = acc.Role
	in.Session.Token = token

	return in.Session, nil
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}

	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	return true
}
