package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fintechlabs/teller/internal/pkg/goerror"
)

// TOTPProvisionInput requests authenticator-app provisioning material for an
// account's existing OTP secret.
type TOTPProvisionInput struct {
	Username string `validate:"required"`
}

// TOTPProvisionOutput carries the otpauth URI and a scannable QR rendering.
type TOTPProvisionOutput struct {
	URI   string
	QRPNG []byte
}

// TOTPProvision rebuilds the provisioning URI for the account's secret and
// renders it as a QR code, the way an authenticator app expects to enroll.
// The secret itself never rotates, so this can be called any number of times.
func (s *Usecase) TOTPProvision(ctx context.Context, in TOTPProvisionInput) (*TOTPProvisionOutput, error) {
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoStore.GetAccount(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "provisioning for unknown account", "username", in.Username)
		return nil, goerror.NewBusinessError(goerror.ErrNotFound, goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get account from store", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	uri := s.totp.ProvisioningURI(acc.Username, acc.OTPSecret)

	qr, err := s.totp.QRCode(uri, 250)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TOTPProvisionOutput{URI: uri, QRPNG: qr}, nil
}
