// Package otp provides helpers for generating and validating one-time
// passwords (OTP), focused on TOTP (time-based OTP).
//
// This is typically used for 2FA flows: generate a secret and URI for an
// authenticator app, render the URI as a QR code, then validate user-provided
// codes against the shared secret.
package otp
