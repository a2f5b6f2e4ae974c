package strcase_test

import (
	"testing"

	"github.com/fintechlabs/teller/internal/pkg/strcase"
)

func TestToLowerSnake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Username", want: "username"},
		{in: "OTPSecret", want: "otp_secret"},
		{in: "PendingID", want: "pending_id"},
		{in: "userID", want: "user_id"},
		{in: "already_snake", want: "already_snake"},
		{in: "Amount2Send", want: "amount2_send"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			// Act
			got := strcase.ToLowerSnake(tc.in)

			// Assert
			if got != tc.want {
				t.Fatalf("ToLowerSnake(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
