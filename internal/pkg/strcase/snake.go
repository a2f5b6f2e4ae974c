package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a string to snake_case (initialism-safe).
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]

			// word boundary: lower/digit followed by upper (userID -> user_id),
			// or end of an acronym (OTPCode -> otp_code)
			boundary := unicode.IsLower(prev) || unicode.IsDigit(prev)
			if !boundary && i+1 < len(runes) && unicode.IsUpper(prev) && unicode.IsLower(runes[i+1]) {
				boundary = true
			}

			if boundary {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
