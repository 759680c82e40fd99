// internal/model/phone.go
package model

import "strings"

// FormatPhone normalizes a Kenyan phone number to international form:
//
//	0712345678   -> +254712345678
//	254712345678 -> +254712345678
//	712345678    -> +254712345678
//	+254712345678 stays as-is
//
// Anything else is passed through with a leading "+" added if missing.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}

	var cleaned strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}
	digits := cleaned.String()

	switch {
	case strings.HasPrefix(digits, "254"):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+254" + digits[1:]
	case len(digits) == 9:
		return "+254" + digits
	}

	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}
