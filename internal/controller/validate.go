// internal/controller/validate.go
package controller

import "github.com/nyaruka/phonenumbers"

// ValidKenyanPhone reports whether the input parses as a valid Kenyan
// number. Accepts local forms ("0712...", "712...") and international
// ("+254712...").
func ValidKenyanPhone(phone string) bool {
	num, err := phonenumbers.Parse(phone, "KE")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
