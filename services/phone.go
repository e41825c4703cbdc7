package services

import "strings"

// NormalizePhone canonicalizes a phone number for storage and lookup:
// 10 digits get a +1 prefix, 11 digits starting with 1 get a bare +, and any
// other digit string is passed through behind a +. It does not validate.
func NormalizePhone(phone string) string {
	digits := phoneDigits(phone)
	if len(digits) == 10 {
		return "+1" + digits
	}
	return "+" + digits
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasPhoneDigits reports whether phone contains at least one digit.
func HasPhoneDigits(phone string) bool {
	return phoneDigits(phone) != ""
}
