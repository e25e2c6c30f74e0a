package utils

import "strings"

// ExtractLocality parses a free-form phone number string into its 3-digit
// locality prefix (US area code), used to bias number search toward the
// caller's region. It returns ("", false) when no locality can be derived;
// that is not an error, the caller falls back to a default locality.
//
// All supported input shapes (E.164, parenthesized, dashed, bare digits)
// reduce to digit-stripping first, so one code path handles them all.
func ExtractLocality(phone string) (string, bool) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) < 10 {
		return "", false
	}
	// 11 digits with a leading 1 is a US country code; the area code follows.
	if len(d) == 11 && d[0] == '1' {
		return d[1:4], true
	}
	return d[:3], true
}
