package allocation

import (
	"fmt"
	"regexp"
)

// isinRegex is the ISIN shape: 2 letters, 9 letters or digits, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// IsISINShaped reports whether id has the ISIN shape, as is. The check digit
// is not verified, see ValidateISIN.
func IsISINShaped(id string) bool {
	return isinRegex.MatchString(id)
}

// ValidateISIN returns an error when id is not ISIN-shaped or when its last
// digit is not the check digit of the first eleven characters.
func ValidateISIN(id string) error {
	if !IsISINShaped(id) {
		return fmt.Errorf("%q is not an ISIN", id)
	}
	if want, got := isinCheckDigit(id[:11]), int(id[11]-'0'); want != got {
		return fmt.Errorf("invalid check digit: expected %d, got %d", want, got)
	}
	return nil
}

// isinCheckDigit is the Luhn digit of body once every letter is expanded to
// its two digit value (A=10 ... Z=35).
func isinCheckDigit(body string) int {
	var digits []int
	for _, c := range body {
		if c >= 'A' && c <= 'Z' {
			v := int(c-'A') + 10
			digits = append(digits, v/10, v%10)
			continue
		}
		digits = append(digits, int(c-'0'))
	}
	sum := 0
	for i := range digits {
		d := digits[len(digits)-1-i]
		if i%2 == 0 {
			if d *= 2; d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
