package dispatch

import "strings"

// NormalizePhone reduces a free-form phone string to the ten digits the
// SMS gateway expects. US-only heuristic: strip everything but digits,
// drop a leading country-code 1 from an 11-digit number, and keep only
// the last ten digits of anything longer. Shorter strings pass through
// unchanged, no padding.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}
