package utils

const (
	phoneMinDigits = 10
	phoneMaxDigits = 11
)

// ValidPhoneBR reports whether the number has a DDD plus 8 or 9 digits.
func ValidPhoneBR(phone string) bool {
	n := len(DigitsOnly(phone))
	return n >= phoneMinDigits && n <= phoneMaxDigits
}

// MaskPhoneBR renders the display form "(11) 91234-5678" / "(11) 1234-5678".
// Input beyond 11 digits is truncated. Partial input is masked progressively.
func MaskPhoneBR(phone string) string {
	d := DigitsOnly(phone)
	if len(d) > phoneMaxDigits {
		d = d[:phoneMaxDigits]
	}

	// 10-digit landlines split 4-4, mobiles split 5-4
	split := 6
	if len(d) > phoneMinDigits {
		split = 7
	}

	switch {
	case d == "":
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= split:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:split] + "-" + d[split:]
	}
}
