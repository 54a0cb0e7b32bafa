package utils

import (
	"strings"
	"unicode"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NilIfBlank returns nil for empty or whitespace-only input.
func NilIfBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FirstNonBlank returns the first argument containing a non-space rune.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.IndexFunc(v, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0 {
			return v
		}
	}
	return ""
}
