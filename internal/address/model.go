package address

import (
	"strings"

	"marmita-storefront/internal/utils"
)

// Address is a Brazilian delivery address as collected at sign-up.
type Address struct {
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Format renders the one-line form used to prefill checkout:
// "Rua A, 10 | Centro | São Paulo - SP | CEP 01001-000". Blank parts are skipped.
func (a Address) Format() string {
	var parts []string

	if line := joinNonBlank(", ", a.Street, a.Number); line != "" {
		parts = append(parts, line)
	}
	if !utils.IsBlank(a.Neighborhood) {
		parts = append(parts, strings.TrimSpace(a.Neighborhood))
	}
	if cityState := joinNonBlank(" - ", a.City, a.State); cityState != "" {
		parts = append(parts, cityState)
	}
	if !utils.IsBlank(a.CEP) {
		parts = append(parts, "CEP "+FormatCEP(a.CEP))
	}

	return strings.Join(parts, " | ")
}

// Metadata returns the non-blank fields keyed as the auth service stores them.
func (a Address) Metadata() map[string]string {
	out := map[string]string{}
	for k, v := range map[string]string{
		"cep":          utils.DigitsOnly(a.CEP),
		"street":       a.Street,
		"number":       a.Number,
		"complement":   a.Complement,
		"neighborhood": a.Neighborhood,
		"city":         a.City,
		"state":        a.State,
	} {
		if !utils.IsBlank(v) {
			out[k] = strings.TrimSpace(v)
		}
	}
	return out
}

// FormatCEP renders 8-digit postal codes as 00000-000 and leaves anything else as typed.
func FormatCEP(cep string) string {
	d := utils.DigitsOnly(cep)
	if len(d) != 8 {
		return strings.TrimSpace(cep)
	}
	return d[:5] + "-" + d[5:]
}

func joinNonBlank(sep string, values ...string) string {
	var kept []string
	for _, v := range values {
		if !utils.IsBlank(v) {
			kept = append(kept, strings.TrimSpace(v))
		}
	}
	return strings.Join(kept, sep)
}
