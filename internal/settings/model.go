package settings

const (
	KeyBannerURL = "main_banner_url"
	KeyLogoURL   = "main_logo_url"
	KeyLogoSize  = "main_logo_size_dp"
	KeyStoreName = "store_name"

	DefaultStoreName = "Sabor & Praticidade"
	DefaultLogoSize  = 24
	MinLogoSize      = 16
	MaxLogoSize      = 96
)

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Branding is everything the storefront header needs. Unset values fall
// back to the defaults.
type Branding struct {
	StoreName string
	LogoURL   string
	LogoSize  int
	BannerURL string
}
