package profile

type Profile struct {
	ID       string  `json:"id"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// Prefill holds checkout defaults taken from the signed-in customer.
// CustomerPhone is already masked for display.
type Prefill struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
}

type profileRow struct {
	ID       string  `json:"id,omitempty"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type roleRow struct {
	Role string `json:"role"`
}
