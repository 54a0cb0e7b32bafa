package auth

import "marmita-storefront/internal/address"

// Metadata is the free-form user_metadata written at sign-up.
type Metadata struct {
	FullName     string `json:"full_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

func (m Metadata) Address() address.Address {
	return address.Address{
		CEP:          m.CEP,
		Street:       m.Street,
		Number:       m.Number,
		Complement:   m.Complement,
		Neighborhood: m.Neighborhood,
		City:         m.City,
		State:        m.State,
	}
}

type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Metadata Metadata `json:"user_metadata"`
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Address  address.Address
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type signUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data"`
}
