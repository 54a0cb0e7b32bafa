package address

import "errors"

var (
	ErrInvalidCEP  = errors.New("cep must have 8 digits")
	ErrCEPNotFound = errors.New("cep not found")
)
