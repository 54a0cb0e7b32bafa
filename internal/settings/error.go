package settings

import "errors"

var (
	ErrInvalidLogoSize = errors.New("logo size must be between 16 and 96")
	ErrBlankValue      = errors.New("setting value must not be blank")
)
