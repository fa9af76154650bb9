package validate

import (
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator panics when a custom rule cannot be registered.
func NewCustomValidator() *CustomValidator {
	v, err := newValidator()
	if err != nil {
		panic(err)
	}
	return &CustomValidator{validator: v}
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("password", password); err != nil {
		return nil, errors.Wrap(err, "register password rule")
	}
	return v, nil
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// password requires at least one letter and one digit.
func password(fl validator.FieldLevel) bool {
	var letter, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}
