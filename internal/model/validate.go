package model

import "github.com/go-playground/validator/v10"

// validate is shared; the validator is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation on a request DTO. It is called once at
// the network boundary instead of per-form checks scattered through the UI.
func Validate(v any) error {
	return validate.Struct(v)
}
