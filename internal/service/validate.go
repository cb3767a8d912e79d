package service

import (
	"github.com/go-playground/validator/v10"
)

// validate checks presence of required input fields. Only "required" tags are
// used: strings must be non-empty and pointers non-nil.
var validate = validator.New()

// present reports whether every required field of input is set.
func present(input any) bool {
	return validate.Struct(input) == nil
}
