package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

var inputValidator = validator.New()

// validateInput runs the struct's `validate` tags and reports failures as a
// *domain.ValidationError. Callers trim string fields first so blank input
// fails "required".
func validateInput(in any) error {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		fields = append(fields, strings.ToLower(name[:1])+name[1:])
	}
	return &domain.ValidationError{Fields: fields}
}
