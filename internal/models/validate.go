package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var payloadValidate = validator.New(validator.WithRequiredStructEnabled())

// ValidatePayload проверяет теги validate у входящих данных события.
func ValidatePayload(payload any) error {
	err := payloadValidate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewInvalidInputError(err.Error())
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return NewInvalidInputError("invalid payload: " + strings.Join(fields, ", "))
}
