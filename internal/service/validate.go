package service

import (
	"fmt"
	"net/mail"

	"github.com/dtroode/userdir-server/internal/model"
)

const (
	maxNameLength  = 100
	maxEmailLength = 256
)

// validateUserParams checks create/update input before it reaches the
// store and returns a *model.ValidationError listing every violated
// field, or nil if the params are well-formed.
func validateUserParams(params model.UserParams) error {
	var fields []model.FieldError

	fields = append(fields, validateName("firstName", params.FirstName)...)
	fields = append(fields, validateName("lastName", params.LastName)...)
	fields = append(fields, validateEmail(params.Email)...)

	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

func validateName(field, value string) []model.FieldError {
	if value == "" {
		return []model.FieldError{{Field: field, Message: "is required"}}
	}
	if len(value) > maxNameLength {
		return []model.FieldError{{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxNameLength)}}
	}
	return nil
}

func validateEmail(value string) []model.FieldError {
	if value == "" {
		return []model.FieldError{{Field: "email", Message: "is required"}}
	}
	if len(value) > maxEmailLength {
		return []model.FieldError{{Field: "email", Message: fmt.Sprintf("must be at most %d characters", maxEmailLength)}}
	}
	if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
		return []model.FieldError{{Field: "email", Message: "must be a valid email address"}}
	}
	return nil
}
