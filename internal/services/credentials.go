package services

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/eduai-platform/internal/models"
)

// MinPasswordLength applies to new passwords only.
const MinPasswordLength = 6

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registrationForm struct {
	Name     string      `validate:"required"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,min=6"`
	Role     models.Role `validate:"omitempty,oneof=student educator researcher"`
}

var validate = validator.New()

// normalizeCredentials trims whitespace and lowercases the email.
func normalizeCredentials(c models.Credentials) models.Credentials {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Name = strings.TrimSpace(c.Name)
	return c
}

// ValidateLogin checks the shape of sign-in credentials.
func ValidateLogin(c models.Credentials) error {
	c = normalizeCredentials(c)
	return translate(validate.Struct(loginForm{Email: c.Email, Password: c.Password}))
}

// ValidateRegistration checks the shape of sign-up credentials.
func ValidateRegistration(c models.Credentials) error {
	c = normalizeCredentials(c)
	return translate(validate.Struct(registrationForm{
		Name:     c.Name,
		Email:    c.Email,
		Password: c.Password,
		Role:     c.Role,
	}))
}

// translate turns the first validator failure into a user-facing ValidationError.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "Name":
		return &ValidationError{Field: "name", Message: "Name is required for registration"}
	case "Email":
		if fe.Tag() == "required" {
			return &ValidationError{Field: "email", Message: "Email is required"}
		}
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	case "Password":
		if fe.Tag() == "min" {
			return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
		}
		return &ValidationError{Field: "password", Message: "Password is required"}
	case "Role":
		return &ValidationError{Field: "role", Message: "Role must be student, educator or researcher"}
	}
	return &ValidationError{Field: strings.ToLower(fe.Field()), Message: "Invalid " + strings.ToLower(fe.Field())}
}
