package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-list/models"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

const (
	MaxNameLength     = 50
	MinPasswordLength = 6
)

type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignUpRequest:
		return v.validateSignUp(value, fields...)
	case *models.SignUpRequest:
		return v.validateSignUp(*value, fields...)

	case models.SignInRequest:
		return v.validateSignIn(value)
	case *models.SignInRequest:
		return v.validateSignIn(*value)

	case models.ForgotPasswordRequest:
		return requireEmail(value.Email)
	case *models.ForgotPasswordRequest:
		return requireEmail(value.Email)

	case models.ResetPasswordRequest:
		return validatePassword(value.Password)
	case *models.ResetPasswordRequest:
		return validatePassword(value.Password)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignUp(request models.SignUpRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(request.Name)
			if name == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(name) > MaxNameLength {
				return ErrNameTooLong
			}
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// sign-in only checks presence; a wrong email format is just bad credentials
func (v *UserValidator) validateSignIn(request models.SignInRequest) error {
	if strings.TrimSpace(request.Email) == "" || request.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}

	return nil
}

// unknown addresses are reported as not found, so only presence is checked
func requireEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
