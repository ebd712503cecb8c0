package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-list/internal/validators"
	"github.com/MKhiriev/go-todo-list/models"
)

// AuthValidationService validates sign-up and sign-in requests before
// handing them to the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) SignUp(ctx context.Context, request models.SignUpRequest) (models.User, models.Token, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("error during sign up validation: %w", err)
	}
	return v.inner.SignUp(ctx, request)
}

func (v *AuthValidationService) SignIn(ctx context.Context, request models.SignInRequest) (models.User, models.Token, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("error during sign in validation: %w", err)
	}
	return v.inner.SignIn(ctx, request)
}

func (v *AuthValidationService) Me(ctx context.Context, userID string) (models.User, error) {
	return v.inner.Me(ctx, userID)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	return v.inner.Authenticate(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}
