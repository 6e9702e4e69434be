package services

import (
	"context"
	"errors"
	"fmt"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/helpers"
	"boutique-tailoring/models"
)

type CredentialStore interface {
	GetMasterByEmail(ctx context.Context, email string) (models.Master, error)
}

type TokenIssuer interface {
	GenerateAllTokens(email, name string, uid int64, role string) (string, string, error)
}

type AuthService struct {
	users  CredentialStore
	tokens TokenIssuer
}

func NewAuthService(users CredentialStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks the password against the stored hash. Unknown email and wrong
// password give the same error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (models.LoginResult, error) {
	if err := helpers.Validate(req); err != nil {
		return models.LoginResult{}, err
	}
	user, err := s.users.GetMasterByEmail(ctx, req.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.LoginResult{}, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return models.LoginResult{}, err
	}
	if !helpers.VerifyPassword(user.Password, req.Password) {
		return models.LoginResult{}, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, refresh, err := s.tokens.GenerateAllTokens(user.Email, user.DisplayName(), user.ID, user.Role)
	if err != nil {
		return models.LoginResult{}, err
	}
	return models.LoginResult{User: user, Token: token, RefreshToken: refresh}, nil
}
