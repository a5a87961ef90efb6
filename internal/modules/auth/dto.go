package auth

import "petstat/internal/domain"

type SignInRequest struct {
	IDToken  string              `json:"id_token" binding:"required"`
	Provider domain.ProviderType `json:"provider" binding:"required"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RotateRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SignOutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UserPublic struct {
	ID        int64            `json:"id"`
	Email     *string          `json:"email,omitempty"`
	LoginType domain.LoginType `json:"login_type"`
}
