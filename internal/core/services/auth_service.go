package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"h4g-voucherhub/internal/adapters/persistence/models"
	"h4g-voucherhub/internal/adapters/persistence/repositories"
	"h4g-voucherhub/internal/config"
	"h4g-voucherhub/internal/core/domain"
	"h4g-voucherhub/internal/pkg/jwt"
	"h4g-voucherhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService authenticates residents and admins and issues token pairs
type AuthService struct {
	residentRepo repositories.ResidentRepository
	jwtConfig    config.JWTConfig
}

// NewAuthService creates a new auth service
func NewAuthService(residentRepo repositories.ResidentRepository, jwtConfig config.JWTConfig) *AuthService {
	return &AuthService{
		residentRepo: residentRepo,
		jwtConfig:    jwtConfig,
	}
}

// LoginInput represents a login request
type LoginInput struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// TokenPair holds an access token and its refresh token
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult represents a successful authentication
type AuthResult struct {
	User   *models.ResidentResponse `json:"user"`
	Tokens TokenPair                `json:"tokens"`
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	resident, err := s.residentRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, resident.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(resident)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Login: %s (%s)", resident.UserID, resident.Role)

	return &AuthResult{
		User:   resident.ToResponse(),
		Tokens: *tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.jwtConfig.RefreshSecret)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	resident, err := s.residentRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	tokens, err := s.issueTokens(resident)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:   resident.ToResponse(),
		Tokens: *tokens,
	}, nil
}

// Me returns the authenticated resident's profile
func (s *AuthService) Me(ctx context.Context, userID string) (*models.ResidentResponse, error) {
	resident, err := s.residentRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResidentNotFound
		}
		return nil, err
	}
	return resident.ToResponse(), nil
}

// issueTokens generates a fresh access/refresh pair for a resident
func (s *AuthService) issueTokens(resident *models.Resident) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		resident.UserID, resident.Name, resident.Role,
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		resident.UserID, uuid.New().String(),
		s.jwtConfig.RefreshSecret, s.jwtConfig.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
