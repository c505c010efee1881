// Package auth is the token-signing collaborator: it issues and
// verifies the refresh/access pair handed out at login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/parsianclinic/postop-api/internal/model"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token used for wrong purpose")
)

type JWTService interface {
	GenerateTokenPair(patient *model.Patient) (*model.TokenPair, error)
	ValidateAccessToken(token string) (*model.TokenClaims, error)
	ValidateRefreshToken(token string) (*model.TokenClaims, error)
}

type Config struct {
	Secret        string        `mapstructure:"secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry"`
}

type jwtService struct {
	cfg Config
}

func NewJWTService(cfg Config) JWTService {
	if cfg.AccessExpiry == 0 {
		cfg.AccessExpiry = 15 * time.Minute
	}
	if cfg.RefreshExpiry == 0 {
		cfg.RefreshExpiry = 24 * time.Hour
	}
	return &jwtService{cfg: cfg}
}

type claims struct {
	jwt.RegisteredClaims
	NationalID string `json:"national_id"`
	IsAdmin    bool   `json:"is_admin"`
	TokenUse   string `json:"token_use"`
}

func (s *jwtService) GenerateTokenPair(patient *model.Patient) (*model.TokenPair, error) {
	access, err := s.sign(patient, "access", s.cfg.Secret, s.cfg.AccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.sign(patient, "refresh", s.cfg.RefreshSecret, s.cfg.RefreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &model.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *jwtService) sign(patient *model.Patient, use, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   patient.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		NationalID: patient.NationalID,
		IsAdmin:    patient.IsAdmin,
		TokenUse:   use,
	})
	return token.SignedString([]byte(secret))
}

func (s *jwtService) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	return s.validate(token, "access", s.cfg.Secret)
}

func (s *jwtService) ValidateRefreshToken(token string) (*model.TokenClaims, error) {
	return s.validate(token, "refresh", s.cfg.RefreshSecret)
}

func (s *jwtService) validate(tokenStr, use, secret string) (*model.TokenClaims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if c.TokenUse != use {
		return nil, ErrWrongTokenUse
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &model.TokenClaims{
		UserID:     userID,
		NationalID: c.NationalID,
		IsAdmin:    c.IsAdmin,
	}, nil
}
