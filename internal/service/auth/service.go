package auth

import (
	"context"
	"errors"

	"github.com/parsianclinic/postop-api/internal/model"
	"github.com/parsianclinic/postop-api/internal/repository"
	"github.com/parsianclinic/postop-api/pkg/auth"
)

// Service authenticates patients by identity pair and issues token
// pairs through the signing collaborator.
type Service struct {
	patientRepo repository.PatientRepository
	jwtSvc      auth.JWTService
}

func NewService(patientRepo repository.PatientRepository, jwtSvc auth.JWTService) *Service {
	return &Service{
		patientRepo: patientRepo,
		jwtSvc:      jwtSvc,
	}
}

// Login matches both identity fields against a single active record.
// Every miss collapses into ErrInvalidCredentials: the caller cannot
// tell an unknown national ID from a wrong phone number.
func (s *Service) Login(ctx context.Context, nationalID, phoneNumber string) (*model.TokenPair, error) {
	patient, err := s.patientRepo.GetByIdentity(ctx, nationalID, phoneNumber)
	if err != nil {
		if errors.Is(err, model.ErrPatientNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	tokens, err := s.jwtSvc.GenerateTokenPair(patient)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	patient, err := s.patientRepo.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrPatientNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !patient.IsActive {
		return nil, model.ErrInvalidCredentials
	}

	return s.jwtSvc.GenerateTokenPair(patient)
}

// ValidateToken is used by the auth middleware.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	return s.jwtSvc.ValidateAccessToken(token)
}
