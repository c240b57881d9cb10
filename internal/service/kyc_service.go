package service

import (
	"context"

	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// KYCServiceImpl implements ports.KYCService. Profiles pass straight
// through to the verification provider; nothing is stored locally.
type KYCServiceImpl struct {
	gateway ports.RailGateway
	log     zerolog.Logger
}

// NewKYCService creates a new KYCServiceImpl.
func NewKYCService(gateway ports.RailGateway, log zerolog.Logger) *KYCServiceImpl {
	return &KYCServiceImpl{gateway: gateway, log: log}
}

// Submit forwards an identity profile and returns the provider's
// verification reference.
func (s *KYCServiceImpl) Submit(ctx context.Context, profile ports.KYCProfile) (string, error) {
	if profile.FirstName == "" || profile.LastName == "" {
		return "", apperror.Validation("first and last name are required")
	}
	if profile.IDType == "" || profile.IDNumber == "" {
		return "", apperror.Validation("id type and number are required")
	}

	ref, err := s.gateway.SubmitKYC(ctx, profile)
	if err != nil {
		return "", apperror.ErrGatewayFailure(err)
	}

	s.log.Info().Str("verification_ref", ref).Msg("kyc profile submitted")
	return ref, nil
}
