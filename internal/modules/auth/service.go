package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mediakit/internal/domain"
)

type jwtService interface {
	GenerateToken(agencyID int64, role string) (string, error)
}

// Service contains the identity logic for agency accounts. It exists so the
// rate-card core has an acting agency id to scope ownership checks against;
// anything fancier (verification, refresh rotation) lives with the identity
// collaborator.
type Service struct {
	agencies AgencyRepositoryInterface
	jwt      jwtService
}

func NewService(agencies AgencyRepositoryInterface, jwt jwtService) *Service {
	return &Service{agencies: agencies, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.Agency, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.agencies.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	agency := &domain.Agency{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Website:      req.Website,
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(agency.ID, domain.RoleAgency)
	if err != nil {
		return nil, "", err
	}
	return agency, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Agency, string, error) {
	agency, err := s.agencies.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(agency.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(agency.ID, domain.RoleAgency)
	if err != nil {
		return nil, "", err
	}
	return agency, token, nil
}

func (s *Service) GetMe(ctx context.Context, agencyID int64) (*domain.Agency, error) {
	return s.agencies.GetByID(ctx, agencyID)
}
