package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
	"github.com/campusgate/gatepass/internal/pkg/auth"
)

// ProfileStore is the persistence surface the identity layer needs.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// AuthService issues sessions and creates accounts. It implements the
// IdentityProvider interface consumed by the batch provisioning service.
type AuthService struct {
	profiles   ProfileStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(profiles ProfileStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		profiles:   profiles,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Profile, string, int, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, "", 0, apperrors.ErrInvalidCredentials
		}
		return nil, "", 0, fmt.Errorf("error during login: %w", err)
	}

	if !auth.CheckPassword(profile.Password, password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(profile)
	if err != nil {
		return nil, "", 0, err
	}

	s.logger.Info().Str("profileId", profile.ID).Str("role", string(profile.Role)).Msg("Session issued")
	return profile, token, expiresIn, nil
}

// GetProfile retrieves a profile by id.
func (s *AuthService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// CreateAccount creates one account with its profile metadata. It validates
// the tuple, hashes the password and stores the profile; the repository
// translates uniqueness violations into domain errors whose messages end up
// verbatim in the provisioning log.
func (s *AuthService) CreateAccount(ctx context.Context, email, password string, meta AccountMetadata) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address")
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if !meta.Role.IsValid() {
		return fmt.Errorf("invalid role %q", meta.Role)
	}

	if !models.IsValidDepartment(meta.Department) {
		return apperrors.ErrInvalidDepartment
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Email:      email,
		Password:   hash,
		Name:       meta.Name,
		Roll:       meta.Roll,
		Department: meta.Department,
		Role:       meta.Role,
	}

	if meta.Role == models.RoleStudent {
		year := strconv.Itoa(meta.Year)
		profile.Year = &year
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return err
	}

	s.logger.Info().Str("profileId", profile.ID).Str("email", email).Str("role", string(meta.Role)).Msg("Account created")
	return nil
}
