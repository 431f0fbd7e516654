package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models"
)

// AccountRequest is one tuple of a batch provisioning upload.
type AccountRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Roll       string `json:"roll"`
	Department string `json:"department"`
}

// AccountMetadata is the profile data attached to a created account.
type AccountMetadata struct {
	Name       string
	Roll       string
	Department string
	Role       models.Role
	Year       int
}

// IdentityProvider is the account-creation surface of the identity system.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string, meta AccountMetadata) error
}

// ProvisionService performs partial-failure-tolerant bulk account creation.
type ProvisionService struct {
	identity IdentityProvider
	logger   zerolog.Logger
}

// NewProvisionService creates a new provisioning service
func NewProvisionService(identity IdentityProvider, logger zerolog.Logger) *ProvisionService {
	return &ProvisionService{
		identity: identity,
		logger:   logger,
	}
}

// ProvisionStudents creates one account per request, strictly in input
// order, and returns one log line per tuple. A failed tuple is recorded and
// never aborts the rest of the batch. Every provisioned student starts in
// year 1; any year carried by the upload is ignored.
func (s *ProvisionService) ProvisionStudents(ctx context.Context, requests []AccountRequest) []string {
	logs := make([]string, 0, len(requests))

	for _, req := range requests {
		err := s.identity.CreateAccount(ctx, req.Email, req.Password, AccountMetadata{
			Name:       req.Name,
			Roll:       req.Roll,
			Department: req.Department,
			Role:       models.RoleStudent,
			Year:       1,
		})

		if err != nil {
			s.logger.Warn().Err(err).Str("email", req.Email).Msg("Provisioning entry failed")
			logs = append(logs, fmt.Sprintf("%s: %s", req.Email, err.Error()))
			continue
		}

		logs = append(logs, fmt.Sprintf("Created: %s", req.Email))
	}

	return logs
}
