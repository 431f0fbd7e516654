package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campusgate/gatepass/internal/app/models"
	appRepos "github.com/campusgate/gatepass/internal/app/repositories"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
	"github.com/campusgate/gatepass/internal/pkg/auth"
)

// Default operator accounts created on first startup. Students are never
// seeded; they arrive through batch provisioning.
var defaultAccounts = []struct {
	email      string
	password   string
	name       string
	roll       string
	department string
	role       appModels.Role
}{
	{
		email:      "hod.cse@campus.edu",
		password:   "ChangeMe!Hod1",
		name:       "Default HOD",
		roll:       "HOD-CSE",
		department: "Computer Science",
		role:       appModels.RoleHOD,
	},
	{
		email:      "guard.main@campus.edu",
		password:   "ChangeMe!Guard1",
		name:       "Main Gate Guard",
		roll:       "GUARD-01",
		department: "Administration",
		role:       appModels.RoleGuard,
	},
}

// CreateDefaultData creates the default operator accounts if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	profileRepo := appRepos.NewProfileRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default operator accounts...")
	var finalErr error

	for _, account := range defaultAccounts {
		hash, err := auth.HashPassword(account.password)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error hashing default account password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		profile := &appModels.Profile{
			Email:      account.email,
			Password:   hash,
			Name:       account.name,
			Roll:       account.roll,
			Department: account.department,
			Role:       account.role,
		}

		err = profileRepo.Create(ctx, profile)
		if err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrRollAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		lgr.Info().Str("email", account.email).Str("role", string(account.role)).Msg("Default account created")
	}

	return finalErr
}
