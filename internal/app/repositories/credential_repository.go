package repositories

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
)

// CredentialRepository maintains the credential mirror file. The mirror is
// derived from the account file and is never edited line by line.
type CredentialRepository struct {
	store  *flatfile.Store
	file   string
	logger zerolog.Logger
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(store *flatfile.Store, file string) *CredentialRepository {
	return &CredentialRepository{
		store:  store,
		file:   file,
		logger: repoLogger("credential_repository"),
	}
}

// FindAll returns the mirrored credentials in file order
func (r *CredentialRepository) FindAll(ctx context.Context) ([]models.Credential, error) {
	return decodeLines(ctx, r.store, r.file, r.logger, codec.DecodeCredential, nil)
}

// Sync rebuilds the mirror from accounts. Header lines at the top of the
// existing file are kept.
func (r *CredentialRepository) Sync(ctx context.Context, accounts []models.Account) error {
	err := r.store.Rewrite(ctx, r.file, func(lines []string) ([]string, error) {
		out := make([]string, 0, len(accounts)+2)
		for _, line := range lines {
			if !codec.IsHeader(line) || line == "" {
				break
			}
			out = append(out, line)
		}
		for _, a := range accounts {
			out = append(out, codec.EncodeCredential(models.Credential{StudentID: a.ID, Password: a.Password}))
		}
		return out, nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to rebuild credential mirror")
		return err
	}

	r.logger.Debug().Int("accounts", len(accounts)).Msg("Credential mirror rebuilt")
	return nil
}
