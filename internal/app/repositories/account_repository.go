package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
)

// AccountRepository reads and writes the account file, the authoritative
// store of student identity, password and profile.
type AccountRepository struct {
	store  *flatfile.Store
	file   string
	logger zerolog.Logger
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(store *flatfile.Store, file string) *AccountRepository {
	return &AccountRepository{
		store:  store,
		file:   file,
		logger: repoLogger("account_repository"),
	}
}

// Exists reports whether the account file is present
func (r *AccountRepository) Exists() bool {
	return r.store.Exists(r.file)
}

// FindAll returns every well-formed account in file order
func (r *AccountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	return decodeLines(ctx, r.store, r.file, r.logger, codec.DecodeAccount, nil)
}

// FindByID returns the first account with the given ID
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	accounts, err := decodeLines(ctx, r.store, r.file, r.logger, codec.DecodeAccount, func(a models.Account) bool {
		return a.ID == id
	})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return &accounts[0], nil
}

// ExistingIDs returns the first field of every record line, including lines
// that do not decode, so a generated ID never collides with anything on disk.
func (r *AccountRepository) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	err := r.store.Scan(ctx, r.file, func(_ int, line string) error {
		if codec.IsHeader(line) {
			return nil
		}
		if id := codec.FirstField(line); id != "" {
			ids[id] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Create appends a new account line. The ID must not be taken.
func (r *AccountRepository) Create(ctx context.Context, account models.Account) error {
	ids, err := r.ExistingIDs(ctx)
	if err != nil {
		return err
	}
	if _, taken := ids[account.ID]; taken {
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("student ID %s already exists", account.ID))
	}

	if err := r.store.Append(ctx, r.file, codec.EncodeAccount(account)); err != nil {
		r.logger.Error().Err(err).Str("studentID", account.ID).Msg("Failed to append account")
		return err
	}
	r.logger.Info().Str("studentID", account.ID).Msg("Account created")
	return nil
}

// UpdatePassword replaces the password on every line of the account
func (r *AccountRepository) UpdatePassword(ctx context.Context, id, password string) error {
	return r.update(ctx, id, func(a *models.Account) {
		a.Password = password
	})
}

// UpdateProfile replaces the profile blob on every line of the account
func (r *AccountRepository) UpdateProfile(ctx context.Context, id, blob string) error {
	return r.update(ctx, id, func(a *models.Account) {
		a.ProfileBlob = blob
		a.HasProfile = true
	})
}

// update re-encodes matching lines after mutate and leaves every other line,
// headers included, exactly as it was.
func (r *AccountRepository) update(ctx context.Context, id string, mutate func(*models.Account)) error {
	matched := 0
	err := r.store.Rewrite(ctx, r.file, func(lines []string) ([]string, error) {
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = line
			if codec.IsHeader(line) {
				continue
			}
			account, err := codec.DecodeAccount(line)
			if err != nil || account.ID != id {
				continue
			}
			mutate(&account)
			out[i] = codec.EncodeAccount(account)
			matched++
		}
		if matched == 0 {
			return nil, apperrors.ErrStudentNotFound
		}
		return out, nil
	})
	if err != nil {
		return err
	}

	r.logger.Info().Str("studentID", id).Int("lines", matched).Msg("Account updated")
	return nil
}
