package services

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// ProfileService reads and edits the student's identity and profile
type ProfileService struct {
	accountRepo *repositories.AccountRepository
	schedule    *ScheduleService
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(accountRepo *repositories.AccountRepository, schedule *ScheduleService, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		accountRepo: accountRepo,
		schedule:    schedule,
		logger:      logger,
	}
}

// GetStudentInfo returns the account of studentID
func (s *ProfileService) GetStudentInfo(ctx context.Context, studentID string) (*models.Account, error) {
	return s.accountRepo.FindByID(ctx, studentID)
}

// GetStudent returns the identity block with the derived current semester
func (s *ProfileService) GetStudent(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	semester, err := s.schedule.CurrentSemester(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.StudentResponse{
		Account:         account,
		FullName:        account.FullName(),
		CurrentSemester: semester,
	}, nil
}

// GetProfile parses the stored profile; missing keys take their defaults
func (s *ProfileService) GetProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		Student: account,
		Profile: codec.ParseProfile(account.ProfileBlob),
	}, nil
}

// UpdateProfile merges updates into the stored profile and writes the
// whole profile back. Keys are profile key names such as "HomeAddress".
func (s *ProfileService) UpdateProfile(ctx context.Context, studentID string, updates map[string]string) (*dto.ProfileResponse, error) {
	if len(updates) == 0 {
		return nil, apperrors.NewValidationError("no profile fields to update")
	}

	account, err := s.accountRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	profile := codec.ParseProfile(account.ProfileBlob)
	var unknown []string
	for key, value := range updates {
		value = strings.TrimSpace(value)
		if value == "" {
			value = models.ProfileDefault(key)
		}
		if !profile.Set(key, value) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperrors.NewValidationError("unknown profile fields: " + strings.Join(unknown, ", "))
	}

	blob := codec.EncodeProfile(profile)
	if err := s.accountRepo.UpdateProfile(ctx, studentID, blob); err != nil {
		return nil, err
	}
	account.ProfileBlob = blob
	account.HasProfile = true

	s.logger.Info().Str("studentID", studentID).Int("fields", len(updates)).Msg("Profile updated")
	return &dto.ProfileResponse{Student: account, Profile: codec.ParseProfile(blob)}, nil
}

// ListStudents returns every account in file order
func (s *ProfileService) ListStudents(ctx context.Context) ([]models.Account, error) {
	return s.accountRepo.FindAll(ctx)
}
