package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/app/session"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/auth"
	"github.com/yigit/isluportal/internal/pkg/validation"
)

// AuthService handles sign-in, registration and password changes
type AuthService struct {
	accountRepo    *repositories.AccountRepository
	credentialRepo *repositories.CredentialRepository
	jwtService     *auth.JWTService
	sessions       *session.Manager
	idGen          *IDGenerator
	opts           Options
	logger         zerolog.Logger

	// registerMu keeps ID generation and the account append together
	registerMu sync.Mutex
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo *repositories.AccountRepository,
	credentialRepo *repositories.CredentialRepository,
	jwtService *auth.JWTService,
	sessions *session.Manager,
	opts Options,
	logger zerolog.Logger,
) *AuthService {
	opts = opts.withDefaults()
	return &AuthService{
		accountRepo:    accountRepo,
		credentialRepo: credentialRepo,
		jwtService:     jwtService,
		sessions:       sessions,
		idGen:          NewIDGenerator(opts.IDPrefix, opts.Rand),
		opts:           opts,
		logger:         logger,
	}
}

// DatabaseExists reports whether the account file is present
func (s *AuthService) DatabaseExists() bool {
	return s.accountRepo.Exists()
}

// Authenticate checks a student ID and password against the account file.
// Unknown IDs and wrong passwords are reported the same way.
func (s *AuthService) Authenticate(ctx context.Context, studentID, password string) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, password) {
		s.logger.Info().Str("studentID", studentID).Msg("Rejected sign-in with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	return account, nil
}

// Login authenticates and opens a portal session bound to a new token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *session.Session, error) {
	if s.jwtService == nil || s.sessions == nil {
		return nil, nil, apperrors.NewUnsupportedError("token sign-in")
	}

	account, err := s.Authenticate(ctx, req.StudentID, req.Password)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.jwtService.GenerateAccessToken(account.ID)
	if err != nil {
		return nil, nil, err
	}
	sess := s.sessions.Create(token.SessionID, account.ID)

	s.logger.Info().Str("studentID", account.ID).Str("sessionID", sess.ID).Msg("Student signed in")
	return &dto.LoginResponse{
		Token: dto.TokenResponse{
			AccessToken: token.Token,
			TokenType:   "Bearer",
			ExpiresIn:   token.ExpiresIn,
		},
		Student: account,
	}, &sess, nil
}

// Logout ends the session; the token stops working with it
func (s *AuthService) Logout(sessionID string) {
	if s.sessions == nil {
		return
	}
	s.sessions.Delete(sessionID)
	s.logger.Debug().Str("sessionID", sessionID).Msg("Session closed")
}

// Register creates an account under a freshly generated student ID
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	password, err := s.preparePassword(req.Password)
	if err != nil {
		return nil, err
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	id, err := s.GenerateUniqueID(ctx)
	if err != nil {
		return nil, err
	}

	account := models.Account{
		ID:          id,
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		DateOfBirth: req.DateOfBirth,
		Password:    password,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.syncMirror(ctx)

	s.logger.Info().Str("studentID", id).Msg("Student registered")
	return &dto.RegisterResponse{StudentID: id, Student: &account}, nil
}

// ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, studentID string, req *dto.ChangePasswordRequest) error {
	if _, err := s.Authenticate(ctx, studentID, req.CurrentPassword); err != nil {
		return err
	}
	return s.ResetPassword(ctx, studentID, req.NewPassword)
}

// ResetPassword replaces the password without checking the current one
func (s *AuthService) ResetPassword(ctx context.Context, studentID, newPassword string) error {
	if !validation.IsFieldSafe(newPassword) {
		return apperrors.NewValidationError("password must not contain commas, pipes or line breaks")
	}
	if !validation.IsTrimmed(newPassword) {
		return apperrors.NewValidationError("password must not start or end with spaces")
	}
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	password, err := s.preparePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accountRepo.UpdatePassword(ctx, studentID, password); err != nil {
		return err
	}
	s.syncMirror(ctx)

	s.logger.Info().Str("studentID", studentID).Msg("Password changed")
	return nil
}

// GenerateUniqueID returns an ID not used by any line of the account file
func (s *AuthService) GenerateUniqueID(ctx context.Context) (string, error) {
	existing, err := s.accountRepo.ExistingIDs(ctx)
	if err != nil {
		return "", err
	}
	return s.idGen.Next(existing)
}

// SyncCredentials rebuilds the credential mirror from the account file and
// returns the number of mirrored accounts
func (s *AuthService) SyncCredentials(ctx context.Context) (int, error) {
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.credentialRepo.Sync(ctx, accounts); err != nil {
		return 0, err
	}
	return len(accounts), nil
}

// syncMirror refreshes the mirror after an account write. The account file
// is already written, so a failure here is logged and repaired by the next
// successful sync.
func (s *AuthService) syncMirror(ctx context.Context) {
	if _, err := s.SyncCredentials(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Credential mirror is out of date")
	}
}

func (s *AuthService) validatePassword(password string) error {
	if len(password) < s.opts.MinPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters long", s.opts.MinPasswordLength))
	}
	return nil
}

func (s *AuthService) preparePassword(password string) (string, error) {
	if !s.opts.HashPasswords {
		return password, nil
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hashed, nil
}
