// Package services is the query façade over the flat-file repositories:
// it filters records by student, aggregates attendance, groups grades and
// builds the statement of accounts.
package services

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/app/session"
	"github.com/yigit/isluportal/internal/pkg/auth"
)

// Default values used when Options leaves a field empty
const (
	DefaultSemester         = "FIRST SEMESTER 2025-2026"
	DefaultPaymentReference = "FIRST SEMESTER 2025-2026 Enrollme."
	DefaultIDPrefix         = "225"
	DefaultUnits            = 3
	DefaultMinPasswordLen   = 4
)

// Options carries the portal settings the services need
type Options struct {
	DefaultSemester   string
	PaymentReference  string
	IDPrefix          string
	HashPasswords     bool
	MinPasswordLength int
	// Rand drives student ID generation; nil uses a randomly seeded source
	Rand *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.DefaultSemester == "" {
		o.DefaultSemester = DefaultSemester
	}
	if o.PaymentReference == "" {
		o.PaymentReference = DefaultPaymentReference
	}
	if o.IDPrefix == "" {
		o.IDPrefix = DefaultIDPrefix
	}
	if o.MinPasswordLength <= 0 {
		o.MinPasswordLength = DefaultMinPasswordLen
	}
	return o
}

// Services holds every service of the portal
type Services struct {
	Auth       *AuthService
	Profile    *ProfileService
	Schedule   *ScheduleService
	Attendance *AttendanceService
	Grade      *GradeService
	Payment    *PaymentService
	Export     *ExportService
}

// NewServices wires the services over repos. jwtService may be nil for
// callers that never issue tokens, such as the admin CLI.
func NewServices(
	repos *repositories.Repositories,
	sessions *session.Manager,
	jwtService *auth.JWTService,
	opts Options,
	logger zerolog.Logger,
) *Services {
	opts = opts.withDefaults()

	schedule := NewScheduleService(repos.ScheduleRepository, opts, logger)
	profile := NewProfileService(repos.AccountRepository, schedule, logger)
	grade := NewGradeService(repos.GradeRepository, schedule, logger)
	payment := NewPaymentService(repos.PaymentRepository, sessions, opts, logger)

	return &Services{
		Auth:       NewAuthService(repos.AccountRepository, repos.CredentialRepository, jwtService, sessions, opts, logger),
		Profile:    profile,
		Schedule:   schedule,
		Attendance: NewAttendanceService(repos.AttendanceRepository, logger),
		Grade:      grade,
		Payment:    payment,
		Export:     NewExportService(profile, schedule, grade, payment, logger),
	}
}
