package repositories

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
	"github.com/yigit/isluportal/internal/pkg/logger"
)

// Files names the flat file behind each record kind
type Files struct {
	Accounts    string
	Credentials string
	Payments    string
	Attendance  string
	Schedules   string
	Grades      string
}

// DefaultFiles returns the standard portal file names
func DefaultFiles() Files {
	return Files{
		Accounts:    "Database.txt",
		Credentials: "UserPasswordID.txt",
		Payments:    "paymentLogs.txt",
		Attendance:  "attendanceRecords.txt",
		Schedules:   "courseSchedules.txt",
		Grades:      "gradeRecords.txt",
	}
}

// Repositories holds all the repository instances
type Repositories struct {
	Store *flatfile.Store

	AccountRepository    *AccountRepository
	CredentialRepository *CredentialRepository
	PaymentRepository    *PaymentRepository
	AttendanceRepository *AttendanceRepository
	ScheduleRepository   *ScheduleRepository
	GradeRepository      *GradeRepository
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store *flatfile.Store, files Files) *Repositories {
	return &Repositories{
		Store: store,

		AccountRepository:    NewAccountRepository(store, files.Accounts),
		CredentialRepository: NewCredentialRepository(store, files.Credentials),
		PaymentRepository:    NewPaymentRepository(store, files.Payments),
		AttendanceRepository: NewAttendanceRepository(store, files.Attendance),
		ScheduleRepository:   NewScheduleRepository(store, files.Schedules),
		GradeRepository:      NewGradeRepository(store, files.Grades),
	}
}

// decodeLines scans file, decodes every record line and keeps those accepted
// by keep. Header lines are skipped. Malformed lines are skipped as well and
// logged with their line number so bad data is visible to operators.
func decodeLines[T any](
	ctx context.Context,
	store *flatfile.Store,
	file string,
	log zerolog.Logger,
	decode func(string) (T, error),
	keep func(T) bool,
) ([]T, error) {
	out := make([]T, 0)
	err := store.Scan(ctx, file, func(lineNo int, line string) error {
		if codec.IsHeader(line) {
			return nil
		}
		rec, err := decode(line)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Int("line", lineNo).Msg("Skipping malformed record")
			return nil
		}
		if keep == nil || keep(rec) {
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func repoLogger(name string) zerolog.Logger {
	return logger.Component(name)
}
