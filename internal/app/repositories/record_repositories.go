package repositories

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
)

// PaymentRepository handles the append-only payment log
type PaymentRepository struct {
	store  *flatfile.Store
	file   string
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(store *flatfile.Store, file string) *PaymentRepository {
	return &PaymentRepository{store: store, file: file, logger: repoLogger("payment_repository")}
}

// FindByStudentID returns the student's payments in log order
func (r *PaymentRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.PaymentTransaction, error) {
	return decodeLines(ctx, r.store, r.file, r.logger, codec.DecodePayment, func(p models.PaymentTransaction) bool {
		return p.StudentID == studentID
	})
}

// Append adds one payment to the end of the log
func (r *PaymentRepository) Append(ctx context.Context, p models.PaymentTransaction) error {
	if err := r.store.Append(ctx, r.file, codec.EncodePayment(p)); err != nil {
		r.logger.Error().Err(err).Str("studentID", p.StudentID).Msg("Failed to log payment")
		return err
	}
	return nil
}

// AttendanceRepository reads attendance and updates student remarks
type AttendanceRepository struct {
	store  *flatfile.Store
	file   string
	logger zerolog.Logger
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(store *flatfile.Store, file string) *AttendanceRepository {
	return &AttendanceRepository{store: store, file: file, logger: repoLogger("attendance_repository")}
}

// FindByStudentID returns the student's attendance in file order
func (r *AttendanceRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	return decodeLines(ctx, r.store, r.file, r.logger, codec.DecodeAttendance, func(a models.AttendanceRecord) bool {
		return a.StudentID == studentID
	})
}

// UpdateRemarks sets the remarks of the meeting identified by student,
// subject code and date. Only matching lines are re-encoded.
func (r *AttendanceRepository) UpdateRemarks(ctx context.Context, studentID, subjectCode string, date time.Time, remarks string) error {
	matched := 0
	err := r.store.Rewrite(ctx, r.file, func(lines []string) ([]string, error) {
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = line
			if codec.IsHeader(line) {
				continue
			}
			rec, err := codec.DecodeAttendance(line)
			if err != nil {
				continue
			}
			if rec.StudentID != studentID || rec.SubjectCode != subjectCode || !sameDay(rec.Date, date) {
				continue
			}
			rec.Remarks = remarks
			rec.HasRemarks = true
			out[i] = codec.EncodeAttendance(rec)
			matched++
		}
		if matched == 0 {
			return nil, apperrors.NewNotFoundError("no attendance record for " + subjectCode + " on " + date.Format(codec.AttendanceDateLayout))
		}
		return out, nil
	})
	if err != nil {
		return err
	}

	r.logger.Info().Str("studentID", studentID).Str("subject", subjectCode).Msg("Attendance remarks updated")
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ScheduleRepository reads enrolled classes
type ScheduleRepository struct {
	store  *flatfile.Store
	file   string
	logger zerolog.Logger
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(store *flatfile.Store, file string) *ScheduleRepository {
	return &ScheduleRepository{store: store, file: file, logger: repoLogger("schedule_repository")}
}

// FindByStudentID returns the student's classes in file order
func (r *ScheduleRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.CourseSchedule, error) {
	return decodeLines(ctx, r.store, r.file, r.logger, codec.DecodeSchedule, func(s models.CourseSchedule) bool {
		return s.StudentID == studentID
	})
}

// GradeRepository reads grade records
type GradeRepository struct {
	store  *flatfile.Store
	file   string
	logger zerolog.Logger
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(store *flatfile.Store, file string) *GradeRepository {
	return &GradeRepository{store: store, file: file, logger: repoLogger("grade_repository")}
}

// FindByStudentID returns the student's grades in file order
func (r *GradeRepository) FindByStudentID(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	return decodeLines(ctx, r.store, r.file, r.logger, codec.DecodeGrade, func(g models.GradeRecord) bool {
		return g.StudentID == studentID
	})
}
