package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// excuseKeywords mark an absence remark as a medical excuse
var excuseKeywords = []string{"sick", "medical", "doctor", "gastro"}

// AttendanceService answers attendance queries
type AttendanceService struct {
	attendanceRepo *repositories.AttendanceRepository
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendanceRepo *repositories.AttendanceRepository, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// List returns the student's attendance in file order
func (s *AttendanceService) List(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	return s.attendanceRepo.FindByStudentID(ctx, studentID)
}

// SummaryBySubject counts statuses per subject name in first-seen order.
// Statuses are matched exactly; anything else is not counted.
func (s *AttendanceService) SummaryBySubject(ctx context.Context, studentID string) ([]models.AttendanceSummary, error) {
	records, err := s.attendanceRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return summarizeBySubject(records), nil
}

func summarizeBySubject(records []models.AttendanceRecord) []models.AttendanceSummary {
	index := make(map[string]int)
	summaries := make([]models.AttendanceSummary, 0)
	for _, r := range records {
		i, ok := index[r.SubjectName]
		if !ok {
			i = len(summaries)
			index[r.SubjectName] = i
			summaries = append(summaries, models.AttendanceSummary{Subject: r.SubjectName})
		}
		switch r.Status {
		case models.StatusPresent:
			summaries[i].Present++
		case models.StatusAbsent:
			summaries[i].Absent++
		case models.StatusLate:
			summaries[i].Late++
		}
	}
	return summaries
}

// Overall counts statuses across every subject. Unlike the per-subject
// summary the statuses are matched case-insensitively.
func (s *AttendanceService) Overall(ctx context.Context, studentID string) (models.AttendanceSummary, error) {
	records, err := s.attendanceRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return models.AttendanceSummary{}, err
	}
	return summarizeOverall(records), nil
}

func summarizeOverall(records []models.AttendanceRecord) models.AttendanceSummary {
	summary := models.AttendanceSummary{Subject: models.OverallSubject}
	for _, r := range records {
		switch strings.ToLower(string(r.Status)) {
		case "present":
			summary.Present++
		case "absent":
			summary.Absent++
		case "late":
			summary.Late++
		}
	}
	return summary
}

// Absences lists absences and late arrivals grouped by subject, plus the
// absences excused on medical grounds
func (s *AttendanceService) Absences(ctx context.Context, studentID string) (*dto.AbsencesResponse, error) {
	records, err := s.attendanceRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AbsencesResponse{
		Excused: []models.AttendanceRecord{},
		Groups:  []dto.AbsenceGroup{},
	}
	index := make(map[string]int)
	for _, r := range records {
		if r.Status != models.StatusAbsent && r.Status != models.StatusLate {
			continue
		}
		key := r.SubjectCode + " - " + r.SubjectName
		i, ok := index[key]
		if !ok {
			i = len(resp.Groups)
			index[key] = i
			resp.Groups = append(resp.Groups, dto.AbsenceGroup{Subject: key})
		}
		resp.Groups[i].Records = append(resp.Groups[i].Records, r)

		if r.Status == models.StatusAbsent && isExcused(r.Remarks) {
			resp.Excused = append(resp.Excused, r)
		}
	}
	return resp, nil
}

func isExcused(remarks string) bool {
	lower := strings.ToLower(remarks)
	for _, kw := range excuseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SubmitReason stores the student's reason as the remarks of one meeting
func (s *AttendanceService) SubmitReason(ctx context.Context, studentID string, req *dto.AttendanceReasonRequest) error {
	date, err := codec.ParseAttendanceDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError("date must be in M/d/yyyy form")
	}
	reason := codec.SanitizeRemarks(req.Reason)
	if reason == "" {
		return apperrors.NewValidationError("reason is required")
	}

	if err := s.attendanceRepo.UpdateRemarks(ctx, studentID, req.SubjectCode, date, reason); err != nil {
		return err
	}
	s.logger.Info().Str("studentID", studentID).Str("subject", req.SubjectCode).Msg("Attendance reason submitted")
	return nil
}

// UpdateRecord is the faculty entry point for marking attendance. Faculty
// access is not part of this portal, so it always fails.
func (s *AttendanceService) UpdateRecord(ctx context.Context, req *dto.FacultyAttendanceRequest) error {
	s.logger.Warn().Str("studentID", req.StudentID).Str("subject", req.SubjectCode).Msg("Faculty attendance update requested")
	return apperrors.NewUnsupportedError("faculty attendance update")
}
