package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// GradeService answers grade and transcript queries
type GradeService struct {
	gradeRepo *repositories.GradeRepository
	schedule  *ScheduleService
	logger    zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(gradeRepo *repositories.GradeRepository, schedule *ScheduleService, logger zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo: gradeRepo,
		schedule:  schedule,
		logger:    logger,
	}
}

// List returns every grade row of the student in file order
func (s *GradeService) List(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	return s.gradeRepo.FindByStudentID(ctx, studentID)
}

// CurrentGrades returns the grade rows whose semester equals the student's
// current semester exactly
func (s *GradeService) CurrentGrades(ctx context.Context, studentID string) (*dto.GradesResponse, error) {
	semester, err := s.schedule.CurrentSemester(ctx, studentID)
	if err != nil {
		return nil, err
	}
	grades, err := s.gradeRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	current := make([]models.GradeRecord, 0, len(grades))
	for _, g := range grades {
		if g.Semester == semester {
			current = append(current, g)
		}
	}
	return &dto.GradesResponse{Semester: semester, Grades: current}, nil
}

// Transcript groups completed subjects with a final grade by semester, in
// the order the semesters first appear. Units come from the schedule when
// the subject is found there, otherwise the default of three.
func (s *GradeService) Transcript(ctx context.Context, studentID string) ([]dto.TranscriptSemester, error) {
	grades, err := s.gradeRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	units, err := s.schedule.UnitsBySubject(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return groupTranscript(grades, units), nil
}

func groupTranscript(grades []models.GradeRecord, units map[string]int) []dto.TranscriptSemester {
	index := make(map[string]int)
	semesters := make([]dto.TranscriptSemester, 0)
	for _, g := range grades {
		if g.Status != models.GradeCompleted || g.Final == nil {
			continue
		}
		i, ok := index[g.Semester]
		if !ok {
			i = len(semesters)
			index[g.Semester] = i
			semesters = append(semesters, dto.TranscriptSemester{Semester: g.Semester})
		}

		u, ok := units[g.SubjectCode]
		if !ok {
			u = DefaultUnits
		}
		semesters[i].Entries = append(semesters[i].Entries, dto.TranscriptEntry{
			SubjectCode: g.SubjectCode,
			SubjectName: g.SubjectName,
			FinalGrade:  *g.Final,
			Display:     codec.FormatGrade(g.Final),
			Units:       u,
		})
	}
	return semesters
}

// UpdateGrade is the faculty entry point for posting grades. Faculty access
// is not part of this portal, so it always fails.
func (s *GradeService) UpdateGrade(ctx context.Context, req *dto.FacultyGradeRequest) error {
	s.logger.Warn().Str("studentID", req.StudentID).Str("subject", req.SubjectCode).Msg("Faculty grade update requested")
	return apperrors.NewUnsupportedError("faculty grade update")
}
