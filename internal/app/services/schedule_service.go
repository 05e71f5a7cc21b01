package services

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/codec"
	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/repositories"
)

// ScheduleService answers schedule queries
type ScheduleService struct {
	scheduleRepo    *repositories.ScheduleRepository
	defaultSemester string
	logger          zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(scheduleRepo *repositories.ScheduleRepository, opts Options, logger zerolog.Logger) *ScheduleService {
	opts = opts.withDefaults()
	return &ScheduleService{
		scheduleRepo:    scheduleRepo,
		defaultSemester: opts.DefaultSemester,
		logger:          logger,
	}
}

// List returns the student's classes in file order
func (s *ScheduleService) List(ctx context.Context, studentID string) ([]models.CourseSchedule, error) {
	return s.scheduleRepo.FindByStudentID(ctx, studentID)
}

// CurrentSemester is the semester of the student's first schedule row, or
// the configured default when the student has none
func (s *ScheduleService) CurrentSemester(ctx context.Context, studentID string) (string, error) {
	classes, err := s.scheduleRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return "", err
	}
	return s.currentSemesterOf(classes), nil
}

func (s *ScheduleService) currentSemesterOf(classes []models.CourseSchedule) string {
	if len(classes) == 0 {
		return s.defaultSemester
	}
	return classes[0].Semester
}

// Schedule returns the classes with the semester and the total units
func (s *ScheduleService) Schedule(ctx context.Context, studentID string) (*dto.ScheduleResponse, error) {
	classes, err := s.scheduleRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range classes {
		total += c.Units
	}
	return &dto.ScheduleResponse{
		Semester:   s.currentSemesterOf(classes),
		TotalUnits: total,
		Classes:    classes,
	}, nil
}

// Timetable groups the classes by meeting day, Monday to Saturday, each day
// sorted by start time. Days without classes are included with an empty list.
func (s *ScheduleService) Timetable(ctx context.Context, studentID string) ([]dto.TimetableDay, error) {
	classes, err := s.scheduleRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[models.Day][]models.CourseSchedule, len(models.WeekDays))
	for _, c := range classes {
		for _, d := range codec.ParseDays(c.Days) {
			byDay[d] = append(byDay[d], c)
		}
	}

	days := make([]dto.TimetableDay, 0, len(models.WeekDays))
	for _, d := range models.WeekDays {
		list := byDay[d]
		if list == nil {
			list = []models.CourseSchedule{}
		}
		slices.SortStableFunc(list, func(a, b models.CourseSchedule) int {
			return a.Start.Minutes() - b.Start.Minutes()
		})
		days = append(days, dto.TimetableDay{Day: d, Name: d.Name(), Classes: list})
	}
	return days, nil
}

// UnitsBySubject maps a subject code to its units. Course numbers are
// stored with a space ("IT 211") and grade subject codes without ("IT211"),
// so both spellings are indexed.
func (s *ScheduleService) UnitsBySubject(ctx context.Context, studentID string) (map[string]int, error) {
	classes, err := s.scheduleRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	units := make(map[string]int, len(classes)*2)
	for _, c := range classes {
		units[c.CourseNumber] = c.Units
		units[compactCode(c.CourseNumber)] = c.Units
	}
	return units, nil
}

func compactCode(code string) string {
	return strings.ReplaceAll(code, " ", "")
}
