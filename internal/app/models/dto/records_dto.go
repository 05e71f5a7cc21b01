package dto

import "github.com/yigit/isluportal/internal/app/models"

// ScheduleResponse lists the enrolled classes of the current semester
type ScheduleResponse struct {
	Semester   string                  `json:"semester" example:"FIRST SEMESTER 2025-2026"`
	TotalUnits int                     `json:"totalUnits" example:"21"`
	Classes    []models.CourseSchedule `json:"classes"`
}

// TimetableDay holds the classes meeting on one day, earliest first
type TimetableDay struct {
	Day     models.Day              `json:"day" example:"TH"`
	Name    string                  `json:"name" example:"Thursday"`
	Classes []models.CourseSchedule `json:"classes"`
}

// AttendanceSummaryResponse adds the derived totals to a summary
type AttendanceSummaryResponse struct {
	Subject    string  `json:"subject"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage" example:"50"`
}

// NewAttendanceSummaryResponse converts a summary for output
func NewAttendanceSummaryResponse(s models.AttendanceSummary) AttendanceSummaryResponse {
	return AttendanceSummaryResponse{
		Subject:    s.Subject,
		Present:    s.Present,
		Absent:     s.Absent,
		Late:       s.Late,
		Total:      s.Total(),
		Percentage: s.Percentage(),
	}
}

// AttendanceReasonRequest submits a reason for an absence or late arrival
type AttendanceReasonRequest struct {
	SubjectCode string `json:"subjectCode" binding:"required,fieldsafe"`
	Date        string `json:"date" binding:"required" example:"9/3/2025"`
	Reason      string `json:"reason" binding:"required,max=200"`
}

// AbsenceGroup lists the absences and late arrivals of one subject
type AbsenceGroup struct {
	Subject string                    `json:"subject" example:"IT211 - Data Structures"`
	Records []models.AttendanceRecord `json:"records"`
}

// AbsencesResponse is the absences and tardiness view
type AbsencesResponse struct {
	Excused []models.AttendanceRecord `json:"excused"`
	Groups  []AbsenceGroup            `json:"groups"`
}

// GradesResponse lists the grades of one semester
type GradesResponse struct {
	Semester string               `json:"semester"`
	Grades   []models.GradeRecord `json:"grades"`
}

// TranscriptEntry is one completed subject
type TranscriptEntry struct {
	SubjectCode string  `json:"subjectCode"`
	SubjectName string  `json:"subjectName"`
	FinalGrade  float64 `json:"finalGrade"`
	Display     string  `json:"display" example:"1.75"`
	Units       int     `json:"units" example:"3"`
}

// TranscriptSemester groups completed subjects by semester
type TranscriptSemester struct {
	Semester string            `json:"semester"`
	Entries  []TranscriptEntry `json:"entries"`
}

// FacultyAttendanceRequest marks a student's attendance for a meeting
type FacultyAttendanceRequest struct {
	StudentID   string `json:"studentId" binding:"required,studentid"`
	SubjectCode string `json:"subjectCode" binding:"required,fieldsafe"`
	Date        string `json:"date" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=Present Absent Late"`
}

// FacultyGradeRequest posts a period grade
type FacultyGradeRequest struct {
	StudentID   string  `json:"studentId" binding:"required,studentid"`
	SubjectCode string  `json:"subjectCode" binding:"required,fieldsafe"`
	Period      string  `json:"period" binding:"required,oneof=prelim midterm tentativeFinal final"`
	Grade       float64 `json:"grade" binding:"required,gt=0"`
}
