package models

import (
	"fmt"
	"time"
)

// PaymentTransaction is one entry of the append-only payment log
type PaymentTransaction struct {
	Date      string  `json:"date"`
	Channel   string  `json:"channel"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	StudentID string  `json:"studentId"`
}

// AttendanceStatus is one of Present, Absent or Late
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLate    AttendanceStatus = "Late"
)

// AttendanceRecord is one class meeting for one student
type AttendanceRecord struct {
	StudentID   string           `json:"studentId"`
	SubjectCode string           `json:"subjectCode"`
	SubjectName string           `json:"subjectName"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	Remarks     string           `json:"remarks,omitempty"`
	HasRemarks  bool             `json:"-"`
}

// AttendanceSummary counts statuses for one subject or for all subjects
type AttendanceSummary struct {
	Subject string `json:"subject"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
}

// OverallSubject labels the summary that spans every subject
const OverallSubject = "Overall Attendance"

// Total returns the number of counted meetings
func (s AttendanceSummary) Total() int {
	return s.Present + s.Absent + s.Late
}

// Percentage is present/total*100, or 0 when nothing was counted
func (s AttendanceSummary) Percentage() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return float64(s.Present) / float64(total) * 100
}

// TimeOfDay is a wall-clock time without a date
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String renders the stored H:mm 24-hour form
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// Display renders the h:mm 12-hour form used on screen
func (t TimeOfDay) Display() string {
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, t.Minute)
}

// MarshalText implements encoding.TextMarshaler
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// CourseSchedule is one enrolled class
type CourseSchedule struct {
	StudentID    string    `json:"studentId"`
	ClassCode    string    `json:"classCode"`
	CourseNumber string    `json:"courseNumber"`
	Description  string    `json:"description"`
	Units        int       `json:"units"`
	Start        TimeOfDay `json:"start"`
	End          TimeOfDay `json:"end"`
	Days         string    `json:"days"`
	Room         string    `json:"room"`
	Instructor   string    `json:"instructor"`
	Semester     string    `json:"semester"`
}

// Day is a day-of-week token as used in schedule day codes
type Day string

const (
	Monday    Day = "M"
	Tuesday   Day = "T"
	Wednesday Day = "W"
	Thursday  Day = "TH"
	Friday    Day = "F"
	Saturday  Day = "S"
)

// WeekDays lists the tokens in calendar order
var WeekDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Name returns the English day name
func (d Day) Name() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	}
	return string(d)
}

// GradeStatus values seen in the grade file
const (
	GradeCompleted  = "Completed"
	GradeInProgress = "In Progress"
)

// GradeRecord holds the period grades of one subject. A nil grade has not
// been posted yet.
type GradeRecord struct {
	StudentID      string   `json:"studentId"`
	SubjectCode    string   `json:"subjectCode"`
	SubjectName    string   `json:"subjectName"`
	Semester       string   `json:"semester"`
	Prelim         *float64 `json:"prelim"`
	Midterm        *float64 `json:"midterm"`
	TentativeFinal *float64 `json:"tentativeFinal"`
	Final          *float64 `json:"final"`
	Status         string   `json:"status"`
}

// Grade returns a pointer to v, for building GradeRecord literals
func Grade(v float64) *float64 {
	return &v
}
