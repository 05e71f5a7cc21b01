package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/isluportal/internal/app/models"
)

const scheduleFields = 11

// ParseClock parses an H:mm 24-hour time such as "7:30" or "13:00"
func ParseClock(s string) (models.TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return models.TimeOfDay{}, fmt.Errorf("time %q is not H:mm", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return models.TimeOfDay{}, fmt.Errorf("hour in %q out of range", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return models.TimeOfDay{}, fmt.Errorf("minute in %q out of range", s)
	}
	return models.TimeOfDay{Hour: hour, Minute: minute}, nil
}

// DecodeSchedule parses the eleven schedule columns
func DecodeSchedule(line string) (models.CourseSchedule, error) {
	parts, err := splitFields(KindSchedule, line, scheduleFields)
	if err != nil {
		return models.CourseSchedule{}, err
	}

	units, err := strconv.Atoi(parts[4])
	if err != nil {
		return models.CourseSchedule{}, malformed(KindSchedule, "units %q: %v", parts[4], err)
	}
	start, err := ParseClock(parts[5])
	if err != nil {
		return models.CourseSchedule{}, malformed(KindSchedule, "start: %v", err)
	}
	end, err := ParseClock(parts[6])
	if err != nil {
		return models.CourseSchedule{}, malformed(KindSchedule, "end: %v", err)
	}

	return models.CourseSchedule{
		StudentID:    parts[0],
		ClassCode:    parts[1],
		CourseNumber: parts[2],
		Description:  parts[3],
		Units:        units,
		Start:        start,
		End:          end,
		Days:         parts[7],
		Room:         parts[8],
		Instructor:   parts[9],
		Semester:     parts[10],
	}, nil
}

// EncodeSchedule renders a schedule line
func EncodeSchedule(s models.CourseSchedule) string {
	return strings.Join([]string{
		s.StudentID, s.ClassCode, s.CourseNumber, s.Description,
		strconv.Itoa(s.Units), s.Start.String(), s.End.String(),
		s.Days, s.Room, s.Instructor, s.Semester,
	}, fieldSep)
}

// ParseDays turns a day code such as "MWF" or "TTHS" into day tokens in
// calendar order. "TH" is taken out before single letters are read, so
// "TTHS" is Tuesday, Thursday and Saturday. Unknown letters are ignored.
func ParseDays(code string) []models.Day {
	code = strings.ToUpper(strings.TrimSpace(code))

	found := make(map[models.Day]bool)
	if strings.Contains(code, "TH") {
		found[models.Thursday] = true
		code = strings.ReplaceAll(code, "TH", "")
	}
	for _, r := range code {
		switch d := models.Day(string(r)); d {
		case models.Monday, models.Tuesday, models.Wednesday, models.Friday, models.Saturday:
			found[d] = true
		}
	}

	days := make([]models.Day, 0, len(found))
	for _, d := range models.WeekDays {
		if found[d] {
			days = append(days, d)
		}
	}
	return days
}
