package codec

import (
	"strings"
	"time"

	"github.com/yigit/isluportal/internal/app/models"
)

// AttendanceDateLayout is the M/d/yyyy layout of the attendance date column
const AttendanceDateLayout = "1/2/2006"

const attendanceFields = 5

// ParseAttendanceDate parses an M/d/yyyy date
func ParseAttendanceDate(s string) (time.Time, error) {
	return time.Parse(AttendanceDateLayout, strings.TrimSpace(s))
}

// DecodeAttendance parses studentID,subjectCode,subjectName,date,status[,remarks].
// Everything after the status column is the remarks text.
func DecodeAttendance(line string) (models.AttendanceRecord, error) {
	parts, err := splitFields(KindAttendance, line, attendanceFields)
	if err != nil {
		return models.AttendanceRecord{}, err
	}

	date, err := ParseAttendanceDate(parts[3])
	if err != nil {
		return models.AttendanceRecord{}, malformed(KindAttendance, "date %q: %v", parts[3], err)
	}

	rec := models.AttendanceRecord{
		StudentID:   parts[0],
		SubjectCode: parts[1],
		SubjectName: parts[2],
		Date:        date,
		Status:      models.AttendanceStatus(parts[4]),
	}
	if len(parts) > attendanceFields {
		rec.Remarks = strings.Join(parts[attendanceFields:], fieldSep)
		rec.HasRemarks = true
	}
	return rec, nil
}

// EncodeAttendance renders an attendance line. The remarks column is written
// when it was present on read or is non-empty.
func EncodeAttendance(r models.AttendanceRecord) string {
	fields := []string{
		r.StudentID, r.SubjectCode, r.SubjectName,
		r.Date.Format(AttendanceDateLayout), string(r.Status),
	}
	if r.HasRemarks || r.Remarks != "" {
		fields = append(fields, r.Remarks)
	}
	return strings.Join(fields, fieldSep)
}

// SanitizeRemarks flattens free text so it fits in the remarks column
func SanitizeRemarks(s string) string {
	return strings.TrimSpace(remarksReplacer.Replace(s))
}

var remarksReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", ",", ";")
