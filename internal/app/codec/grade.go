package codec

import (
	"strconv"
	"strings"

	"github.com/yigit/isluportal/internal/app/models"
)

const gradeFields = 9

// DecodeGrade parses
// studentID,subjectCode,subjectName,semester,prelim,midterm,tentativeFinal,final,status.
// A grade column that is empty, "-" or "null" has not been posted.
func DecodeGrade(line string) (models.GradeRecord, error) {
	parts, err := splitFields(KindGrade, line, gradeFields)
	if err != nil {
		return models.GradeRecord{}, err
	}

	grades := make([]*float64, 4)
	for i := range grades {
		raw := parts[4+i]
		if isBlankGrade(raw) {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.GradeRecord{}, malformed(KindGrade, "grade %q: %v", raw, err)
		}
		grades[i] = &v
	}

	return models.GradeRecord{
		StudentID:      parts[0],
		SubjectCode:    parts[1],
		SubjectName:    parts[2],
		Semester:       parts[3],
		Prelim:         grades[0],
		Midterm:        grades[1],
		TentativeFinal: grades[2],
		Final:          grades[3],
		Status:         parts[8],
	}, nil
}

func isBlankGrade(s string) bool {
	return s == "" || s == "-" || strings.EqualFold(s, "null")
}

// EncodeGrade renders a grade line; unposted grades become empty columns
func EncodeGrade(g models.GradeRecord) string {
	return strings.Join([]string{
		g.StudentID, g.SubjectCode, g.SubjectName, g.Semester,
		formatGrade(g.Prelim), formatGrade(g.Midterm),
		formatGrade(g.TentativeFinal), formatGrade(g.Final),
		g.Status,
	}, fieldSep)
}

func formatGrade(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatGrade renders a grade for display with two decimals, or "-"
func FormatGrade(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
