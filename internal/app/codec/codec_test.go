package codec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

func TestIsHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   \t", true},
		{"=== STUDENT DATABASE ===", true},
		{"Format: id,last,first,middle,dob,password", true},
		{"2250001,Cruz,Juan,Santos,01/01/2000,pw", false},
		{" === indented banner", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHeader(tt.line), "line %q", tt.line)
	}
}

func TestAccountRoundTrip(t *testing.T) {
	tests := []models.Account{
		{ID: "2250001", LastName: "Cruz", FirstName: "Juan", MiddleName: "Santos", DateOfBirth: "01/15/2004", Password: "secret"},
		{ID: "2250002", LastName: "Reyes", FirstName: "Ana", DateOfBirth: "2/2/2003", Password: "pw", ProfileBlob: "Gender=Female;Religion=None;", HasProfile: true},
		{ID: "2250003", LastName: "Lim", FirstName: "Bo", DateOfBirth: "x", Password: "p", HasProfile: true},
	}
	for _, want := range tests {
		got, err := DecodeAccount(EncodeAccount(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeAccount(t *testing.T) {
	acc, err := DecodeAccount(" 2250001 , Cruz,Juan , , 01/15/2004,pw | Gender=Female;Cellphone=0917 ")
	require.NoError(t, err)
	assert.Equal(t, "2250001", acc.ID)
	assert.Equal(t, "", acc.MiddleName)
	assert.Equal(t, "pw", acc.Password)
	assert.Equal(t, "Gender=Female;Cellphone=0917", acc.ProfileBlob)
	assert.Equal(t, "Juan Cruz", acc.FullName())

	_, err = DecodeAccount("2250001,Cruz,Juan,Santos,01/15/2004")
	assert.True(t, errors.Is(err, apperrors.ErrMalformedRecord))

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, KindAccount, decodeErr.Kind)
}

func TestParseProfile(t *testing.T) {
	p := ParseProfile("Gender=Female;Unknown=x;Birthplace=Baguio City;broken;HomeTel=a=b")

	assert.Equal(t, "Female", p.Gender)
	assert.Equal(t, "Baguio City", p.Birthplace)
	assert.Equal(t, "a=b", p.HomeTel)
	assert.Equal(t, "Filipino", p.Citizenship)
	assert.Equal(t, "Roman Catholic", p.Religion)
	assert.Equal(t, "Single", p.CivilStatus)
	assert.Equal(t, "Filipino", p.Nationality)
	assert.Equal(t, "None", p.GuardianAddress)

	empty := ParseProfile("")
	assert.Equal(t, models.DefaultProfile(), empty)
	assert.Equal(t, "Male", empty.Gender)
}

func TestEncodeProfile(t *testing.T) {
	p := models.DefaultProfile()
	p.HomeAddress = "12 Session Rd; Baguio"
	p.Cellphone = "0917|555"

	blob := EncodeProfile(p)
	assert.Contains(t, blob, "Gender=Male;")
	assert.Contains(t, blob, "HomeAddress=12 Session Rd  Baguio;")
	assert.NotContains(t, blob, "|")

	back := ParseProfile(blob)
	assert.Equal(t, "0917 555", back.Cellphone)
	assert.Equal(t, p.Gender, back.Gender)
}

func TestCredential(t *testing.T) {
	c, err := DecodeCredential("ID: 2250001 | Password: pass word")
	require.NoError(t, err)
	assert.Equal(t, models.Credential{StudentID: "2250001", Password: "pass word"}, c)
	assert.Equal(t, "ID: 2250001 | Password: pass word", EncodeCredential(c))

	for _, bad := range []string{"2250001,pw", "ID: 2250001 | pw", "User: x | Password: y", "ID:  | Password: y"} {
		_, err := DecodeCredential(bad)
		assert.ErrorIs(t, err, apperrors.ErrMalformedRecord, bad)
	}
}

func TestAmount(t *testing.T) {
	v, err := ParseAmount("P 1,234.50")
	require.NoError(t, err)
	assert.Equal(t, 1234.50, v)

	assert.Contains(t, FormatAmount(1234.50), "1,234.50")
	assert.Equal(t, "P 1,234.50", FormatAmount(1234.5))
	assert.Equal(t, "P 0.00", FormatAmount(0))
	assert.Equal(t, "P 1,000,000.00", FormatAmount(1e6))

	_, err = ParseAmount("P abc")
	assert.Error(t, err)
}

func TestPaymentRoundTrip(t *testing.T) {
	tests := []models.PaymentTransaction{
		{Date: "08/11/2025 09:15 AM", Channel: "GCash", Reference: "FIRST SEMESTER 2025-2026 Enrollme.", Amount: 500, StudentID: "2250001"},
		{Date: "08/12/2025 02:40 PM", Channel: "BPI", Reference: "Tuition", Amount: 12345.67, StudentID: "2250002"},
	}
	for _, want := range tests {
		got, err := DecodePayment(EncodePayment(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodePayment(t *testing.T) {
	p, err := DecodePayment("08/11/2025 09:15 AM,UnionBank,Misc fees,P 1,234.50,2250001")
	require.NoError(t, err)
	assert.Equal(t, 1234.50, p.Amount)
	assert.Equal(t, "Misc fees", p.Reference)
	assert.Equal(t, "2250001", p.StudentID)

	p, err = DecodePayment("08/11/2025 09:15 AM,Cash,Books, Pens,P 75.00,2250009")
	require.NoError(t, err)
	assert.Equal(t, "Books,Pens", p.Reference)
	assert.Equal(t, 75.0, p.Amount)

	p, err = DecodePayment("08/11/2025 09:15 AM,Cash,Misc, P 1 fees,P 1,234.50,2250001")
	require.NoError(t, err)
	assert.Equal(t, "Misc,P 1 fees", p.Reference)
	assert.Equal(t, 1234.50, p.Amount)

	p, err = DecodePayment("08/11/2025 09:15 AM,BPI,P 500 promo,P 1,234,567.00,2250001")
	require.NoError(t, err)
	assert.Equal(t, "P 500 promo", p.Reference)
	assert.Equal(t, 1234567.0, p.Amount)

	_, err = DecodePayment("08/11/2025,Cash,ref,2250001")
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
	_, err = DecodePayment("08/11/2025,Cash,ref,lots,2250001")
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
}

func TestAttendance(t *testing.T) {
	date := time.Date(2025, time.September, 3, 0, 0, 0, 0, time.UTC)
	withRemarks := models.AttendanceRecord{StudentID: "2250001", SubjectCode: "IT211", SubjectName: "Data Structures", Date: date, Status: models.StatusAbsent, Remarks: "fever", HasRemarks: true}
	noRemarks := models.AttendanceRecord{StudentID: "2250001", SubjectCode: "IT211", SubjectName: "Data Structures", Date: date, Status: models.StatusPresent}

	for _, want := range []models.AttendanceRecord{withRemarks, noRemarks} {
		got, err := DecodeAttendance(EncodeAttendance(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "2250001,IT211,Data Structures,9/3/2025,Present", EncodeAttendance(noRemarks))

	_, err := DecodeAttendance("2250001,IT211,Data Structures,2025-09-03,Present")
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)

	assert.Equal(t, "late bus; traffic", SanitizeRemarks(" late bus, traffic\n"))
}

func TestSchedule(t *testing.T) {
	want := models.CourseSchedule{
		StudentID: "2250001", ClassCode: "9301", CourseNumber: "IT 211", Description: "Data Structures",
		Units: 3, Start: models.TimeOfDay{Hour: 7, Minute: 30}, End: models.TimeOfDay{Hour: 13, Minute: 0},
		Days: "TTHS", Room: "D412", Instructor: "Dela Cruz", Semester: "FIRST SEMESTER 2025-2026",
	}
	line := EncodeSchedule(want)
	assert.Equal(t, "2250001,9301,IT 211,Data Structures,3,7:30,13:00,TTHS,D412,Dela Cruz,FIRST SEMESTER 2025-2026", line)

	got, err := DecodeSchedule(line)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "1:00", got.End.Display())

	bad := []string{
		"2250001,9301,IT 211,Data Structures,3,7:30,13:00,TTHS,D412,Dela Cruz",
		"2250001,9301,IT 211,Data Structures,three,7:30,13:00,TTHS,D412,Dela Cruz,SEM",
		"2250001,9301,IT 211,Data Structures,3,7.30,13:00,TTHS,D412,Dela Cruz,SEM",
		"2250001,9301,IT 211,Data Structures,3,7:30,24:00,TTHS,D412,Dela Cruz,SEM",
	}
	for _, line := range bad {
		_, err := DecodeSchedule(line)
		assert.ErrorIs(t, err, apperrors.ErrMalformedRecord, line)
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		code string
		want []models.Day
	}{
		{"TTHS", []models.Day{models.Tuesday, models.Thursday, models.Saturday}},
		{"MWF", []models.Day{models.Monday, models.Wednesday, models.Friday}},
		{"th", []models.Day{models.Thursday}},
		{" MTWTHFS ", models.WeekDays},
		{"H", []models.Day{}},
		{"", []models.Day{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDays(tt.code), "code %q", tt.code)
	}
}

func TestGrade(t *testing.T) {
	want := models.GradeRecord{
		StudentID: "2250001", SubjectCode: "IT211", SubjectName: "Data Structures", Semester: "FIRST SEMESTER 2025-2026",
		Prelim: models.Grade(88.5), Midterm: models.Grade(90), Status: models.GradeInProgress,
	}
	line := EncodeGrade(want)
	assert.Equal(t, "2250001,IT211,Data Structures,FIRST SEMESTER 2025-2026,88.5,90,,,In Progress", line)

	got, err := DecodeGrade(line)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Nil(t, got.Final)

	got, err = DecodeGrade("2250001,IT101,Intro,SEM,-,null,1.75,1.5,Completed")
	require.NoError(t, err)
	assert.Nil(t, got.Prelim)
	assert.Nil(t, got.Midterm)
	assert.Equal(t, 1.5, *got.Final)
	assert.Equal(t, "1.50", FormatGrade(got.Final))
	assert.Equal(t, "-", FormatGrade(nil))

	_, err = DecodeGrade("2250001,IT101,Intro,SEM,A,,,,Completed")
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
}

func TestFirstField(t *testing.T) {
	assert.Equal(t, "2250001", FirstField(" 2250001 ,Cruz,Juan"))
	assert.Equal(t, "2250001", FirstField("2250001|Gender=Male"))
	assert.Equal(t, "", FirstField(""))
}
