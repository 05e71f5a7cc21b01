package repositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/isluportal/internal/app/models"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
)

const accountsFixture = `=== STUDENT DATABASE ===
Format: id,last,first,middle,dob,password|profile
2250001,Cruz,Juan,Santos,01/15/2004,alpha
2250002,Reyes,Ana,Lopez,02/02/2003,beta|Gender=Female;Religion=Iglesia;
broken line
2250003 , Lim , Bo , , 03/03/2002 , gamma
`

func setup(t *testing.T, files map[string]string) (*Repositories, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	store := flatfile.NewStore(flatfile.NewResolver(dir))
	return NewRepositories(store, DefaultFiles()), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestAccountRepository_FindAll(t *testing.T) {
	repos, _ := setup(t, map[string]string{"Database.txt": accountsFixture})
	ctx := context.Background()

	accounts, err := repos.AccountRepository.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "2250001", accounts[0].ID)
	assert.Equal(t, "Gender=Female;Religion=Iglesia;", accounts[1].ProfileBlob)
	assert.Equal(t, "gamma", accounts[2].Password)

	again, err := repos.AccountRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, accounts, again)
	assert.True(t, repos.AccountRepository.Exists())
}

func TestAccountRepository_FindByID(t *testing.T) {
	repos, _ := setup(t, map[string]string{"Database.txt": accountsFixture})

	acc, err := repos.AccountRepository.FindByID(context.Background(), "2250003")
	require.NoError(t, err)
	assert.Equal(t, "Lim", acc.LastName)

	_, err = repos.AccountRepository.FindByID(context.Background(), "9999999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAccountRepository_MissingFile(t *testing.T) {
	repos, _ := setup(t, nil)
	ctx := context.Background()

	accounts, err := repos.AccountRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.False(t, repos.AccountRepository.Exists())

	ids, err := repos.AccountRepository.ExistingIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAccountRepository_ExistingIDs(t *testing.T) {
	repos, _ := setup(t, map[string]string{"Database.txt": accountsFixture})

	ids, err := repos.AccountRepository.ExistingIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 4)
	assert.Contains(t, ids, "2250001")
	assert.Contains(t, ids, "broken line")
	assert.NotContains(t, ids, "=== STUDENT DATABASE ===")
}

func TestAccountRepository_UpdatePasswordIsolation(t *testing.T) {
	repos, dir := setup(t, map[string]string{"Database.txt": accountsFixture})
	path := filepath.Join(dir, "Database.txt")

	require.NoError(t, repos.AccountRepository.UpdatePassword(context.Background(), "2250002", "newpass"))

	before := strings.Split(accountsFixture, "\n")
	after := strings.Split(readFile(t, path), "\n")
	require.Equal(t, len(before), len(after))
	for i := range before {
		if strings.HasPrefix(before[i], "2250002") {
			assert.Equal(t, "2250002,Reyes,Ana,Lopez,02/02/2003,newpass|Gender=Female;Religion=Iglesia;", after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "line %d changed", i)
	}
}

func TestAccountRepository_UpdateUnknownLeavesFile(t *testing.T) {
	repos, dir := setup(t, map[string]string{"Database.txt": accountsFixture})

	err := repos.AccountRepository.UpdatePassword(context.Background(), "1234567", "x")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Equal(t, accountsFixture, readFile(t, filepath.Join(dir, "Database.txt")))
}

func TestAccountRepository_UpdateProfileReplacesBlob(t *testing.T) {
	repos, _ := setup(t, map[string]string{"Database.txt": accountsFixture})
	ctx := context.Background()

	require.NoError(t, repos.AccountRepository.UpdateProfile(ctx, "2250002", "Gender=Female;"))
	require.NoError(t, repos.AccountRepository.UpdateProfile(ctx, "2250001", "Birthplace=Baguio;"))

	acc, err := repos.AccountRepository.FindByID(ctx, "2250002")
	require.NoError(t, err)
	assert.Equal(t, "Gender=Female;", acc.ProfileBlob)
	assert.Equal(t, "beta", acc.Password)

	acc, err = repos.AccountRepository.FindByID(ctx, "2250001")
	require.NoError(t, err)
	assert.Equal(t, "Birthplace=Baguio;", acc.ProfileBlob)
}

func TestAccountRepository_Create(t *testing.T) {
	repos, _ := setup(t, map[string]string{"Database.txt": accountsFixture})
	ctx := context.Background()

	newAcc := models.Account{ID: "2250004", LastName: "Tan", FirstName: "Lee", DateOfBirth: "04/04/2004", Password: "delta"}
	require.NoError(t, repos.AccountRepository.Create(ctx, newAcc))

	got, err := repos.AccountRepository.FindByID(ctx, "2250004")
	require.NoError(t, err)
	assert.Equal(t, newAcc, *got)

	err = repos.AccountRepository.Create(ctx, newAcc)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}

func TestCredentialRepository_Sync(t *testing.T) {
	repos, dir := setup(t, map[string]string{
		"Database.txt":       accountsFixture,
		"UserPasswordID.txt": "=== CREDENTIALS ===\nID: 2250001 | Password: stale\nID: 9999999 | Password: orphan\n",
	})
	ctx := context.Background()

	accounts, err := repos.AccountRepository.FindAll(ctx)
	require.NoError(t, err)
	require.NoError(t, repos.CredentialRepository.Sync(ctx, accounts))

	assert.Equal(t,
		"=== CREDENTIALS ===\nID: 2250001 | Password: alpha\nID: 2250002 | Password: beta\nID: 2250003 | Password: gamma\n",
		readFile(t, filepath.Join(dir, "UserPasswordID.txt")))

	creds, err := repos.CredentialRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, creds, 3)
}

const attendanceFixture = `Format: studentID,subjectCode,subjectName,date,status,remarks
2250001,IT211,Data Structures,9/1/2025,Present
2250002,IT211,Data Structures,9/1/2025,Absent,
2250001,IT211,Data Structures,9/3/2025,Absent,
2250001,GE101,Purposive Comm,9/3/2025,Late,traffic
2250001,GE101,Purposive Comm,not-a-date,Late
`

func TestAttendanceRepository_FindByStudentID(t *testing.T) {
	repos, _ := setup(t, map[string]string{"attendanceRecords.txt": attendanceFixture})

	recs, err := repos.AttendanceRepository.FindByStudentID(context.Background(), "2250001")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, models.StatusPresent, recs[0].Status)
	assert.Equal(t, "traffic", recs[2].Remarks)
	for _, r := range recs {
		assert.Equal(t, "2250001", r.StudentID)
	}
}

func TestAttendanceRepository_UpdateRemarks(t *testing.T) {
	repos, dir := setup(t, map[string]string{"attendanceRecords.txt": attendanceFixture})
	ctx := context.Background()
	date := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repos.AttendanceRepository.UpdateRemarks(ctx, "2250001", "IT211", date, "hospital visit"))

	lines := strings.Split(readFile(t, filepath.Join(dir, "attendanceRecords.txt")), "\n")
	assert.Equal(t, "2250001,IT211,Data Structures,9/3/2025,Absent,hospital visit", lines[3])
	assert.Equal(t, "2250002,IT211,Data Structures,9/1/2025,Absent,", lines[2])
	assert.Equal(t, "2250001,GE101,Purposive Comm,not-a-date,Late", lines[5])

	err := repos.AttendanceRepository.UpdateRemarks(ctx, "2250001", "IT999", date, "x")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestPaymentRepository(t *testing.T) {
	repos, dir := setup(t, map[string]string{
		"paymentLogs.txt": "=== PAYMENT LOGS ===\n08/01/2025 10:00 AM,GCash,Enrollment,P 1,500.00,2250001\n08/02/2025 11:00 AM,BPI,Enrollment,P 200.00,2250002\n",
	})
	ctx := context.Background()

	p := models.PaymentTransaction{Date: "08/03/2025 01:00 PM", Channel: "Cash", Reference: "Misc", Amount: 2750.25, StudentID: "2250001"}
	require.NoError(t, repos.PaymentRepository.Append(ctx, p))

	payments, err := repos.PaymentRepository.FindByStudentID(ctx, "2250001")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 1500.0, payments[0].Amount)
	assert.Equal(t, p, payments[1])

	assert.Contains(t, readFile(t, filepath.Join(dir, "paymentLogs.txt")), "Cash,Misc,P 2,750.25,2250001\n")
}

func TestScheduleAndGradeRepositories(t *testing.T) {
	repos, _ := setup(t, map[string]string{
		"courseSchedules.txt": "2250001,9301,IT 211,Data Structures,3,7:30,9:00,TTH,D412,Dela Cruz,FIRST SEMESTER 2025-2026\n" +
			"2250002,9302,IT 212,Networks,3,9:00,10:30,MWF,D413,Santos,FIRST SEMESTER 2025-2026\n" +
			"2250001,9303,GE 101,Purposive Comm,x,9:00,10:30,MWF,D413,Santos,FIRST SEMESTER 2025-2026\n",
		"gradeRecords.txt": "2250001,IT101,Intro,SECOND SEMESTER 2024-2025,1.5,1.75,1.5,1.5,Completed\n" +
			"2250002,IT101,Intro,SECOND SEMESTER 2024-2025,2,2,2,2,Completed\n",
	})
	ctx := context.Background()

	schedules, err := repos.ScheduleRepository.FindByStudentID(ctx, "2250001")
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "9301", schedules[0].ClassCode)

	grades, err := repos.GradeRepository.FindByStudentID(ctx, "2250001")
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 1.75, *grades[0].Midterm)

	none, err := repos.GradeRepository.FindByStudentID(ctx, "0000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}
