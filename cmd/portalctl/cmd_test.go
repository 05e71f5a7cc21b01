package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/isluportal/internal/app/repositories"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/pkg/apperrors"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
)

const accounts = "2250001,Cruz,Juan,Santos,01/15/2004,alpha\n" +
	"2250002,Reyes,Ana,Lopez,02/02/2003,beta\n"

func setup(t *testing.T) (*commandLine, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Database.txt"), []byte(accounts), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attendanceRecords.txt"),
		[]byte("2250001,IT211,Data Structures,9/1/2025,Present\n2250001,IT211,Data Structures,9/3/2025,Absent\n"), 0o644))

	repos := repositories.NewRepositories(flatfile.NewStore(flatfile.NewResolver(dir)), repositories.DefaultFiles())
	out := new(bytes.Buffer)
	return &commandLine{
		svc: services.NewServices(repos, nil, nil, services.Options{}, zerolog.Nop()),
		out: out,
	}, out, dir
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func runCase(t *testing.T, cli *commandLine, tt cliTest) error {
	t.Helper()
	args := append([]string{"portalctl"}, tt.args...)
	err := cli.run(args)
	switch {
	case tt.wantErr != nil:
		assert.ErrorIs(t, err, tt.wantErr)
	case tt.wantErrStr != "":
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.wantErrStr)
	default:
		assert.NoError(t, err)
	}
	return err
}

func Test_commandLine_usage(t *testing.T) {
	cli, _, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "pay without flags", args: []string{"pay"}, wantErrStr: "Required flag"},
		{name: "summary without id", args: []string{"summary"}, wantErrStr: "Required flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runCase(t, cli, tt)
		})
	}
}

func Test_commandLine_genid(t *testing.T) {
	cli, out, _ := setup(t)

	runCase(t, cli, cliTest{name: "genid", args: []string{"genid"}})

	id := strings.TrimSpace(out.String())
	assert.Len(t, id, 7)
	assert.True(t, strings.HasPrefix(id, "225"))
	assert.NotEqual(t, "2250001", id)
	assert.NotEqual(t, "2250002", id)
}

func Test_commandLine_register(t *testing.T) {
	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "missing names", args: []string{"register", "--dob", "01/01/2004"}, wantErrStr: "Required flag"},
		{name: "no password", args: []string{"register", "--last", "Tan", "--first", "Lee", "--dob", "04/04/2004"}, wantErr: errHelp},
		{name: "comma in name", args: []string{"register", "--last", "Tan, Jr", "--first", "Lee", "--dob", "04/04/2004"}, extra: extra{pwd: "delta"}, wantErr: apperrors.ErrValidationFailed},
		{name: "register", args: []string{"register", "--last", "Tan", "--first", "Lee", "--dob", "04/04/2004"}, extra: extra{pwd: "delta"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out, dir := setup(t)
			readPasswordFunc = func(fd int) ([]byte, error) {
				if e, ok := tt.extra.(extra); ok {
					return []byte(e.pwd), nil
				}
				return nil, nil
			}

			if err := runCase(t, cli, tt); err != nil {
				return
			}
			assert.Contains(t, out.String(), "registered 225")

			db, err := os.ReadFile(filepath.Join(dir, "Database.txt"))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(db), accounts))
			assert.Contains(t, string(db), ",Tan,Lee,,04/04/2004,delta\n")

			mirror, err := os.ReadFile(filepath.Join(dir, "UserPasswordID.txt"))
			require.NoError(t, err)
			assert.Equal(t, 3, strings.Count(string(mirror), "\n"))
		})
	}
}

func Test_commandLine_passwd(t *testing.T) {
	cli, _, _ := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no id", args: []string{"passwd"}, wantErrStr: "Required flag"},
		{name: "unknown student", args: []string{"passwd", "--id", "2259999"}, extra: extra{pwd: "x"}, wantErr: apperrors.ErrStudentNotFound},
		{name: "no password", args: []string{"passwd", "--id", "2250002"}, wantErr: errHelp},
		{name: "pipe in password", args: []string{"passwd", "--id", "2250002"}, extra: extra{pwd: "a|b|c"}, wantErr: apperrors.ErrValidationFailed},
		{name: "reset", args: []string{"passwd", "--id", "2250002"}, extra: extra{pwd: "gamma"}},
	}
	for _, tt := range tests {
		readPasswordFunc = func(fd int) ([]byte, error) {
			if e, ok := tt.extra.(extra); ok {
				return []byte(e.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			runCase(t, cli, tt)
		})
	}

	_, err := cli.svc.Auth.Authenticate(context.Background(), "2250002", "gamma")
	assert.NoError(t, err)
	_, err = cli.svc.Auth.Authenticate(context.Background(), "2250001", "alpha")
	assert.NoError(t, err)
}

func Test_commandLine_readPasswordError(t *testing.T) {
	cli, _, _ := setup(t)
	boom := errors.New("not a terminal")
	readPasswordFunc = func(fd int) ([]byte, error) { return nil, boom }

	runCase(t, cli, cliTest{name: "tty error", args: []string{"passwd", "--id", "2250001"}, wantErr: boom})
}

func Test_commandLine_pay(t *testing.T) {
	cli, out, dir := setup(t)

	tests := []cliTest{
		{name: "unknown student", args: []string{"pay", "--id", "2259999", "--channel", "GCash", "--amount", "100"}, wantErr: apperrors.ErrStudentNotFound},
		{name: "zero amount", args: []string{"pay", "--id", "2250001", "--channel", "GCash", "--amount", "0"}, wantErr: apperrors.ErrValidationFailed},
		{name: "pay", args: []string{"pay", "--id", "2250001", "--channel", "GCash", "--amount", "1234.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runCase(t, cli, tt)
		})
	}

	assert.Contains(t, out.String(), "P 1,234.50")
	log, err := os.ReadFile(filepath.Join(dir, "paymentLogs.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(log), ",GCash,FIRST SEMESTER 2025-2026 Enrollme.,P 1,234.50,2250001\n")
}

func Test_commandLine_syncAndSummary(t *testing.T) {
	cli, out, dir := setup(t)

	runCase(t, cli, cliTest{name: "sync", args: []string{"sync-credentials"}})
	assert.Contains(t, out.String(), "mirrored 2 accounts")

	mirror, err := os.ReadFile(filepath.Join(dir, "UserPasswordID.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ID: 2250001 | Password: alpha\nID: 2250002 | Password: beta\n", string(mirror))

	out.Reset()
	runCase(t, cli, cliTest{name: "summary", args: []string{"summary", "--id", "2250001"}})
	assert.Contains(t, out.String(), "Juan Santos Cruz")
	assert.Contains(t, out.String(), "FIRST SEMESTER 2025-2026")
	assert.Contains(t, out.String(), "50.0% of 2 meetings")

	out.Reset()
	runCase(t, cli, cliTest{name: "students", args: []string{"students"}})
	assert.Contains(t, out.String(), "2250002  Reyes, Ana Lopez")

	runCase(t, cli, cliTest{name: "summary unknown", args: []string{"summary", "--id", "2259999"}, wantErr: apperrors.ErrStudentNotFound})
}
