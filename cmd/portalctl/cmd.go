package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yigit/isluportal/internal/app/services"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc *services.Services
	out io.Writer
}

func (cmd *commandLine) app() *cli.App {
	return &cli.App{
		Name:      "portalctl",
		Usage:     "administer the iSLU portal data files",
		Writer:    cmd.out,
		ErrWriter: cmd.out,
		// errors are returned to main, never turned into os.Exit here
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("%q: no such command", c.Args().First())
			}
			_ = cli.ShowAppHelp(c)
			return errHelp
		},
		Commands: []*cli.Command{
			{
				Name:   "genid",
				Usage:  "print a student ID not used by any account",
				Action: cmd.genID,
			},
			{
				Name:  "register",
				Usage: "create an account; the password is prompted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "last", Usage: "last name", Required: true},
					&cli.StringFlag{Name: "first", Usage: "first name", Required: true},
					&cli.StringFlag{Name: "middle", Usage: "middle name"},
					&cli.StringFlag{Name: "dob", Usage: "date of birth, e.g. 01/15/2004", Required: true},
				},
				Action: cmd.register,
			},
			{
				Name:   "passwd",
				Usage:  "reset a student's password; the new password is prompted",
				Flags:  []cli.Flag{studentIDFlag()},
				Action: cmd.passwd,
			},
			{
				Name:  "pay",
				Usage: "append a payment to the payment log",
				Flags: []cli.Flag{
					studentIDFlag(),
					&cli.StringFlag{Name: "channel", Usage: "payment channel, e.g. GCash", Required: true},
					&cli.Float64Flag{Name: "amount", Usage: "amount in pesos", Required: true},
				},
				Action: cmd.pay,
			},
			{
				Name:   "sync-credentials",
				Usage:  "rebuild the credential mirror from the account file",
				Action: cmd.syncCredentials,
			},
			{
				Name:   "students",
				Usage:  "list every account",
				Action: cmd.students,
			},
			{
				Name:   "summary",
				Usage:  "print a student's records at a glance",
				Flags:  []cli.Flag{studentIDFlag()},
				Action: cmd.summary,
			},
		},
	}
}

func studentIDFlag() cli.Flag {
	return &cli.StringFlag{Name: "id", Usage: "7-digit student ID", Required: true}
}

func (cmd *commandLine) run(args []string) error {
	if len(args) < 2 {
		_ = cmd.app().Run([]string{args[0], "--help"})
		return errHelp
	}
	return cmd.app().Run(args)
}

// promptPassword reads a password without echo
func (cmd *commandLine) promptPassword(label string) (string, error) {
	fmt.Fprint(cmd.out, label)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return strings.TrimSpace(string(pwd)), nil
}
