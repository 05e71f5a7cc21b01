package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/isluportal/internal/app/models/dto"
)

func (cmd *commandLine) genID(c *cli.Context) error {
	id, err := cmd.svc.Auth.GenerateUniqueID(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.out, id)
	return nil
}

func (cmd *commandLine) register(c *cli.Context) error {
	pwd, err := cmd.promptPassword("Enter password:")
	if err != nil {
		return err
	}

	resp, err := cmd.svc.Auth.Register(c.Context, &dto.RegisterRequest{
		LastName:    c.String("last"),
		FirstName:   c.String("first"),
		MiddleName:  c.String("middle"),
		DateOfBirth: c.String("dob"),
		Password:    pwd,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "registered %s (%s)\n", resp.StudentID, resp.Student.FullName())
	return nil
}

func (cmd *commandLine) passwd(c *cli.Context) error {
	id := c.String("id")
	if _, err := cmd.svc.Profile.GetStudentInfo(c.Context, id); err != nil {
		return err
	}

	pwd, err := cmd.promptPassword("Enter new password:")
	if err != nil {
		return err
	}
	if err := cmd.svc.Auth.ResetPassword(c.Context, id, pwd); err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "password changed for %s\n", id)
	return nil
}

func (cmd *commandLine) syncCredentials(c *cli.Context) error {
	n, err := cmd.svc.Auth.SyncCredentials(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "mirrored %d accounts\n", n)
	return nil
}

func (cmd *commandLine) students(c *cli.Context) error {
	accounts, err := cmd.svc.Profile.ListStudents(c.Context)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		fmt.Fprintf(cmd.out, "%s  %s, %s %s\n", a.ID, a.LastName, a.FirstName, a.MiddleName)
	}
	return nil
}
