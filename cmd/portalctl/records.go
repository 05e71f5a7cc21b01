package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/isluportal/internal/app/codec"
)

func (cmd *commandLine) pay(c *cli.Context) error {
	id := c.String("id")
	if _, err := cmd.svc.Profile.GetStudentInfo(c.Context, id); err != nil {
		return err
	}

	p, err := cmd.svc.Payment.Log(c.Context, id, c.String("channel"), c.Float64("amount"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.out, "%s  %s  %s  %s\n", p.Date, p.Channel, codec.FormatAmount(p.Amount), p.StudentID)
	return nil
}

func (cmd *commandLine) summary(c *cli.Context) error {
	id := c.String("id")
	student, err := cmd.svc.Profile.GetStudent(c.Context, id)
	if err != nil {
		return err
	}
	sched, err := cmd.svc.Schedule.Schedule(c.Context, id)
	if err != nil {
		return err
	}
	overall, err := cmd.svc.Attendance.Overall(c.Context, id)
	if err != nil {
		return err
	}
	grades, err := cmd.svc.Grade.CurrentGrades(c.Context, id)
	if err != nil {
		return err
	}
	payments, err := cmd.svc.Payment.List(c.Context, id)
	if err != nil {
		return err
	}

	paid := 0.0
	for _, p := range payments {
		paid += p.Amount
	}

	fmt.Fprintf(cmd.out, "Student:    %s  %s\n", student.ID, student.FullName)
	fmt.Fprintf(cmd.out, "Semester:   %s\n", student.CurrentSemester)
	fmt.Fprintf(cmd.out, "Classes:    %d (%d units)\n", len(sched.Classes), sched.TotalUnits)
	fmt.Fprintf(cmd.out, "Attendance: %.1f%% of %d meetings\n", overall.Percentage(), overall.Total())
	fmt.Fprintf(cmd.out, "Grades:     %d this semester\n", len(grades.Grades))
	fmt.Fprintf(cmd.out, "Payments:   %d totalling %s\n", len(payments), codec.FormatAmount(paid))
	return nil
}
