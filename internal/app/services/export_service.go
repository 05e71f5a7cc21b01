package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ErrExportFailed is returned when a document cannot be rendered
var ErrExportFailed = errors.New("document export failed")

const portalTitle = "SAINT LOUIS UNIVERSITY"

// ExportService renders downloadable documents: the statement of accounts
// and the transcript as PDF, the class schedule as a workbook
type ExportService struct {
	profile  *ProfileService
	schedule *ScheduleService
	grade    *GradeService
	payment  *PaymentService
	logger   zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(profile *ProfileService, schedule *ScheduleService, grade *GradeService, payment *PaymentService, logger zerolog.Logger) *ExportService {
	return &ExportService{
		profile:  profile,
		schedule: schedule,
		grade:    grade,
		payment:  payment,
		logger:   logger,
	}
}

// StatementPDF renders the statement of accounts of the session
func (s *ExportService) StatementPDF(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	st, err := s.payment.Statement(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	account, err := s.profile.GetStudentInfo(ctx, st.StudentID)
	if err != nil {
		return nil, "", err
	}

	pdf := newDocument("STATEMENT OF ACCOUNTS")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	infoRow(pdf, tr, "Student Number:", account.ID)
	infoRow(pdf, tr, "Name:", account.FullName())
	infoRow(pdf, tr, "As of:", st.AsOf)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, tr(st.Status))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, tr(st.PrelimStatus), "", "L", false)
	pdf.MultiCell(0, 5, tr(st.FinalsStatus), "", "L", false)
	pdf.Ln(4)

	tableHeader(pdf, []string{"DATE", "DESCRIPTION", "AMOUNT"}, []float64{40, 100, 40})
	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(245, 245, 245)
	for i, line := range st.Lines {
		fill := i%2 == 0
		pdf.CellFormat(40, 7, tr(line.Date), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(100, 7, tr(line.Description), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(40, 7, tr(line.Display), "1", 1, "R", fill, 0, "")
	}

	buf, err := s.output(pdf, "statement")
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("SOA_%s.pdf", account.ID), nil
}

// TranscriptPDF renders the transcript of records of the student
func (s *ExportService) TranscriptPDF(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	account, err := s.profile.GetStudentInfo(ctx, studentID)
	if err != nil {
		return nil, "", err
	}
	semesters, err := s.grade.Transcript(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	pdf := newDocument("TRANSCRIPT OF RECORDS")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	infoRow(pdf, tr, "Student Number:", account.ID)
	infoRow(pdf, tr, "Name:", account.FullName())
	infoRow(pdf, tr, "Date of Birth:", account.DateOfBirth)
	pdf.Ln(6)

	if len(semesters) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 6, "No completed courses found")
		pdf.Ln(6)
	}

	widths := []float64{35, 95, 25, 25}
	for _, sem := range semesters {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, tr(sem.Semester))
		pdf.Ln(7)

		tableHeader(pdf, []string{"COURSE NUMBER", "DESCRIPTIVE TITLE", "GRADE", "UNITS"}, widths)
		pdf.SetFont("Arial", "", 9)
		pdf.SetFillColor(245, 245, 245)

		totalUnits := 0
		for i, e := range sem.Entries {
			fill := i%2 == 0
			pdf.CellFormat(widths[0], 7, tr(e.SubjectCode), "1", 0, "L", fill, 0, "")
			pdf.CellFormat(widths[1], 7, tr(e.SubjectName), "1", 0, "L", fill, 0, "")
			pdf.CellFormat(widths[2], 7, e.Display, "1", 0, "C", fill, 0, "")
			pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", e.Units), "1", 1, "C", fill, 0, "")
			totalUnits += e.Units
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total Units", "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", totalUnits), "1", 1, "C", false, 0, "")
		pdf.Ln(6)
	}

	buf, err := s.output(pdf, "transcript")
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("TOR_%s.pdf", account.ID), nil
}

// ScheduleXLSX renders the class list and the weekly timetable as a workbook
func (s *ExportService) ScheduleXLSX(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	sched, err := s.schedule.Schedule(ctx, studentID)
	if err != nil {
		return nil, "", err
	}
	days, err := s.schedule.Timetable(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const classSheet = "Schedule"
	const daySheet = "Timetable"
	idx, err := f.NewSheet(classSheet)
	if err != nil {
		return nil, "", s.exportError("schedule", err)
	}
	f.SetActiveSheet(idx)
	if _, err := f.NewSheet(daySheet); err != nil {
		return nil, "", s.exportError("schedule", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", s.exportError("schedule", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#0A2D5A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", s.exportError("schedule", err)
	}

	// Class list
	headers := []string{"Class Code", "Course Number", "Course Description", "Units", "Schedule", "Days", "Room", "Instructor"}
	widths := []float64{12, 14, 36, 8, 16, 8, 10, 24}
	for i, h := range headers {
		col := colName(i)
		f.SetColWidth(classSheet, col, col, widths[i])
		f.SetCellValue(classSheet, cell(col, 2), h)
	}
	f.SetCellValue(classSheet, "A1", sched.Semester)
	f.MergeCell(classSheet, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(classSheet, "A1", "A1", headerStyle)
	f.SetCellStyle(classSheet, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	row := 3
	for _, c := range sched.Classes {
		values := []interface{}{
			c.ClassCode, c.CourseNumber, c.Description, c.Units,
			c.Start.Display() + " - " + c.End.Display(), c.Days, c.Room, c.Instructor,
		}
		for i, v := range values {
			f.SetCellValue(classSheet, cell(colName(i), row), v)
		}
		row++
	}
	f.SetCellValue(classSheet, cell("C", row), "Total Units")
	f.SetCellValue(classSheet, cell("D", row), sched.TotalUnits)

	// Timetable
	f.SetColWidth(daySheet, "A", "A", 12)
	f.SetColWidth(daySheet, "B", "B", 16)
	f.SetColWidth(daySheet, "C", "C", 36)
	f.SetColWidth(daySheet, "D", "D", 10)
	for i, h := range []string{"Day", "Time", "Course", "Room"} {
		f.SetCellValue(daySheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(daySheet, "A1", "D1", headerStyle)

	row = 2
	for _, d := range days {
		if len(d.Classes) == 0 {
			f.SetCellValue(daySheet, cell("A", row), d.Name)
			f.SetCellValue(daySheet, cell("B", row), "-")
			row++
			continue
		}
		for _, c := range d.Classes {
			f.SetCellValue(daySheet, cell("A", row), d.Name)
			f.SetCellValue(daySheet, cell("B", row), c.Start.Display()+" - "+c.End.Display())
			f.SetCellValue(daySheet, cell("C", row), c.CourseNumber+" "+c.Description)
			f.SetCellValue(daySheet, cell("D", row), c.Room)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.exportError("schedule", err)
	}
	return buf, fmt.Sprintf("Schedule_%s.xlsx", studentID), nil
}

func (s *ExportService) output(pdf *gofpdf.Fpdf, kind string) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, s.exportError(kind, err)
	}
	return buf, nil
}

func (s *ExportService) exportError(kind string, err error) error {
	s.logger.Error().Err(err).Str("document", kind).Msg("Failed to render document")
	return fmt.Errorf("%w: %s: %v", ErrExportFailed, kind, err)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 8, portalTitle)
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 5, "Baguio City, Philippines")
	pdf.Ln(4)
	pdf.SetDrawColor(10, 45, 90)
	pdf.SetLineWidth(0.5)
	pdf.Line(15, pdf.GetY()+2, 195, pdf.GetY()+2)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)
	return pdf
}

func infoRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, label)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, tr(value))
	pdf.Ln(5)
}

func tableHeader(pdf *gofpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(10, 45, 90)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, h, "1", ln, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
