package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/middleware"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportController serves the downloadable documents
type ExportController struct {
	exportService *services.ExportService
	logger        zerolog.Logger
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService, logger zerolog.Logger) *ExportController {
	return &ExportController{
		exportService: exportService,
		logger:        logger,
	}
}

// StatementPDF downloads the statement of accounts
// @Summary Statement of accounts as PDF
// @Tags exports
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /me/statement.pdf [get]
func (c *ExportController) StatementPDF(ctx *gin.Context) {
	buf, name, err := c.exportService.StatementPDF(ctx.Request.Context(), middleware.SessionID(ctx))
	c.send(ctx, buf, name, contentTypePDF, err)
}

// TranscriptPDF downloads the transcript of records
// @Summary Transcript as PDF
// @Tags exports
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /me/transcript.pdf [get]
func (c *ExportController) TranscriptPDF(ctx *gin.Context) {
	buf, name, err := c.exportService.TranscriptPDF(ctx.Request.Context(), middleware.StudentID(ctx))
	c.send(ctx, buf, name, contentTypePDF, err)
}

// ScheduleXLSX downloads the class schedule workbook
func (c *ExportController) ScheduleXLSX(ctx *gin.Context) {
	buf, name, err := c.exportService.ScheduleXLSX(ctx.Request.Context(), middleware.StudentID(ctx))
	c.send(ctx, buf, name, contentTypeXLSX, err)
}

func (c *ExportController) send(ctx *gin.Context, buf *bytes.Buffer, name, contentType string, err error) {
	if err != nil {
		c.logger.Error().Err(err).Str("studentID", middleware.StudentID(ctx)).Msg("Export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Header("Content-Length", strconv.Itoa(buf.Len()))
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
