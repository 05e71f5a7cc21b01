package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/middleware"
)

// RecordsController serves attendance and grade views
type RecordsController struct {
	attendanceService *services.AttendanceService
	gradeService      *services.GradeService
	logger            zerolog.Logger
}

// NewRecordsController creates a new RecordsController
func NewRecordsController(attendanceService *services.AttendanceService, gradeService *services.GradeService, logger zerolog.Logger) *RecordsController {
	return &RecordsController{
		attendanceService: attendanceService,
		gradeService:      gradeService,
		logger:            logger,
	}
}

// ListAttendance returns every attendance row of the student
// @Summary Attendance records
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.AttendanceRecord}
// @Router /me/attendance [get]
func (c *RecordsController) ListAttendance(ctx *gin.Context) {
	records, err := c.attendanceService.List(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: records})
}

// AttendanceSummary returns the per-subject counts
// @Summary Attendance per subject
// @Tags attendance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceSummaryResponse}
// @Router /me/attendance/summary [get]
func (c *RecordsController) AttendanceSummary(ctx *gin.Context) {
	summaries, err := c.attendanceService.SummaryBySubject(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.AttendanceSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, dto.NewAttendanceSummaryResponse(s))
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// OverallAttendance returns the counts across every subject
func (c *RecordsController) OverallAttendance(ctx *gin.Context) {
	summary, err := c.attendanceService.Overall(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.NewAttendanceSummaryResponse(summary)})
}

// Absences returns absences and late arrivals grouped by subject
func (c *RecordsController) Absences(ctx *gin.Context) {
	resp, err := c.attendanceService.Absences(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// SubmitReason stores the reason for an absence or late arrival
// @Summary Submit an absence reason
// @Tags attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AttendanceReasonRequest true "Meeting and reason"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "No such meeting"
// @Router /me/attendance/reason [post]
func (c *RecordsController) SubmitReason(ctx *gin.Context) {
	var req dto.AttendanceReasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid attendance reason payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	studentID := middleware.StudentID(ctx)
	if err := c.attendanceService.SubmitReason(ctx.Request.Context(), studentID, &req); err != nil {
		c.logger.Warn().Err(err).Str("studentID", studentID).Msg("Attendance reason rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Reason submitted"})
}

// CurrentGrades returns the grades of the current semester
// @Summary Current grades
// @Tags grades
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GradesResponse}
// @Router /me/grades [get]
func (c *RecordsController) CurrentGrades(ctx *gin.Context) {
	resp, err := c.gradeService.CurrentGrades(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Transcript returns completed subjects grouped by semester
func (c *RecordsController) Transcript(ctx *gin.Context) {
	semesters, err := c.gradeService.Transcript(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: semesters})
}
