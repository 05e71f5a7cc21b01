package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/middleware"
)

// FacultyController exposes the faculty record entry points. Faculty access
// is not available, so every handler answers 501 once the body is valid.
type FacultyController struct {
	attendanceService *services.AttendanceService
	gradeService      *services.GradeService
	logger            zerolog.Logger
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(attendanceService *services.AttendanceService, gradeService *services.GradeService, logger zerolog.Logger) *FacultyController {
	return &FacultyController{
		attendanceService: attendanceService,
		gradeService:      gradeService,
		logger:            logger,
	}
}

// UpdateAttendance marks a student's attendance
// @Summary Mark attendance (faculty)
// @Tags faculty
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FacultyAttendanceRequest true "Attendance entry"
// @Failure 501 {object} dto.ErrorResponse "Faculty access is not available"
// @Router /faculty/attendance [put]
func (c *FacultyController) UpdateAttendance(ctx *gin.Context) {
	var req dto.FacultyAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}
	middleware.HandleAPIError(ctx, c.attendanceService.UpdateRecord(ctx.Request.Context(), &req))
}

// UpdateGrade posts a period grade
// @Summary Post a grade (faculty)
// @Tags faculty
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FacultyGradeRequest true "Grade entry"
// @Failure 501 {object} dto.ErrorResponse "Faculty access is not available"
// @Router /faculty/grades [put]
func (c *FacultyController) UpdateGrade(ctx *gin.Context) {
	var req dto.FacultyGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}
	middleware.HandleAPIError(ctx, c.gradeService.UpdateGrade(ctx.Request.Context(), &req))
}
