package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/middleware"
)

// StudentController serves the identity, profile and schedule views
type StudentController struct {
	profileService  *services.ProfileService
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(profileService *services.ProfileService, scheduleService *services.ScheduleService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		profileService:  profileService,
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// GetMe returns the signed-in student
// @Summary Current student
// @Tags students
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /me [get]
func (c *StudentController) GetMe(ctx *gin.Context) {
	resp, err := c.profileService.GetStudent(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetProfile returns the personal information with defaults filled in
// @Summary Student profile
// @Tags students
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /me/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	resp, err := c.profileService.GetProfile(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateProfile edits any subset of the profile fields
// @Summary Update profile
// @Tags students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /me/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	studentID := middleware.StudentID(ctx)
	resp, err := c.profileService.UpdateProfile(ctx.Request.Context(), studentID, req.Updates())
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", studentID).Msg("Profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Profile updated"))
}

// GetSchedule returns the enrolled classes with the total units
// @Summary Class schedule
// @Tags schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse}
// @Router /me/schedule [get]
func (c *StudentController) GetSchedule(ctx *gin.Context) {
	resp, err := c.scheduleService.Schedule(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetTimetable returns the classes of each day, Monday to Saturday
func (c *StudentController) GetTimetable(ctx *gin.Context) {
	days, err := c.scheduleService.Timetable(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: days})
}
