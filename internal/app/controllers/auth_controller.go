// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/middleware"
)

// AuthController handles sign-in, registration and password changes
type AuthController struct {
	authService    *services.AuthService
	paymentService *services.PaymentService
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, paymentService *services.PaymentService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:    authService,
		paymentService: paymentService,
		logger:         logger,
	}
}

// Register handles student registration
// @Summary Register a new student
// @Description Creates an account under a freshly generated 7-digit student ID
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 507 {object} dto.ErrorResponse "No student IDs left"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("lastName", req.LastName).Msg("Failed to register student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: resp,
	})
}

// Login handles student sign-in
// @Summary Student login
// @Description Checks the student ID and password, opens a portal session and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, sess, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", req.StudentID).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	statement, err := c.paymentService.Statement(ctx.Request.Context(), sess.ID)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", req.StudentID).Msg("Statement unavailable at sign-in")
	} else {
		resp.Statement = statement
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: resp,
	})
}

// Logout ends the current session
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.authService.Logout(middleware.SessionID(ctx))
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Signed out"})
}

// ChangePassword replaces the signed-in student's password
// @Summary Change password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Router /me/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid change password payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	studentID := middleware.StudentID(ctx)
	if err := c.authService.ChangePassword(ctx.Request.Context(), studentID, &req); err != nil {
		c.logger.Warn().Err(err).Str("studentID", studentID).Msg("Password change failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password changed"})
}
