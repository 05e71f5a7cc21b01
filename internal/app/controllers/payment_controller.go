package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/isluportal/internal/app/models/dto"
	"github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/middleware"
	"github.com/yigit/isluportal/internal/pkg/helpers"
)

// PaymentController serves the payment log and the statement of accounts
type PaymentController struct {
	paymentService *services.PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// ListPayments returns the student's payments, one page at a time
// @Summary Payment history
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /me/payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	payments, err := c.paymentService.List(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	items, info := helpers.Paginate(payments, page, size)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{Items: items, Pagination: info},
	})
}

// Pay checks the card, applies the payment to the session's statement and logs it
// @Summary Make a payment
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.PaymentRequest true "Channel, amount and card"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /me/payments [post]
func (c *PaymentController) Pay(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid payment payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.paymentService.Pay(ctx.Request.Context(), middleware.SessionID(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("studentID", middleware.StudentID(ctx)).Msg("Payment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// Statement returns the statement of accounts of the session
// @Summary Statement of accounts
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.Statement}
// @Router /me/statement [get]
func (c *PaymentController) Statement(ctx *gin.Context) {
	st, err := c.paymentService.Statement(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: st})
}

// RefreshStatement draws new statement figures for the session
func (c *PaymentController) RefreshStatement(ctx *gin.Context) {
	st, err := c.paymentService.RefreshStatement(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: st})
}
