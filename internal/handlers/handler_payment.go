package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/SscSPs/association_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// RegisterPaymentRoutes registers the member-scoped and payment-scoped payment routes.
func RegisterPaymentRoutes(v1 *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: paymentService}

	member := v1.Group("/members/:memberID/payments")
	{
		member.POST("", h.recordPayment)
		member.POST("/general", h.recordGeneralPayment)
		member.GET("", h.listPayments)
	}

	payments := v1.Group("/payments")
	{
		payments.GET("/:paymentID", h.getPayment)
		payments.PUT("/:paymentID", h.editPayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment for a member, optionally earmarked for one obligation. Existing credits are applied first; any excess becomes a credit and is swept into initial debts.
// @Tags payments
// @Accept json
// @Produce json
// @Param memberID path string true "Member ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.Envelope{data=dto.PaymentResultResponse}
// @Failure 400 {object} dto.Envelope "Validation error"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Obligation not found"
// @Failure 500 {object} dto.Envelope "Internal error"
// @Security BearerAuth
// @Router /members/{memberID}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	memberID := c.Param("memberID")

	res, err := h.paymentService.RecordPayment(c.Request.Context(), memberID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment recorded",
		slog.String("member_id", memberID), slog.String("payment_id", res.Payment.PaymentID))
	c.JSON(http.StatusCreated, dto.OK(res.Message, dto.ToPaymentResultResponse(res)))
}

// recordGeneralPayment godoc
// @Summary Record a general payment
// @Description Distributes one payment across the member's outstanding obligations: initial debts, monthly dues, assistance charges, then standing obligations, oldest first.
// @Tags payments
// @Accept json
// @Produce json
// @Param memberID path string true "Member ID"
// @Param payment body dto.GeneralPaymentRequest true "Payment details"
// @Success 201 {object} dto.Envelope{data=dto.GeneralPaymentResultResponse}
// @Failure 400 {object} dto.Envelope "Validation error"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 500 {object} dto.Envelope "Internal error"
// @Security BearerAuth
// @Router /members/{memberID}/payments/general [post]
func (h *paymentHandler) recordGeneralPayment(c *gin.Context) {
	var req dto.GeneralPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	res, err := h.paymentService.RecordGeneralPayment(c.Request.Context(), c.Param("memberID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record general payment")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(res.Message, dto.ToGeneralPaymentResultResponse(res)))
}

// editPayment godoc
// @Summary Edit a payment
// @Description Updates a payment and recomputes its obligation and credits from every payment recorded against it.
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param payment body dto.EditPaymentRequest true "New payment values"
// @Success 200 {object} dto.Envelope{data=dto.EditPaymentResultResponse}
// @Failure 400 {object} dto.Envelope "Validation error"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Payment not found"
// @Failure 500 {object} dto.Envelope "Internal error"
// @Security BearerAuth
// @Router /payments/{paymentID} [put]
func (h *paymentHandler) editPayment(c *gin.Context) {
	var req dto.EditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	res, err := h.paymentService.EditPayment(c.Request.Context(), c.Param("paymentID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to edit payment")
		return
	}
	c.JSON(http.StatusOK, dto.OK(res.Message, dto.ToEditPaymentResultResponse(res)))
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.Envelope{data=dto.PaymentResponse}
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 404 {object} dto.Envelope "Payment not found"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("paymentID"), userID)
	if err != nil {
		respondError(c, err, "Failed to get payment")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.ToPaymentResponse(payment)))
}

// listPayments godoc
// @Summary List a member's payments
// @Description Newest first, paginated with an opaque nextToken.
// @Tags payments
// @Produce json
// @Param memberID path string true "Member ID"
// @Param limit query int false "Page size (1-100)" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.Envelope{data=dto.ListPaymentsResponse}
// @Failure 400 {object} dto.Envelope "Invalid query"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Security BearerAuth
// @Router /members/{memberID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	res, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("memberID"), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(res.Payments),
		NextToken: res.NextToken,
	}))
}
