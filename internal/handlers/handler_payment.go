package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers the payment ledger routes nested under a demand.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/demands/:demandID/payments")
	{
		payments.POST("", h.applyPayment)
		payments.GET("", h.listPayments)
	}
}

// applyPayment godoc
// @Summary Apply a payment to a demand
// @Description Records a receipt and credits the demand in one step. A payment larger than the balance is rejected.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment details"
// @Success 201 {object} dto.ApplyPaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Failure 409 {object} dto.ErrorResponse "Demand is void"
// @Failure 422 {object} dto.ErrorResponse "Payment exceeds balance"
// @Security BearerAuth
// @Router /demands/{demandID}/payments [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "ApplyPayment", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	demandID := c.Param("demandID")
	logger.Info("Received payment", slog.String("demand_id", demandID), slog.String("amount", req.Amount.String()), slog.String("mode", string(req.PaymentMode)))

	payment, demand, err := h.paymentService.ApplyPayment(c.Request.Context(), caller, demandID, req)
	if err != nil {
		respondError(c, "ApplyPayment", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplyPaymentResponse{
		Payment: dto.ToPaymentResponse(payment),
		Demand:  dto.ToDemandResponse(demand),
	})
}

// listPayments godoc
// @Summary List a demand's payments
// @Tags payments
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Security BearerAuth
// @Router /demands/{demandID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsByDemand(c.Request.Context(), caller, c.Param("demandID"))
	if err != nil {
		respondError(c, "ListPayments", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}
