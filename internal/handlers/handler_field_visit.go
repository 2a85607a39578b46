package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fieldVisitHandler handles HTTP requests related to collector field visits.
type fieldVisitHandler struct {
	fieldVisitService portssvc.FieldVisitSvcFacade
}

// newFieldVisitHandler creates a new fieldVisitHandler.
func newFieldVisitHandler(fs portssvc.FieldVisitSvcFacade) *fieldVisitHandler {
	return &fieldVisitHandler{
		fieldVisitService: fs,
	}
}

// registerFieldVisitRoutes registers visit routes nested under a demand and the proof upload route.
func registerFieldVisitRoutes(rg *gin.RouterGroup, fieldVisitService portssvc.FieldVisitSvcFacade) {
	h := newFieldVisitHandler(fieldVisitService)

	demandVisits := rg.Group("/demands/:demandID")
	{
		demandVisits.POST("/visits", h.recordVisit)
		demandVisits.GET("/visits", h.listVisits)
		demandVisits.GET("/follow-ups/:collectorID", h.getFollowUp)
	}

	rg.POST("/field-visits/proofs", h.uploadProof)
}

// recordVisit godoc
// @Summary Record a field visit
// @Description Records the next visit in the reminder, payment_collection, warning, final_warning order for the collector on this demand.
// @Description A final warning refused by the citizen while a balance remains fires an escalation notice.
// @Tags field-visits
// @Accept  json
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Param   visit body dto.RecordVisitRequest true "Visit details"
// @Success 201 {object} dto.RecordVisitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent visit recorded"
// @Failure 422 {object} dto.ErrorResponse "Visit out of sequence"
// @Security BearerAuth
// @Router /demands/{demandID}/visits [post]
func (h *fieldVisitHandler) recordVisit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "RecordVisit", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	demandID := c.Param("demandID")
	logger.Info("Received field visit", slog.String("demand_id", demandID), slog.String("visit_type", string(req.VisitType)), slog.String("citizen_response", string(req.CitizenResponse)))

	record, err := h.fieldVisitService.RecordVisit(c.Request.Context(), caller, demandID, req)
	if err != nil {
		respondError(c, "RecordVisit", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecordVisitResponse(record))
}

// listVisits godoc
// @Summary List a demand's field visits
// @Tags field-visits
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Success 200 {array} dto.FieldVisitResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Security BearerAuth
// @Router /demands/{demandID}/visits [get]
func (h *fieldVisitHandler) listVisits(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	visits, err := h.fieldVisitService.ListVisitsByDemand(c.Request.Context(), caller, c.Param("demandID"))
	if err != nil {
		respondError(c, "ListVisits", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListFieldVisitResponse(visits))
}

// getFollowUp godoc
// @Summary Get a collector's follow-up on a demand
// @Description Returns the visit count, escalation status and the visit type expected next.
// @Tags field-visits
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Param   collectorID path string true "Collector ID"
// @Success 200 {object} dto.FollowUpResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No visits recorded yet"
// @Security BearerAuth
// @Router /demands/{demandID}/follow-ups/{collectorID} [get]
func (h *fieldVisitHandler) getFollowUp(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	followUp, err := h.fieldVisitService.GetFollowUp(c.Request.Context(), caller, c.Param("demandID"), c.Param("collectorID"))
	if err != nil {
		respondError(c, "GetFollowUp", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFollowUpResponse(followUp))
}

// uploadProof godoc
// @Summary Upload a visit proof photo
// @Description Stores a JPEG, PNG or WebP photo and returns the URL to send as proofPhotoUrl when recording the visit.
// @Tags field-visits
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Proof photo"
// @Success 201 {object} dto.UploadProofResponse
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized or unsupported file"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Proof storage not configured"
// @Security BearerAuth
// @Router /field-visits/proofs [post]
func (h *fieldVisitHandler) uploadProof(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBindError(c, "UploadProof", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded proof", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation_error", Message: "Uploaded file could not be read"})
		return
	}
	defer file.Close()

	url, err := h.fieldVisitService.UploadProof(c.Request.Context(), caller, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		respondError(c, "UploadProof", err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadProofResponse{URL: url})
}
