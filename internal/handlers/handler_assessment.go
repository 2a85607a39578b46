package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assessmentHandler handles HTTP requests related to assessments.
type assessmentHandler struct {
	assessmentService portssvc.AssessmentSvcFacade
}

// newAssessmentHandler creates a new assessmentHandler.
func newAssessmentHandler(as portssvc.AssessmentSvcFacade) *assessmentHandler {
	return &assessmentHandler{
		assessmentService: as,
	}
}

// registerAssessmentRoutes registers routes related to assessments.
func registerAssessmentRoutes(rg *gin.RouterGroup, assessmentService portssvc.AssessmentSvcFacade) {
	h := newAssessmentHandler(assessmentService)

	assessments := rg.Group("/assessments")
	{
		assessments.POST("", h.createAssessment)
		assessments.GET("/:assessmentID", h.getAssessment)
		assessments.PATCH("/:assessmentID", h.updateAssessment)
		assessments.POST("/:assessmentID/submit", h.submitAssessment)
		assessments.POST("/:assessmentID/approve", h.approveAssessment)
		assessments.POST("/:assessmentID/reject", h.rejectAssessment)
		assessments.POST("/:assessmentID/revisions", h.reviseAssessment)
	}

	rg.GET("/properties/:propertyID/assessments", h.listPropertyAssessments)
}

// createAssessment godoc
// @Summary Create a draft assessment
// @Description Creates a draft valuation for a property, water connection or shop. The caller becomes its assessor.
// @Tags assessments
// @Accept  json
// @Produce  json
// @Param   assessment body dto.CreateAssessmentRequest true "Assessment details"
// @Success 201 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /assessments [post]
func (h *assessmentHandler) createAssessment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateAssessment", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	logger.Info("Received request to create assessment", slog.String("property_id", req.PropertyID), slog.String("service_type", string(req.ServiceType)))

	assessment, err := h.assessmentService.CreateAssessment(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, "CreateAssessment", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssessmentResponse(assessment))
}

// getAssessment godoc
// @Summary Get an assessment
// @Tags assessments
// @Produce  json
// @Param   assessmentID path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Security BearerAuth
// @Router /assessments/{assessmentID} [get]
func (h *assessmentHandler) getAssessment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.GetAssessmentByID(c.Request.Context(), caller, c.Param("assessmentID"))
	if err != nil {
		respondError(c, "GetAssessment", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(assessment))
}

// listPropertyAssessments godoc
// @Summary List a property's assessments
// @Description Lists every assessment on a property, optionally restricted to one financial year.
// @Tags assessments
// @Produce  json
// @Param   propertyID path string true "Property ID"
// @Param   financialYear query string false "Financial year, e.g. 2024-25"
// @Success 200 {array} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /properties/{propertyID}/assessments [get]
func (h *assessmentHandler) listPropertyAssessments(c *gin.Context) {
	var params dto.ListAssessmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "ListAssessments", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	assessments, err := h.assessmentService.ListAssessmentsByProperty(c.Request.Context(), caller, c.Param("propertyID"), params)
	if err != nil {
		respondError(c, "ListAssessments", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAssessmentResponse(assessments))
}

// updateAssessment godoc
// @Summary Update a draft assessment
// @Description Changes valuation inputs of a draft and recomputes its tax. Only drafts are editable.
// @Tags assessments
// @Accept  json
// @Produce  json
// @Param   assessmentID path string true "Assessment ID"
// @Param   assessment body dto.UpdateAssessmentRequest true "Fields to update"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Assessment is no longer editable"
// @Security BearerAuth
// @Router /assessments/{assessmentID} [patch]
func (h *assessmentHandler) updateAssessment(c *gin.Context) {
	var req dto.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateAssessment", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.UpdateAssessment(c.Request.Context(), caller, c.Param("assessmentID"), req)
	if err != nil {
		respondError(c, "UpdateAssessment", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(assessment))
}

// submitAssessment godoc
// @Summary Submit an assessment for approval
// @Tags assessments
// @Produce  json
// @Param   assessmentID path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid state or duplicate active assessment"
// @Security BearerAuth
// @Router /assessments/{assessmentID}/submit [post]
func (h *assessmentHandler) submitAssessment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.SubmitAssessment(c.Request.Context(), caller, c.Param("assessmentID"))
	if err != nil {
		respondError(c, "SubmitAssessment", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(assessment))
}

// approveAssessment godoc
// @Summary Approve a pending assessment
// @Tags assessments
// @Produce  json
// @Param   assessmentID path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Assessment is not pending"
// @Security BearerAuth
// @Router /assessments/{assessmentID}/approve [post]
func (h *assessmentHandler) approveAssessment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.ApproveAssessment(c.Request.Context(), caller, c.Param("assessmentID"))
	if err != nil {
		respondError(c, "ApproveAssessment", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(assessment))
}

// rejectAssessment godoc
// @Summary Reject a pending assessment
// @Tags assessments
// @Accept  json
// @Produce  json
// @Param   assessmentID path string true "Assessment ID"
// @Param   rejection body dto.RejectAssessmentRequest true "Rejection remarks"
// @Success 200 {object} dto.AssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Remarks are required"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Assessment is not pending"
// @Security BearerAuth
// @Router /assessments/{assessmentID}/reject [post]
func (h *assessmentHandler) rejectAssessment(c *gin.Context) {
	var req dto.RejectAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "RejectAssessment", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.RejectAssessment(c.Request.Context(), caller, c.Param("assessmentID"), req.Remarks)
	if err != nil {
		respondError(c, "RejectAssessment", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(assessment))
}

// reviseAssessment godoc
// @Summary Open a revision of an assessment
// @Description Copies an approved or rejected assessment into a new draft with the next revision number.
// @Tags assessments
// @Produce  json
// @Param   assessmentID path string true "Assessment ID"
// @Success 201 {object} dto.AssessmentResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Failure 409 {object} dto.ErrorResponse "Assessment cannot be revised"
// @Security BearerAuth
// @Router /assessments/{assessmentID}/revisions [post]
func (h *assessmentHandler) reviseAssessment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	revision, err := h.assessmentService.ReviseAssessment(c.Request.Context(), caller, c.Param("assessmentID"))
	if err != nil {
		respondError(c, "ReviseAssessment", err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Assessment revision opened", slog.String("assessment_id", revision.AssessmentID), slog.Int("revision", revision.RevisionNumber))
	c.JSON(http.StatusCreated, dto.ToAssessmentResponse(revision))
}
