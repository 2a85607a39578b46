package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// demandHandler handles HTTP requests related to demands.
type demandHandler struct {
	demandService portssvc.DemandSvcFacade
}

// newDemandHandler creates a new demandHandler.
func newDemandHandler(ds portssvc.DemandSvcFacade) *demandHandler {
	return &demandHandler{
		demandService: ds,
	}
}

// registerDemandRoutes registers routes related to demands.
func registerDemandRoutes(rg *gin.RouterGroup, demandService portssvc.DemandSvcFacade) {
	h := newDemandHandler(demandService)

	demands := rg.Group("/demands")
	{
		demands.POST("", h.generateDemand)
		demands.GET("/:demandID", h.getDemand)
		demands.POST("/:demandID/void", h.voidDemand)
	}

	rg.GET("/properties/:propertyID/demands", h.listPropertyDemands)
}

// generateDemand godoc
// @Summary Generate a demand
// @Description Bills one approved assessment (mode=single) or bundles a property's selected streams into one demand (mode=unified).
// @Description Repeating a generation returns the existing demand with alreadyExisted=true and status 200.
// @Tags demands
// @Accept  json
// @Produce  json
// @Param   demand body dto.GenerateDemandRequest true "Generation request"
// @Success 201 {object} dto.GenerateDemandResponse "Demand created"
// @Success 200 {object} dto.GenerateDemandResponse "Demand already existed"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Duplicate active assessment"
// @Failure 422 {object} dto.ErrorResponse "No approved assessment"
// @Security BearerAuth
// @Router /demands [post]
func (h *demandHandler) generateDemand(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "GenerateDemand", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	logger.Info("Received request to generate demand", slog.String("mode", string(req.Mode)), slog.String("assessment_id", req.AssessmentID), slog.String("property_id", req.PropertyID))

	result, err := h.demandService.GenerateDemand(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, "GenerateDemand", err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToGenerateDemandResponse(result))
}

// getDemand godoc
// @Summary Get a demand
// @Description Returns a demand with its status refreshed against the current date.
// @Tags demands
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Success 200 {object} dto.DemandResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Security BearerAuth
// @Router /demands/{demandID} [get]
func (h *demandHandler) getDemand(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	demand, err := h.demandService.GetDemandByID(c.Request.Context(), caller, c.Param("demandID"))
	if err != nil {
		respondError(c, "GetDemand", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDemandResponse(demand))
}

// listPropertyDemands godoc
// @Summary List a property's demands
// @Description Pages through a property's demands, most recent due date first.
// @Tags demands
// @Produce  json
// @Param   propertyID path string true "Property ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDemandsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /properties/{propertyID}/demands [get]
func (h *demandHandler) listPropertyDemands(c *gin.Context) {
	var params dto.ListDemandsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, "ListDemands", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	page, err := h.demandService.ListDemandsByProperty(c.Request.Context(), caller, c.Param("propertyID"), params)
	if err != nil {
		respondError(c, "ListDemands", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// voidDemand godoc
// @Summary Void an unpaid demand
// @Description Withdraws a demand with no payments and releases its streams for billing again.
// @Tags demands
// @Accept  json
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Param   void body dto.VoidDemandRequest true "Reason"
// @Success 200 {object} dto.DemandResponse
// @Failure 400 {object} dto.ErrorResponse "Reason is required"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Failure 409 {object} dto.ErrorResponse "Demand has payments or is already void"
// @Security BearerAuth
// @Router /demands/{demandID}/void [post]
func (h *demandHandler) voidDemand(c *gin.Context) {
	var req dto.VoidDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "VoidDemand", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	demand, err := h.demandService.VoidDemand(c.Request.Context(), caller, c.Param("demandID"), req.Reason)
	if err != nil {
		respondError(c, "VoidDemand", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDemandResponse(demand))
}
