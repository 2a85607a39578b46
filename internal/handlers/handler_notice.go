package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/dto"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// noticeHandler handles HTTP requests related to enforcement notices.
type noticeHandler struct {
	noticeService portssvc.NoticeSvcFacade
}

// newNoticeHandler creates a new noticeHandler.
func newNoticeHandler(ns portssvc.NoticeSvcFacade) *noticeHandler {
	return &noticeHandler{
		noticeService: ns,
	}
}

// registerNoticeRoutes registers notice routes.
func registerNoticeRoutes(rg *gin.RouterGroup, noticeService portssvc.NoticeSvcFacade) {
	h := newNoticeHandler(noticeService)

	demandNotices := rg.Group("/demands/:demandID/notices")
	{
		demandNotices.POST("", h.issueNotice)
		demandNotices.GET("", h.listNotices)
	}

	notices := rg.Group("/notices")
	{
		notices.GET("/:noticeID", h.getNotice)
		notices.PATCH("/:noticeID/status", h.updateNoticeStatus)
	}
}

// issueNotice godoc
// @Summary Issue a notice on a demand
// @Description Issues a manual notice. A higher-severity notice needs the open lower one escalated first.
// @Tags notices
// @Accept  json
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Param   notice body dto.IssueNoticeRequest true "Notice type"
// @Success 201 {object} dto.NoticeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Failure 409 {object} dto.ErrorResponse "A notice of this or higher severity is already open"
// @Security BearerAuth
// @Router /demands/{demandID}/notices [post]
func (h *noticeHandler) issueNotice(c *gin.Context) {
	var req dto.IssueNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "IssueNotice", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	notice, err := h.noticeService.IssueNotice(c.Request.Context(), caller, c.Param("demandID"), req.NoticeType)
	if err != nil {
		respondError(c, "IssueNotice", err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Notice issued", slog.String("notice_id", notice.NoticeID), slog.String("notice_type", string(notice.NoticeType)))
	c.JSON(http.StatusCreated, dto.ToNoticeResponse(notice))
}

// listNotices godoc
// @Summary List a demand's notices
// @Tags notices
// @Produce  json
// @Param   demandID path string true "Demand ID"
// @Success 200 {array} dto.NoticeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Demand not found"
// @Security BearerAuth
// @Router /demands/{demandID}/notices [get]
func (h *noticeHandler) listNotices(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	notices, err := h.noticeService.ListNoticesByDemand(c.Request.Context(), caller, c.Param("demandID"))
	if err != nil {
		respondError(c, "ListNotices", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListNoticeResponse(notices))
}

// getNotice godoc
// @Summary Get a notice
// @Tags notices
// @Produce  json
// @Param   noticeID path string true "Notice ID"
// @Success 200 {object} dto.NoticeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Security BearerAuth
// @Router /notices/{noticeID} [get]
func (h *noticeHandler) getNotice(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	notice, err := h.noticeService.GetNoticeByID(c.Request.Context(), caller, c.Param("noticeID"))
	if err != nil {
		respondError(c, "GetNotice", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoticeResponse(notice))
}

// updateNoticeStatus godoc
// @Summary Update a notice's delivery status
// @Description Moves a notice generated→sent→viewed, or escalates an open notice. Resolution happens only through payment.
// @Tags notices
// @Accept  json
// @Produce  json
// @Param   noticeID path string true "Notice ID"
// @Param   status body dto.UpdateNoticeStatusRequest true "New status"
// @Success 200 {object} dto.NoticeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /notices/{noticeID}/status [patch]
func (h *noticeHandler) updateNoticeStatus(c *gin.Context) {
	var req dto.UpdateNoticeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateNoticeStatus", err)
		return
	}

	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	notice, err := h.noticeService.UpdateNoticeStatus(c.Request.Context(), caller, c.Param("noticeID"), req.Status)
	if err != nil {
		respondError(c, "UpdateNoticeStatus", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoticeResponse(notice))
}
