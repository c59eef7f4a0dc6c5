package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
}

// RegisterObligationRoutes registers obligation administration routes.
func RegisterObligationRoutes(v1 *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade) {
	h := &obligationHandler{obligationService: obligationService}
	v1.POST("/members/:memberID/obligations", h.createObligation)
	v1.GET("/members/:memberID/obligations", h.listObligations)
	v1.GET("/obligations/:kind/:obligationID", h.getObligation)
}

// createObligation godoc
// @Summary Create an obligation
// @Description Creates an initial debt (needs year), monthly due, assistance charge (needs assistanceType) or standing obligation (needs dueDate).
// @Tags obligations
// @Accept json
// @Produce json
// @Param memberID path string true "Member ID"
// @Param obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.Envelope{data=dto.ObligationResponse}
// @Failure 400 {object} dto.Envelope "Validation error"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Security BearerAuth
// @Router /members/{memberID}/obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	ob, err := h.obligationService.CreateObligation(c.Request.Context(), c.Param("memberID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create obligation")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Obligation created.", dto.ToObligationResponse(ob)))
}

// listObligations godoc
// @Summary List a member's obligations
// @Tags obligations
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} dto.Envelope{data=[]dto.ObligationResponse}
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Security BearerAuth
// @Router /members/{memberID}/obligations [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	obs, err := h.obligationService.ListObligations(c.Request.Context(), c.Param("memberID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list obligations")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.ToObligationResponses(obs)))
}

// getObligation godoc
// @Summary Get an obligation
// @Tags obligations
// @Produce json
// @Param kind path string true "Obligation kind" Enums(INITIAL_DEBT, MONTHLY_DUE, ASSISTANCE_CHARGE, STANDING_OBLIGATION)
// @Param obligationID path string true "Obligation ID"
// @Success 200 {object} dto.Envelope{data=dto.ObligationResponse}
// @Failure 400 {object} dto.Envelope "Unknown kind"
// @Failure 404 {object} dto.Envelope "Obligation not found"
// @Security BearerAuth
// @Router /obligations/{kind}/{obligationID} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	kind := domain.ObligationKind(strings.ToUpper(c.Param("kind")))
	if !kind.IsValid() {
		c.JSON(http.StatusBadRequest, dto.Fail("Unknown obligation kind"))
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}
	ob, err := h.obligationService.GetObligation(c.Request.Context(), domain.ObligationRef{Kind: kind, ID: c.Param("obligationID")}, userID)
	if err != nil {
		respondError(c, err, "Failed to get obligation")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.ToObligationResponse(ob)))
}
