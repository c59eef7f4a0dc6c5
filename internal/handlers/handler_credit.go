package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

// RegisterCreditRoutes registers the credit ledger read routes.
func RegisterCreditRoutes(v1 *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := &creditHandler{creditService: creditService}
	v1.GET("/members/:memberID/credits", h.listCredits)
	v1.GET("/members/:memberID/balance", h.getBalance)
}

// listCredits godoc
// @Summary List a member's credits
// @Description Every credit, oldest first, with the obligations it was consumed against.
// @Tags credits
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} dto.Envelope{data=[]dto.CreditResponse}
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Security BearerAuth
// @Router /members/{memberID}/credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	credits, err := h.creditService.ListCredits(c.Request.Context(), c.Param("memberID"), userID)
	if err != nil {
		respondError(c, err, "Failed to list credits")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.ToCreditWithUsagesResponses(credits)))
}

// getBalance godoc
// @Summary Get a member's balance
// @Description Outstanding amount per obligation kind, available credit and net position.
// @Tags credits
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} dto.Envelope{data=dto.MemberBalanceResponse}
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Security BearerAuth
// @Router /members/{memberID}/balance [get]
func (h *creditHandler) getBalance(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	balance, err := h.creditService.GetMemberBalance(c.Request.Context(), c.Param("memberID"), userID)
	if err != nil {
		respondError(c, err, "Failed to compute member balance")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", dto.ToMemberBalanceResponse(balance)))
}
