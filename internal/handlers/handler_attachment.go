package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/SscSPs/association_backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvcFacade
}

// AttachmentResponse carries the reference to pass as proofReference.
type AttachmentResponse struct {
	Reference string `json:"reference"`
}

// RegisterAttachmentRoutes registers the proof upload route.
func RegisterAttachmentRoutes(v1 *gin.RouterGroup, attachmentService portssvc.AttachmentSvcFacade) {
	h := &attachmentHandler{attachmentService: attachmentService}
	v1.POST("/attachments", h.upload)
}

// upload godoc
// @Summary Upload a proof of transfer
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Proof document"
// @Success 201 {object} dto.Envelope{data=handlers.AttachmentResponse}
// @Failure 400 {object} dto.Envelope "Missing or invalid file"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Security BearerAuth
// @Router /attachments [post]
func (h *attachmentHandler) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		bindFailed(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	ref, err := h.attachmentService.Upload(c.Request.Context(), header.Filename, file, userID)
	if err != nil {
		respondError(c, err, "Failed to store attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.OK("Attachment stored.", AttachmentResponse{Reference: ref}))
}
