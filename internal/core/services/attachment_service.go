package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
)

type attachmentService struct {
	BaseService
	store portssvc.AttachmentStore
}

// NewAttachmentService wraps an attachment store with authorization and logging.
func NewAttachmentService(store portssvc.AttachmentStore, opts ...Option) portssvc.AttachmentSvcFacade {
	o := buildOptions(opts)
	return &attachmentService{BaseService: o.base(), store: store}
}

func (s *attachmentService) Upload(ctx context.Context, filename string, content io.Reader, callerID string) (string, error) {
	if err := s.Authorize(ctx, callerID, portssvc.OpUploadAttachment); err != nil {
		return "", err
	}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: a file name is required", apperrors.ErrValidation)
	}
	if s.store == nil {
		return "", fmt.Errorf("%w: no attachment store configured", apperrors.ErrInternal)
	}
	ref, err := s.store.Store(ctx, name, content)
	if err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.String("filename", name))
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}
	s.LogInfo(ctx, "Attachment stored", slog.String("filename", name), slog.String("reference", ref))
	return ref, nil
}
