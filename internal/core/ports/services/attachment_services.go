package services

import (
	"context"
	"io"
)

// AttachmentSvcFacade accepts proof-of-transfer uploads.
type AttachmentSvcFacade interface {
	// Upload stores the file and returns the reference to pass as a payment's proofReference.
	Upload(ctx context.Context, filename string, content io.Reader, callerID string) (string, error)
}
