// Package storage keeps proof-of-transfer attachments.
package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"golang.org/x/crypto/blake2b"
)

const (
	localPrefix = "local:"

	// DefaultMaxBytes caps a single upload.
	DefaultMaxBytes int64 = 10 << 20
)

// Local stores attachments on disk under the BLAKE2b-256 digest of their content,
// so uploading the same file twice yields the same reference.
type Local struct {
	dir      string
	maxBytes int64
}

// NewLocal creates dir if needed. maxBytes <= 0 means DefaultMaxBytes.
func NewLocal(dir string, maxBytes int64) (*Local, error) {
	if dir == "" {
		return nil, errors.New("attachment directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create attachment directory: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Local{dir: dir, maxBytes: maxBytes}, nil
}

// Store implements services.AttachmentStore.
func (l *Local) Store(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("init hash: %w", err)
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	written, err := io.Copy(io.MultiWriter(tmp, hasher), io.LimitReader(content, l.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close attachment: %w", closeErr)
	}
	if written == 0 {
		return "", fmt.Errorf("%w: attachment is empty", apperrors.ErrValidation)
	}
	if written > l.maxBytes {
		return "", fmt.Errorf("%w: attachment exceeds %d bytes", apperrors.ErrValidation, l.maxBytes)
	}

	name := hex.EncodeToString(hasher.Sum(nil)) + strings.ToLower(filepath.Ext(filename))
	final := filepath.Join(l.dir, name)
	if _, err := os.Stat(final); err == nil {
		return localPrefix + name, nil
	}
	if err := os.Rename(tmpName, final); err != nil {
		return "", fmt.Errorf("store attachment: %w", err)
	}
	return localPrefix + name, nil
}

// Path resolves a reference returned by Store to its file on disk.
func (l *Local) Path(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, localPrefix)
	if !ok || name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: not a local attachment reference", apperrors.ErrValidation)
	}
	return filepath.Join(l.dir, name), nil
}
