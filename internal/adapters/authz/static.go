// Package authz decides which callers may run which engine operations.
package authz

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
)

// Static allows read operations to any identified caller and write operations
// to a fixed set of treasurers. An empty treasurer set allows every caller.
type Static struct {
	treasurers map[string]struct{}
}

// NewStatic builds a Static authorizer from treasurer ids; blanks are ignored.
func NewStatic(treasurerIDs []string) *Static {
	s := &Static{treasurers: make(map[string]struct{}, len(treasurerIDs))}
	for _, id := range treasurerIDs {
		if id = strings.TrimSpace(id); id != "" {
			s.treasurers[id] = struct{}{}
		}
	}
	return s
}

// Authorize implements services.Authorizer.
func (s *Static) Authorize(_ context.Context, callerID string, op portssvc.Operation) error {
	if strings.TrimSpace(callerID) == "" {
		return fmt.Errorf("%w: caller is not identified", apperrors.ErrUnauthorized)
	}
	if op.IsReadOnly() || len(s.treasurers) == 0 {
		return nil
	}
	if _, ok := s.treasurers[callerID]; ok {
		return nil
	}
	return fmt.Errorf("%w: %s requires treasurer rights", apperrors.ErrForbidden, op)
}
