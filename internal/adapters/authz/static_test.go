package authz_test

import (
	"context"
	"testing"

	"github.com/SscSPs/association_backoffice/internal/adapters/authz"
	"github.com/SscSPs/association_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/association_backoffice/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
)

func TestStaticAuthorize(t *testing.T) {
	restricted := authz.NewStatic([]string{"treasurer", " ", ""})
	open := authz.NewStatic(nil)

	tests := []struct {
		name    string
		authz   *authz.Static
		caller  string
		op      portssvc.Operation
		wantErr error
	}{
		{name: "treasurer records", authz: restricted, caller: "treasurer", op: portssvc.OpRecordPayment},
		{name: "member reads", authz: restricted, caller: "member", op: portssvc.OpViewCredits},
		{name: "member cannot edit", authz: restricted, caller: "member", op: portssvc.OpEditPayment, wantErr: apperrors.ErrForbidden},
		{name: "member cannot upload", authz: restricted, caller: "member", op: portssvc.OpUploadAttachment, wantErr: apperrors.ErrForbidden},
		{name: "anonymous rejected", authz: restricted, caller: "", op: portssvc.OpViewPayments, wantErr: apperrors.ErrUnauthorized},
		{name: "open mode allows writes", authz: open, caller: "anyone", op: portssvc.OpRecordGeneralPayment},
		{name: "open mode still needs a caller", authz: open, caller: "  ", op: portssvc.OpManageObligations, wantErr: apperrors.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.authz.Authorize(context.Background(), tt.caller, tt.op)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
