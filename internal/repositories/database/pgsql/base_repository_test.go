package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantErr: apperrors.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), wantErr: apperrors.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: pgUniqueViolation}, wantErr: apperrors.ErrDuplicate},
		{name: "foreign key violation", err: &pgconn.PgError{Code: pgForeignKeyViolation}, wantErr: apperrors.ErrNotFound},
		{name: "anything else", err: errors.New("connection reset"), wantErr: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertErr(tt.err, "payment p1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, got, tt.wantErr)
				return
			}
			var appErr *apperrors.AppError
			assert.ErrorAs(t, got, &appErr)
			assert.Equal(t, 500, appErr.Code)
			assert.ErrorIs(t, got, tt.err)
		})
	}
	assert.NoError(t, convertErr(nil, "payment p1"))
}

func TestForUpdate(t *testing.T) {
	locking := BaseRepository{lock: true}
	reading := BaseRepository{}
	assert.Equal(t, "SELECT 1 FOR UPDATE", locking.forUpdate("SELECT 1"))
	assert.Equal(t, "SELECT 1", reading.forUpdate("SELECT 1"))
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("UPDATE 0"), "credit c1"), apperrors.ErrNotFound)
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1"), "credit c1"))
}
