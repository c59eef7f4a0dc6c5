package storage_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/SscSPs/association_backoffice/internal/adapters/storage"
	"github.com/SscSPs/association_backoffice/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_ContentAddressed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := storage.NewLocal(dir, 0)
	require.NoError(t, err)

	first, err := store.Store(ctx, "Receipt.PDF", strings.NewReader("transfer #42"))
	require.NoError(t, err)
	second, err := store.Store(ctx, "copy.pdf", strings.NewReader("transfer #42"))
	require.NoError(t, err)
	other, err := store.Store(ctx, "other.pdf", strings.NewReader("transfer #43"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "local:"))
	assert.True(t, strings.HasSuffix(first, ".pdf"))
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)

	path, err := store.Path(first)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "transfer #42", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temporary upload files are cleaned up")
}

func TestLocalStore_Rejections(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocal(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = store.Store(ctx, "big.pdf", strings.NewReader("12345"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Store(ctx, "empty.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = store.Path("local:../../etc/passwd")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = store.Path("gdrive:abc")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = storage.NewLocal("", 0)
	assert.Error(t, err)
}
