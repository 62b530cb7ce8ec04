package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/crapsim/pkg/adapters/file"
	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/aretw0/crapsim/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunReportStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	store := file.New(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists nothing")

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "r1", Label: "first"}))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "r1", Label: "second"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "r1.json", entries[0].Name())

	got, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Label)
}

func TestFileStore_RejectsBadIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.Report{}))
	assert.Error(t, store.Save(ctx, &domain.Report{ID: "../escape"}))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".crapsim", "reports"), file.New("").BasePath)
}
