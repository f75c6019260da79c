package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-cmd/xpense/internal/persistence"
	"github.com/blip-cmd/xpense/internal/persistence/flatfile"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := flatfile.New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	records := []persistence.Record{
		{"A001", "Site works", "100.00"},
		{"A002", "Office", "50.00"},
	}

	require.NoError(t, s.Save(ctx, persistence.KindAccounts, records))

	got, err := s.Load(ctx, persistence.KindAccounts)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestStore_LoadMissingFileIsEmpty(t *testing.T) {
	s, err := flatfile.New(t.TempDir())
	require.NoError(t, err)

	got, err := s.Load(context.Background(), persistence.KindReceipts)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_LoadSkipsBlankLinesAndCRLF(t *testing.T) {
	dir := t.TempDir()
	s, err := flatfile.New(dir)
	require.NoError(t, err)

	raw := "Food|meals|green\r\n\r\nTravel|visits|blue\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.txt"), []byte(raw), 0o644))

	got, err := s.Load(context.Background(), persistence.KindCategories)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, persistence.Record{"Food", "meals", "green"}, got[0])
	assert.Equal(t, persistence.Record{"Travel", "visits", "blue"}, got[1])
}

func TestStore_LoadDecodesLegacyEncoding(t *testing.T) {
	dir := t.TempDir()
	s, err := flatfile.New(dir)
	require.NoError(t, err)

	// Windows-1252: é = 0xE9.
	raw := []byte{'C', 'a', 'f', 0xE9, '|', 'm', 'e', 'a', 'l', 's', '|', 'r', 'e', 'd', '\n'}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.txt"), raw, 0o644))

	got, err := s.Load(context.Background(), persistence.KindCategories)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0][0])
}

func TestStore_SaveReplacesPreviousContents(t *testing.T) {
	dir := t.TempDir()
	s, err := flatfile.New(dir)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, s.Save(ctx, persistence.KindAccounts, []persistence.Record{{"A001", "x", "1.00"}}))
	require.NoError(t, s.Save(ctx, persistence.KindAccounts, []persistence.Record{{"A002", "y", "2.00"}}))

	got, err := s.Load(ctx, persistence.KindAccounts)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A002", got[0][0])

	// No stray temp files remain after the atomic replace.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
