package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/libraries"
)

func TestSeedCommandParseFlags(t *testing.T) {
	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-libraries", "2", "-books-per-library", "4", "-db", "x.db"}))

	assert.Equal(t, 2, cmd.Libraries)
	assert.Equal(t, 4, cmd.BooksPerLibrary)
	assert.Equal(t, "x.db", cmd.DatabasePath)

	assert.Error(t, NewSeedCommand().ParseFlags([]string{"-libraries", "-1"}))
	assert.Error(t, NewSeedCommand().ParseFlags([]string{"-books-per-library", "-3"}))
}

func TestSeedCommandRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")

	var out bytes.Buffer
	cmd := NewSeedCommand()
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-libraries", "2", "-books-per-library", "3", "-db", dbPath}))
	require.NoError(t, cmd.Run(config.Database{LogLevel: "silent"}))

	assert.Contains(t, out.String(), "Seeded 2 libraries and 6 books")

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	totalLibraries, totalBooks, err := db.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), totalLibraries)
	assert.Equal(t, int64(6), totalBooks)

	library, err := libraries.NewRepository(db.DB).GetWithBooks(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Library 1", library.Name)
	require.Len(t, library.Books, 3)
	assert.Equal(t, "Book 1.1", library.Books[0].Name)

	page, err := books.NewRepository(db.DB).FindPage(context.Background(), catalog.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.TotalElements)
}

func TestSeedCommandVerbose(t *testing.T) {
	var out bytes.Buffer
	cmd := NewSeedCommand()
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{
		"-libraries", "1", "-books-per-library", "1", "-verbose",
		"-db", filepath.Join(t.TempDir(), "seed.db"),
	}))
	require.NoError(t, cmd.Run(config.Database{LogLevel: "silent"}))

	assert.Contains(t, out.String(), `+ library 1 "Library 1"`)
	assert.Contains(t, out.String(), `+ book 1 "Book 1.1"`)
}

func TestHashKeyCommand(t *testing.T) {
	const key = "a-very-long-api-key-value"

	t.Run("key flag", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewHashKeyCommand()
		cmd.Out = &out
		require.NoError(t, cmd.ParseFlags([]string{"-key", key, "-cost", "4"}))
		require.NoError(t, cmd.Run())

		hash := strings.TrimSpace(out.String())
		assert.NoError(t, auth.CheckAPIKey(key, hash))
	})

	t.Run("key from stdin", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewHashKeyCommand()
		cmd.In = strings.NewReader(key + "\n")
		cmd.Out = &out
		require.NoError(t, cmd.ParseFlags([]string{"-cost", "4"}))
		require.NoError(t, cmd.Run())

		assert.NoError(t, auth.CheckAPIKey(key, strings.TrimSpace(out.String())))
	})

	t.Run("short key", func(t *testing.T) {
		cmd := NewHashKeyCommand()
		cmd.Out = &bytes.Buffer{}
		require.NoError(t, cmd.ParseFlags([]string{"-key", "short", "-cost", "4"}))
		assert.ErrorIs(t, cmd.Run(), auth.ErrAPIKeyTooShort)
	})

	t.Run("invalid cost", func(t *testing.T) {
		assert.Error(t, NewHashKeyCommand().ParseFlags([]string{"-cost", "99"}))
	})
}
