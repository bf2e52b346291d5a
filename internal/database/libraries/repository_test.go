package libraries

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database, func()) {
	dbPath := "./test_libraries_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func pageRequest(page, size int) catalog.PageRequest {
	return catalog.PageRequest{
		Page: page,
		Size: size,
		Sort: []catalog.SortOrder{{Field: "id", Column: "id"}},
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first := &entities.Library{Name: "Central"}
	require.NoError(t, repo.Create(ctx, first))
	second := &entities.Library{ID: 99, Name: "North"}
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID, "caller supplied ID must be ignored")
	assert.False(t, first.CreatedAt.IsZero())
}

func TestRepository_CreateNeverReusesIDs(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Library{Name: "Central"}))
	highest := &entities.Library{Name: "North"}
	require.NoError(t, repo.Create(ctx, highest))
	require.Equal(t, uint(2), highest.ID)

	require.NoError(t, repo.Delete(ctx, highest.ID))

	next := &entities.Library{Name: "South"}
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, uint(3), next.ID, "a deleted ID must not be handed out again")
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	library := &entities.Library{Name: "Central"}
	require.NoError(t, repo.Create(ctx, library))

	found, err := repo.GetByID(ctx, library.ID)
	require.NoError(t, err)
	assert.Equal(t, "Central", found.Name)

	_, err = repo.GetByID(ctx, 999)
	require.Error(t, err)
	assert.True(t, catalog.IsReferenceNotFound(err))
}

func TestRepository_GetWithBooks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	library := &entities.Library{Name: "Central"}
	require.NoError(t, repo.Create(ctx, library))
	require.NoError(t, db.DB.Create(&entities.Book{Name: "Dune", LibraryID: library.ID}).Error)
	require.NoError(t, db.DB.Create(&entities.Book{Name: "Emma", LibraryID: library.ID}).Error)

	found, err := repo.GetWithBooks(ctx, library.ID)
	require.NoError(t, err)
	require.Len(t, found.Books, 2)
	assert.Equal(t, "Dune", found.Books[0].Name)
}

func TestRepository_Save(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	library := &entities.Library{Name: "Central"}
	require.NoError(t, repo.Create(ctx, library))

	library.Name = "Central Branch"
	require.NoError(t, repo.Save(ctx, library))

	found, err := repo.GetByID(ctx, library.ID)
	require.NoError(t, err)
	assert.Equal(t, "Central Branch", found.Name)
}

func TestRepository_Delete(t *testing.T) {
	t.Run("cascades to owned books", func(t *testing.T) {
		repo, db, cleanup := setupTestDB(t)
		defer cleanup()
		ctx := context.Background()

		library := &entities.Library{Name: "Central"}
		require.NoError(t, repo.Create(ctx, library))
		other := &entities.Library{Name: "North"}
		require.NoError(t, repo.Create(ctx, other))
		require.NoError(t, db.DB.Create(&entities.Book{Name: "Dune", LibraryID: library.ID}).Error)
		require.NoError(t, db.DB.Create(&entities.Book{Name: "Emma", LibraryID: other.ID}).Error)

		require.NoError(t, repo.Delete(ctx, library.ID))

		_, err := repo.GetByID(ctx, library.ID)
		assert.True(t, catalog.IsReferenceNotFound(err))

		var remaining []entities.Book
		require.NoError(t, db.DB.Find(&remaining).Error)
		require.Len(t, remaining, 1)
		assert.Equal(t, "Emma", remaining[0].Name)
	})

	t.Run("absent library", func(t *testing.T) {
		repo, _, cleanup := setupTestDB(t)
		defer cleanup()

		err := repo.Delete(context.Background(), 42)
		assert.True(t, catalog.IsReferenceNotFound(err))
	})
}

func TestRepository_FindPage(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, name := range []string{"Delta", "Alpha", "Charlie", "Bravo", "Echo"} {
		require.NoError(t, repo.Create(ctx, &entities.Library{Name: name}))
	}

	t.Run("first page", func(t *testing.T) {
		page, err := repo.FindPage(ctx, pageRequest(0, 2))
		require.NoError(t, err)
		assert.Len(t, page.Content, 2)
		assert.Equal(t, int64(5), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, "Delta", page.Content[0].Name)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, err := repo.FindPage(ctx, pageRequest(2, 2))
		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.True(t, page.Last)
	})

	t.Run("beyond last page", func(t *testing.T) {
		page, err := repo.FindPage(ctx, pageRequest(10, 2))
		require.NoError(t, err)
		assert.Empty(t, page.Content)
		assert.Equal(t, int64(5), page.TotalElements)
	})

	t.Run("sorted by name descending", func(t *testing.T) {
		req := catalog.PageRequest{
			Page: 0,
			Size: 5,
			Sort: []catalog.SortOrder{{Field: "name", Column: "name", Desc: true}},
		}
		page, err := repo.FindPage(ctx, req)
		require.NoError(t, err)
		names := make([]string, 0, len(page.Content))
		for _, l := range page.Content {
			names = append(names, l.Name)
		}
		assert.Equal(t, []string{"Echo", "Delta", "Charlie", "Bravo", "Alpha"}, names)
	})
}
