package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	tech := models.Category{Name: "Tech"}
	require.NoError(t, db.Create(&tech).Error)

	post := &models.Post{Title: "Hello", Content: "World", Published: true, UserID: user.ID}
	require.NoError(t, repo.Create(ctx, post, []uint{tech.ID}))

	got, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, user.ID, got.User.ID)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Tech", got.Categories[0].Name)
	assert.Equal(t, 0, got.LikesCount)
	assert.False(t, got.Liked)
}

func TestPostRepository_Create_UnknownCategory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author@example.com")

	post := &models.Post{Title: "T", Content: "C", UserID: user.ID}
	err := repo.Create(context.Background(), post, []uint{42})

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_GetByID_ComputedCounts(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	fan := createTestUser(t, db, "fan@example.com")
	post := createTestPost(t, db, author.ID, true)

	require.NoError(t, db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "Nice", UserID: fan.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "Very nice", UserID: author.ID, PostID: post.ID}).Error)

	viewedByFan, err := repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewedByFan.LikesCount)
	assert.Equal(t, 2, viewedByFan.CommentsCount)
	assert.True(t, viewedByFan.Liked)

	viewedByAuthor, err := repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, viewedByAuthor.Liked, "liked flag is per viewer")
}

func TestPostRepository_ListPublished_ExcludesDrafts(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	createTestPost(t, db, user.ID, true)
	createTestPost(t, db, user.ID, false)
	createTestPost(t, db, user.ID, true)

	posts, err := repo.ListPublished(ctx, 20, 0, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	for _, p := range posts {
		assert.True(t, p.Published)
	}

	all, err := repo.ListAll(ctx, 20, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPostRepository_ListByCategory_CaseInsensitive(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	tech := models.Category{Name: "Tech"}
	news := models.Category{Name: "Tech News"}
	require.NoError(t, db.Create(&tech).Error)
	require.NoError(t, db.Create(&news).Error)

	published := &models.Post{Title: "A", Content: "a", Published: true, UserID: user.ID, Categories: []models.Category{tech}}
	draft := &models.Post{Title: "B", Content: "b", Published: false, UserID: user.ID, Categories: []models.Category{tech}}
	other := &models.Post{Title: "C", Content: "c", Published: true, UserID: user.ID, Categories: []models.Category{news}}
	require.NoError(t, db.Create(published).Error)
	require.NoError(t, db.Create(draft).Error)
	require.NoError(t, db.Create(other).Error)

	for _, query := range []string{"tech", "TECH", "Tech"} {
		posts, err := repo.ListByCategory(ctx, query, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1, "query %q", query)
		assert.Equal(t, published.ID, posts[0].ID)
	}

	// Exact match only: "tech" does not match "Tech News".
	posts, err := repo.ListByCategory(ctx, "tech news", 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, other.ID, posts[0].ID)
}

func TestPostRepository_Update_GuardRunsInsideTransaction(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, user.ID, true)

	var guardSawOwner uint
	denied := models.NewForbiddenError("You do not own this resource")
	_, err := repo.Update(ctx, post.ID, func(ownerID uint) error {
		guardSawOwner = ownerID
		return denied
	}, func(p *models.Post) {
		p.Title = "Should not happen"
	}, nil)

	require.ErrorIs(t, err, denied)
	assert.Equal(t, user.ID, guardSawOwner, "guard gets the stored owner, not caller input")

	var unchanged models.Post
	require.NoError(t, db.First(&unchanged, post.ID).Error)
	assert.Equal(t, "Title", unchanged.Title, "denied update leaves the row untouched")
}

func TestPostRepository_Update_ReplaceCategoriesSetSemantics(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	a := models.Category{Name: "A"}
	b := models.Category{Name: "B"}
	c := models.Category{Name: "C"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Create(&c).Error)

	post := &models.Post{Title: "T", Content: "C", Published: true, UserID: user.ID, Categories: []models.Category{a, b}}
	require.NoError(t, db.Create(post).Error)

	allow := func(uint) error { return nil }
	newSet := []uint{b.ID, c.ID}
	updated, err := repo.Update(ctx, post.ID, allow, func(*models.Post) {}, &newSet)
	require.NoError(t, err)

	names := make([]string, 0, len(updated.Categories))
	for _, cat := range updated.Categories {
		names = append(names, cat.Name)
	}
	assert.ElementsMatch(t, []string{"B", "C"}, names, "the stored set becomes exactly the given set")

	// Empty set clears all categories.
	empty := []uint{}
	cleared, err := repo.Update(ctx, post.ID, allow, func(*models.Post) {}, &empty)
	require.NoError(t, err)
	assert.Empty(t, cleared.Categories)
}

func TestPostRepository_Delete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, user.ID, true)

	require.NoError(t, repo.Delete(ctx, post.ID, func(uint) error { return nil }))

	_, err := repo.GetByID(ctx, post.ID, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// Deleting again reports not found, not success.
	err = repo.Delete(ctx, post.ID, func(uint) error { return nil })
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
