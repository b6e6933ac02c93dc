package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hashed", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserRepository_Create_DuplicateEmailIsConflict(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Name: "Alice", Email: "same@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Name: "Bob", Email: "same@example.com", Password: "hashed"}
	err := repo.Create(ctx, second)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_GetByEmail_MissingIsNilNil(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByID_Missing(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	victim := createTestUser(t, db, "victim@example.com")
	bystander := createTestUser(t, db, "bystander@example.com")

	tech := models.Category{Name: "Tech"}
	require.NoError(t, db.Create(&tech).Error)

	victimPost := &models.Post{Title: "VP", Content: "c", Published: true, UserID: victim.ID, Categories: []models.Category{tech}}
	require.NoError(t, db.Create(victimPost).Error)
	bystanderPost := createTestPost(t, db, bystander.ID, true)

	// The bystander interacted with the victim's post, and the victim
	// interacted with the bystander's.
	require.NoError(t, db.Create(&models.Comment{Content: "by victim", UserID: victim.ID, PostID: bystanderPost.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "on victim post", UserID: bystander.ID, PostID: victimPost.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: victim.ID, PostID: bystanderPost.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bystander.ID, PostID: victimPost.ID}).Error)

	require.NoError(t, repo.DeleteCascade(ctx, victim.ID))

	var users, posts, comments, likes, joinRows int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Where("id = ?", victim.ID).Count(&users).Error)
	require.NoError(t, db.Unscoped().Model(&models.Post{}).Where("user_id = ?", victim.ID).Count(&posts).Error)
	require.NoError(t, db.Unscoped().Model(&models.Comment{}).Where("user_id = ? OR post_id = ?", victim.ID, victimPost.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Like{}).Where("user_id = ? OR post_id = ?", victim.ID, victimPost.ID).Count(&likes).Error)
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM post_categories WHERE post_id = ?", victimPost.ID).Scan(&joinRows).Error)

	assert.Zero(t, users, "user row is hard deleted")
	assert.Zero(t, posts, "posts are hard deleted")
	assert.Zero(t, comments, "comments by the user and on their posts are gone")
	assert.Zero(t, likes, "likes by the user and on their posts are gone")
	assert.Zero(t, joinRows, "category join rows are gone")

	// The bystander and their post survive untouched.
	var bystanderPosts int64
	require.NoError(t, db.Model(&models.Post{}).Where("user_id = ?", bystander.ID).Count(&bystanderPosts).Error)
	assert.Equal(t, int64(1), bystanderPosts)
}

func TestUserRepository_DeleteCascade_Missing(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.DeleteCascade(context.Background(), 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
