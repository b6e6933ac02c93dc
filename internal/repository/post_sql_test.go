package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// The counts and the viewer's liked flag are computed by correlated
// subselects in the post query itself, so fetching a post costs one posts
// query plus the association preloads, never a query per count.
func TestPostRepository_GetByID_CountsComputedInPostQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	postRows := sqlmock.NewRows([]string{"id", "title", "content", "published", "user_id", "comments_count", "likes_count", "liked"}).
		AddRow(1, "Hello", "World", true, 10, 3, 5, true)
	mock.ExpectQuery(`SELECT posts\..*comments_count.*likes_count.*liked.* FROM "posts"`).
		WillReturnRows(postRows)

	// Preloads run alphabetically: Categories (via the join table), then User.
	mock.ExpectQuery(`FROM "post_categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "category_id"}))
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(10, "Author"))

	post, err := repo.GetByID(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, post.CommentsCount)
	assert.Equal(t, 5, post.LikesCount)
	assert.True(t, post.Liked)
	assert.Equal(t, "Author", post.User.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_AnonymousViewerSelectsFalseLiked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// The anonymous query hard-codes liked to false rather than running the
	// EXISTS subselect with a zero user id.
	mock.ExpectQuery(`false as liked.* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "liked"}).
			AddRow(1, "Hello", 10, false))
	mock.ExpectQuery(`FROM "post_categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "category_id"}))
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(10, "Author"))

	post, err := repo.GetByID(ctx, 1, 0)
	require.NoError(t, err)
	assert.False(t, post.Liked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFoundSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`FROM "posts"`).WillReturnError(gorm.ErrRecordNotFound)

	_, err := repo.GetByID(context.Background(), 99, 7)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Count_ExcludesSoftDeleted(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE "posts"\."deleted_at" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
