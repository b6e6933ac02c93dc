package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	countFn         func(context.Context) (int64, error)
	deleteCascadeFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
		deleteCascadeFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post, []uint) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	listPublishedFn  func(context.Context, int, int, uint) ([]*models.Post, error)
	listAllFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	listByAuthorFn   func(context.Context, uint, bool, uint) ([]*models.Post, error)
	listByCategoryFn func(context.Context, string, uint) ([]*models.Post, error)
	updateFn         func(context.Context, uint, func(uint) error, func(*models.Post), *[]uint) (*models.Post, error)
	deleteFn         func(context.Context, uint, func(uint) error) error
	countFn          func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	return s.createFn(ctx, post, categoryIDs)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) ListPublished(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.listPublishedFn(ctx, limit, offset, viewerID)
}
func (s *postRepoStub) ListAll(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.listAllFn(ctx, limit, offset, viewerID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, publishedOnly bool, viewerID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, publishedOnly, viewerID)
}
func (s *postRepoStub) ListByCategory(ctx context.Context, name string, viewerID uint) ([]*models.Post, error) {
	return s.listByCategoryFn(ctx, name, viewerID)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, guard func(uint) error, apply func(*models.Post), categoryIDs *[]uint) (*models.Post, error) {
	return s.updateFn(ctx, id, guard, apply, categoryIDs)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint, guard func(uint) error) error {
	return s.deleteFn(ctx, id, guard)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, p *models.Post, _ []uint) error { p.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) { return &models.Post{ID: id, Published: true}, nil },
		listPublishedFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listAllFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _ bool, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listByCategoryFn: func(_ context.Context, _ string, _ uint) ([]*models.Post, error) { return nil, nil },
		updateFn: func(_ context.Context, id uint, guard func(uint) error, apply func(*models.Post), _ *[]uint) (*models.Post, error) {
			post := &models.Post{ID: id, UserID: 1}
			if err := guard(post.UserID); err != nil {
				return nil, err
			}
			apply(post)
			return post, nil
		},
		deleteFn: func(_ context.Context, _ uint, guard func(uint) error) error {
			return guard(1)
		},
		countFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByPostFn   func(context.Context, uint) ([]*models.Comment, error)
	listByAuthorFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn       func(context.Context, uint, func(uint) error) error
	countFn        func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Comment, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint, guard func(uint) error) error {
	return s.deleteFn(ctx, id, guard)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:       func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn:   func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint, guard func(uint) error) error {
			return guard(1)
		},
		countFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn       func(context.Context, uint, uint) (bool, error)
	existsFn       func(context.Context, uint, uint) (bool, error)
	countFn        func(context.Context) (int64, error)
	countForPostFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, postID, userID uint) (bool, error) {
	return s.toggleFn(ctx, postID, userID)
}
func (s *likeRepoStub) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	return s.existsFn(ctx, postID, userID)
}
func (s *likeRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *likeRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		existsFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countFn:        func(_ context.Context) (int64, error) { return 0, nil },
		countForPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn   func(context.Context, *models.Category) error
	updateFn   func(context.Context, *models.Category) error
	getByIDFn  func(context.Context, uint) (*models.Category, error)
	getByIDsFn func(context.Context, []uint) ([]models.Category, error)
	listFn     func(context.Context) ([]models.Category, error)
	deleteFn   func(context.Context, uint) error
	countFn    func(context.Context) (int64, error)
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *categoryRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn:   func(_ context.Context, c *models.Category) error { c.ID = 1; return nil },
		updateFn:   func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn:  func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		getByIDsFn: func(_ context.Context, _ []uint) ([]models.Category, error) { return nil, nil },
		listFn:     func(_ context.Context) ([]models.Category, error) { return nil, nil },
		deleteFn:   func(_ context.Context, _ uint) error { return nil },
		countFn:    func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
