package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Update and
// Delete take a guard callback that is re-evaluated against the stored owner
// inside the mutating transaction, so an ownership decision can never go
// stale between the check and the write.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, categoryIDs []uint) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	ListPublished(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error)
	ListAll(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, publishedOnly bool, viewerID uint) ([]*models.Post, error)
	ListByCategory(ctx context.Context, name string, viewerID uint) ([]*models.Post, error)
	Update(ctx context.Context, id uint, guard func(ownerID uint) error, apply func(post *models.Post), categoryIDs *[]uint) (*models.Post, error)
	Delete(ctx context.Context, id uint, guard func(ownerID uint) error) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", viewerID)
	}
	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	defer observability.TrackQuery("create", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(categoryIDs) > 0 {
			cats, err := loadCategories(tx, categoryIDs)
			if err != nil {
				return err
			}
			post.Categories = cats
		}
		if err := tx.Create(post).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	fetch := func() error {
		if err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
			Preload("User").
			Preload("Categories").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if viewerID == 0 {
		// The anonymous view carries no per-viewer liked flag, so it is safe
		// to share through the cache.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Preload("Categories").
		Where("posts.published = ?", true).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Preload("Categories").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, publishedOnly bool, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	query := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Preload("Categories").
		Where("posts.user_id = ?", authorID)
	if publishedOnly {
		query = query.Where("posts.published = ?", true)
	}
	err := query.
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByCategory matches the category name case-insensitively but exactly:
// "tech" and "TECH" return the same set, "tech news" does not match "tech".
func (r *postRepository) ListByCategory(ctx context.Context, name string, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(readDB(r.db).WithContext(ctx), viewerID).
		Preload("User").
		Preload("Categories").
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Joins("JOIN categories ON categories.id = post_categories.category_id").
		Where("LOWER(categories.name) = LOWER(?)", name).
		Where("posts.published = ?", true).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update re-loads the post inside the transaction, re-evaluates the guard
// against the stored owner, applies the field changes and, when categoryIDs
// is non-nil, replaces the whole category set (set semantics: the stored set
// becomes exactly the given set).
func (r *postRepository) Update(ctx context.Context, id uint, guard func(ownerID uint) error, apply func(post *models.Post), categoryIDs *[]uint) (*models.Post, error) {
	defer observability.TrackQuery("update", "posts")()

	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		if err := guard(post.UserID); err != nil {
			return err
		}

		apply(&post)
		if err := tx.Save(&post).Error; err != nil {
			return models.NewInternalError(err)
		}

		if categoryIDs != nil {
			cats, err := loadCategories(tx, *categoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Categories").Replace(cats); err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	return r.GetByID(ctx, id, post.UserID)
}

// Delete re-checks the guard against the stored owner inside the deleting
// transaction, then soft-deletes the post. Comments and likes stay in place;
// the post's soft delete hides them from every query path.
func (r *postRepository) Delete(ctx context.Context, id uint, guard func(ownerID uint) error) error {
	defer observability.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		if err := guard(post.UserID); err != nil {
			return err
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// loadCategories fetches the categories for the given ids and fails with
// NOT_FOUND when any id does not resolve.
func loadCategories(tx *gorm.DB, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var cats []models.Category
	if err := tx.Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(cats) != len(uniqueIDs(ids)) {
		return nil, models.NewNotFoundError("Category", ids)
	}
	return cats, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
