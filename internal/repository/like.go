package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// errDuplicateLike signals that an insert lost the race against a concurrent
// toggle on the same (user, post) pair.
var errDuplicateLike = errors.New("duplicate like")

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	// Toggle flips the like state for the pair and reports the resulting
	// state: true when the like now exists, false when it was removed.
	Toggle(ctx context.Context, postID, userID uint) (bool, error)
	Exists(ctx context.Context, postID, userID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle runs the read-then-write sequence in one transaction. Two
// concurrent toggles can both observe "no like" and race on the insert; the
// unique index on (user_id, post_id) makes the loser fail with a duplicate,
// and the retry re-reads in a fresh transaction and lands on the delete
// branch. Postgres aborts the whole transaction on a constraint violation,
// so the retry cannot reuse the first one.
func (r *likeRepository) Toggle(ctx context.Context, postID, userID uint) (bool, error) {
	defer observability.TrackQuery("toggle", "likes")()

	liked, err := r.toggleOnce(ctx, postID, userID)
	if errors.Is(err, errDuplicateLike) {
		observability.LikeToggleRaces.Inc()
		liked, err = r.toggleOnce(ctx, postID, userID)
	}
	if err != nil {
		return false, err
	}

	cache.InvalidatePost(ctx, postID)
	return liked, nil
}

func (r *likeRepository) toggleOnce(ctx context.Context, postID, userID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		var existing models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&models.Like{}, existing.ID).Error; err != nil {
				return models.NewInternalError(err)
			}
			liked = false
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{UserID: userID, PostID: postID}
			if err := tx.Create(&like).Error; err != nil {
				if isUniqueViolation(err) {
					return errDuplicateLike
				}
				return models.NewInternalError(err)
			}
			liked = true
			return nil
		default:
			return models.NewInternalError(err)
		}
	})
	return liked, err
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).Model(&models.Like{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
