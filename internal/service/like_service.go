package service

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// LikeService handles the idempotent like toggle.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

// ToggleResult reports the post's state after a toggle.
type ToggleResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// Toggle flips the actor's like on a published post and returns the
// resulting state. Toggling twice restores the original state exactly.
func (s *LikeService) Toggle(ctx context.Context, actor auth.Actor, postID uint) (*ToggleResult, error) {
	if err := auth.Authorize(actor, auth.ActionToggleLike, actor.ID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, models.NewNotFoundError("Post", postID)
	}

	liked, err := s.likeRepo.Toggle(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Liked: liked, LikesCount: int(count)}, nil
}

// HasLiked reports whether the actor currently likes the post. Anonymous
// actors never like anything; drafts stay invisible to non-authors.
func (s *LikeService) HasLiked(ctx context.Context, actor auth.Actor, postID uint) (bool, error) {
	if actor.Anonymous() {
		return false, nil
	}

	post, err := s.postRepo.GetByID(ctx, postID, actor.ID)
	if err != nil {
		return false, err
	}
	if !post.Published && post.UserID != actor.ID && !actor.IsAdmin() {
		return false, models.NewNotFoundError("Post", postID)
	}

	return s.likeRepo.Exists(ctx, postID, actor.ID)
}
