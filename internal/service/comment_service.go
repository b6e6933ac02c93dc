package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles commenting on published posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID  uint   `json:"post_id"`
	Content string `json:"content"`
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create adds a comment to a published post. Commenting on a draft fails
// with NOT_FOUND, same as reading it.
func (s *CommentService) Create(ctx context.Context, actor auth.Actor, in CreateCommentInput) (*models.Comment, error) {
	if err := auth.Authorize(actor, auth.ActionCreateComment, actor.ID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	comment := &models.Comment{
		Content: in.Content,
		UserID:  actor.ID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns a post's comments, newest first. Drafts hide their
// comments along with themselves.
func (s *CommentService) ListByPost(ctx context.Context, actor auth.Actor, postID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// ListMine returns the actor's own comments across all posts.
func (s *CommentService) ListMine(ctx context.Context, actor auth.Actor) ([]*models.Comment, error) {
	if actor.Anonymous() {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	return s.commentRepo.ListByAuthor(ctx, actor.ID)
}

// Delete removes a comment. Only the comment's author may delete it; there
// is no admin override and no post-owner privilege here.
func (s *CommentService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	guard := func(ownerID uint) error {
		return auth.Authorize(actor, auth.ActionDeleteComment, ownerID)
	}
	return s.commentRepo.Delete(ctx, id, guard)
}
