package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000 // 50K characters
)

// PostService handles post lifecycle and the published/draft visibility
// rules. Drafts are visible only to their author and admins.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Published   bool   `json:"published"`
	CategoryIDs []uint `json:"category_ids"`
}

// UpdatePostInput carries the optional post fields; nil means leave the
// stored value untouched, which is why Published is a pointer and not a bool.
type UpdatePostInput struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Published   *bool   `json:"published"`
	CategoryIDs *[]uint `json:"category_ids"`
}

type ListPostsInput struct {
	Limit  int
	Offset int
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

// Create makes a new post owned by the actor. The owner is always the actor;
// there is no way to create a post on someone else's behalf.
func (s *PostService) Create(ctx context.Context, actor auth.Actor, in CreatePostInput) (*models.Post, error) {
	if err := auth.Authorize(actor, auth.ActionCreatePost, actor.ID); err != nil {
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		UserID:    actor.ID,
	}
	if err := s.postRepo.Create(ctx, post, in.CategoryIDs); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, actor.ID)
}

// Get returns a post, hiding unpublished drafts from everyone but the author
// and admins. The draft case answers NOT_FOUND rather than FORBIDDEN so the
// existence of the draft is not revealed.
func (s *PostService) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if !post.Published && post.UserID != actor.ID && !actor.IsAdmin() {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) ListPublished(ctx context.Context, actor auth.Actor, in ListPostsInput) ([]*models.Post, error) {
	return s.postRepo.ListPublished(ctx, in.Limit, in.Offset, actor.ID)
}

// ListByCategory returns published posts carrying the named category. The
// name match is case-insensitive.
func (s *PostService) ListByCategory(ctx context.Context, actor auth.Actor, name string) ([]*models.Post, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Category name is required")
	}
	return s.postRepo.ListByCategory(ctx, name, actor.ID)
}

// ListByAuthor shows another author's published posts; the author themselves
// and admins also see the drafts.
func (s *PostService) ListByAuthor(ctx context.Context, actor auth.Actor, authorID uint) ([]*models.Post, error) {
	publishedOnly := actor.ID != authorID && !actor.IsAdmin()
	return s.postRepo.ListByAuthor(ctx, authorID, publishedOnly, actor.ID)
}

// MyPosts lists everything the actor has written, drafts included.
func (s *PostService) MyPosts(ctx context.Context, actor auth.Actor) ([]*models.Post, error) {
	if actor.Anonymous() {
		return nil, models.NewUnauthenticatedError("Authentication required")
	}
	return s.postRepo.ListByAuthor(ctx, actor.ID, false, actor.ID)
}

// AdminList returns every post regardless of state, admins only.
func (s *PostService) AdminList(ctx context.Context, actor auth.Actor, in ListPostsInput) ([]*models.Post, error) {
	if err := auth.Authorize(actor, auth.ActionViewAdmin, 0); err != nil {
		return nil, err
	}
	return s.postRepo.ListAll(ctx, in.Limit, in.Offset, actor.ID)
}

// Update applies a partial update. Omitted fields keep their stored values,
// including Published: updating the title of a published post does not
// unpublish it. The ownership guard runs again inside the repository
// transaction against the stored owner.
func (s *PostService) Update(ctx context.Context, actor auth.Actor, id uint, in UpdatePostInput) (*models.Post, error) {
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
	}

	guard := func(ownerID uint) error {
		return auth.Authorize(actor, auth.ActionUpdatePost, ownerID)
	}
	apply := func(post *models.Post) {
		if in.Title != nil {
			post.Title = *in.Title
		}
		if in.Content != nil {
			post.Content = *in.Content
		}
		if in.Published != nil {
			post.Published = *in.Published
		}
	}
	return s.postRepo.Update(ctx, id, guard, apply, in.CategoryIDs)
}

// Delete removes a post; the author or an admin may do it. The guard is
// re-checked inside the deleting transaction.
func (s *PostService) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	guard := func(ownerID uint) error {
		return auth.Authorize(actor, auth.ActionDeletePost, ownerID)
	}
	return s.postRepo.Delete(ctx, id, guard)
}
