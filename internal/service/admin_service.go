package service

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// AdminService groups the admin-only user management and stats operations.
type AdminService struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	categoryRepo repository.CategoryRepository
}

type ListUsersInput struct {
	Limit  int
	Offset int
}

// SystemStats is the admin dashboard summary.
type SystemStats struct {
	Users      int64 `json:"users"`
	Posts      int64 `json:"posts"`
	Comments   int64 `json:"comments"`
	Likes      int64 `json:"likes"`
	Categories int64 `json:"categories"`
}

func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	categoryRepo repository.CategoryRepository,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, actor auth.Actor, in ListUsersInput) ([]models.User, error) {
	if err := auth.Authorize(actor, auth.ActionManageUsers, 0); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, in.Limit, in.Offset)
}

func (s *AdminService) Stats(ctx context.Context, actor auth.Actor) (*SystemStats, error) {
	if err := auth.Authorize(actor, auth.ActionViewAdmin, 0); err != nil {
		return nil, err
	}

	stats := &SystemStats{}
	var err error
	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Posts, err = s.postRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.commentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Likes, err = s.likeRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.categoryRepo.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// UpdateUserRole promotes or demotes a user. Admins cannot demote
// themselves; that avoids locking the last admin out.
func (s *AdminService) UpdateUserRole(ctx context.Context, actor auth.Actor, userID uint, role models.Role) (*models.User, error) {
	if err := auth.Authorize(actor, auth.ActionManageUsers, 0); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, models.NewValidationError("Invalid role")
	}
	if userID == actor.ID && role != models.RoleAdmin {
		return nil, models.NewValidationError("Cannot demote your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleUserBlock flips a user's blocked flag. Blocked users fail every
// authenticated request on their next call; already-issued tokens do not
// need to expire first because the gateway re-reads the user row.
func (s *AdminService) ToggleUserBlock(ctx context.Context, actor auth.Actor, userID uint) (*models.User, error) {
	if err := auth.Authorize(actor, auth.ActionManageUsers, 0); err != nil {
		return nil, err
	}
	if userID == actor.ID {
		return nil, models.NewValidationError("Cannot block your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Blocked = !user.Blocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns in one transaction.
func (s *AdminService) DeleteUser(ctx context.Context, actor auth.Actor, userID uint) error {
	if err := auth.Authorize(actor, auth.ActionManageUsers, 0); err != nil {
		return err
	}
	if userID == actor.ID {
		return models.NewValidationError("Cannot delete your own account")
	}
	return s.userRepo.DeleteCascade(ctx, userID)
}
