package service

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// UserService handles profile reads and self-service profile updates.
type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the optional profile fields; nil means leave the
// stored value untouched.
type UpdateProfileInput struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns the public view of any user.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Me returns the authenticated actor's own record.
func (s *UserService) Me(ctx context.Context, actor auth.Actor) (*models.User, error) {
	if err := auth.Authorize(actor, auth.ActionUpdateProfile, actor.ID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, actor.ID)
}

// UpdateProfile lets an actor change their own name and avatar. Email, role
// and blocked status are out of reach here.
func (s *UserService) UpdateProfile(ctx context.Context, actor auth.Actor, in UpdateProfileInput) (*models.User, error) {
	if err := auth.Authorize(actor, auth.ActionUpdateProfile, actor.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if err := validation.ValidateDisplayName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = name
	}
	if in.Avatar != nil {
		user.Avatar = strings.TrimSpace(*in.Avatar)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
