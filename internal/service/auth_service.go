// Package service implements the domain logic on top of the repositories.
// Every operation takes the acting identity explicitly; authorization is
// decided by the guard before any state changes.
package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload is the result of a successful register or login.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates a new account with the USER role and returns a signed
// token for it. Role is never caller-supplied; promotion is a separate admin
// operation.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthPayload, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	if err := validation.ValidateDisplayName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
		Avatar:   placeholderAvatar(in.Name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password fail identically so the response does not leak which emails are
// registered.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthPayload, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid email or password")
	}
	if user.Blocked {
		return nil, models.NewForbiddenError("Account is blocked")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthPayload{Token: token, User: user}, nil
}

// placeholderAvatar builds the default avatar URL for a new account.
func placeholderAvatar(name string) string {
	return fmt.Sprintf("https://placehold.co/100x100/E2E8F0/4A5568?text=%s", url.QueryEscape(name))
}
