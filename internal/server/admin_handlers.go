package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/admin/stats
func (s *Server) GetStats(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	stats, err := s.adminService.Stats(c.UserContext(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetAllPosts handles GET /api/admin/posts (drafts included)
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	limit, offset := pagination(c)

	posts, err := s.postService.AdminList(c.UserContext(), actor, service.ListPostsInput{Limit: limit, Offset: offset})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	limit, offset := pagination(c)

	users, err := s.adminService.ListUsers(c.UserContext(), actor, service.ListUsersInput{Limit: limit, Offset: offset})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// UpdateUserRole handles PUT /api/admin/users/:id/role
func (s *Server) UpdateUserRole(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.adminService.UpdateUserRole(c.UserContext(), actor, id, req.Role)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// ToggleUserBlock handles POST /api/admin/users/:id/block
func (s *Server) ToggleUserBlock(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	user, err := s.adminService.ToggleUserBlock(c.UserContext(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/admin/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.adminService.DeleteUser(c.UserContext(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
