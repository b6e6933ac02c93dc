package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var in service.CreatePostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), actor, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	limit, offset := pagination(c)

	posts, err := s.postService.ListPublished(c.UserContext(), actor, service.ListPostsInput{Limit: limit, Offset: offset})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	post, err := s.postService.Get(c.UserContext(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	authorID, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	posts, err := s.postService.ListByAuthor(c.UserContext(), actor, authorID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetMyPosts handles GET /api/me/posts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	posts, err := s.postService.MyPosts(c.UserContext(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// GetPostsByCategory handles GET /api/categories/:name/posts
func (s *Server) GetPostsByCategory(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	name := c.Params("name")

	posts, err := s.postService.ListByCategory(c.UserContext(), actor, name)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var in service.UpdatePostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.postService.Delete(c.UserContext(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	result, err := s.likeService.Toggle(c.UserContext(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}
