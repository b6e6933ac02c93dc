package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.List(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(categories)
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	category, err := s.categoryService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(category)
}

// CreateCategory handles POST /api/admin/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var in service.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Create(c.UserContext(), actor, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var in service.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	id, err := paramID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.categoryService.Delete(c.UserContext(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
