package middleware

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// actorLocal is the Fiber locals key the resolved actor is stored under.
const actorLocal = "actor"

// UserLookup resolves a user by id. Injected by the server so this package
// does not depend on the repository layer.
type UserLookup func(ctx context.Context, id uint) (*models.User, error)

// ResolveActor decodes the bearer token (if any) into an Actor and stores it
// in locals. A missing or invalid token yields the anonymous actor, never an
// error; route-level gates decide whether anonymous is acceptable. When a
// token resolves, the user row is re-loaded so that blocked or deleted
// accounts are rejected even while their tokens are still unexpired.
func ResolveActor(tokens *auth.TokenManager, lookup UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.Actor{}

		if tokenString := bearerToken(c); tokenString != "" {
			if decoded, err := tokens.Verify(tokenString); err == nil {
				user, lookupErr := lookup(c.UserContext(), decoded.ID)
				if lookupErr == nil && user != nil && !user.Blocked {
					// Role comes from the row, not the token, so role
					// changes take effect without re-issuing tokens.
					actor = auth.Actor{ID: user.ID, Email: user.Email, Role: user.Role}
				}
			}
		}

		c.Locals(actorLocal, actor)
		if !actor.Anonymous() {
			c.SetUserContext(context.WithValue(c.UserContext(), ActorIDKey, actor.ID))
		}
		return c.Next()
	}
}

// ActorFromCtx returns the actor resolved by ResolveActor, or the anonymous
// actor if the middleware did not run.
func ActorFromCtx(c *fiber.Ctx) auth.Actor {
	if actor, ok := c.Locals(actorLocal).(auth.Actor); ok {
		return actor
	}
	return auth.Actor{}
}

// RequireActor rejects anonymous requests with 401.
func RequireActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ActorFromCtx(c).Anonymous() {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authentication required"))
		}
		return c.Next()
	}
}

// RequireAdmin rejects non-admin requests. Anonymous requests get 401,
// authenticated non-admins 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFromCtx(c)
		if actor.Anonymous() {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authentication required"))
		}
		if !actor.IsAdmin() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admins only"))
		}
		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
