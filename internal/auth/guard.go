package auth

import "inkwell/internal/models"

// Action describes what a request is trying to do, in guard terms. Ownership
// checks compare the actor against the resource owner passed to Authorize;
// AdminOverride controls whether an admin may act on resources they do not
// own (true for posts, false for comments).
type Action struct {
	Name          string
	RequireAuth   bool
	RequireAdmin  bool
	RequireOwner  bool
	AdminOverride bool
}

var (
	ActionCreatePost     = Action{Name: "post.create", RequireAuth: true}
	ActionUpdatePost     = Action{Name: "post.update", RequireAuth: true, RequireOwner: true, AdminOverride: true}
	ActionDeletePost     = Action{Name: "post.delete", RequireAuth: true, RequireOwner: true, AdminOverride: true}
	ActionCreateComment  = Action{Name: "comment.create", RequireAuth: true}
	ActionDeleteComment  = Action{Name: "comment.delete", RequireAuth: true, RequireOwner: true}
	ActionToggleLike     = Action{Name: "like.toggle", RequireAuth: true}
	ActionUpdateProfile  = Action{Name: "user.update_profile", RequireAuth: true}
	ActionManageCategory = Action{Name: "category.manage", RequireAuth: true, RequireAdmin: true}
	ActionManageUsers    = Action{Name: "user.manage", RequireAuth: true, RequireAdmin: true}
	ActionViewAdmin      = Action{Name: "admin.view", RequireAuth: true, RequireAdmin: true}
)

// Authorize is the pure authorization decision: it returns nil to allow, or a
// typed failure explaining the denial. Rules are evaluated in order:
// authentication, role, ownership. Callers must check the result before the
// mutation it guards, and re-check ownership inside the mutating transaction.
func Authorize(actor Actor, action Action, ownerID uint) error {
	if action.RequireAuth && actor.Anonymous() {
		return models.NewUnauthenticatedError("Authentication required")
	}
	if action.RequireAdmin && !actor.IsAdmin() {
		return models.NewForbiddenError("Admins only")
	}
	if action.RequireOwner && actor.ID != ownerID {
		if action.AdminOverride && actor.IsAdmin() {
			return nil
		}
		return models.NewForbiddenError("You do not own this resource")
	}
	return nil
}
