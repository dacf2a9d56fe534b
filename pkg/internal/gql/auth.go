package gql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/samber/lo"
)

type contextKey int

const identityKey contextKey = iota

// WithIdentity attaches the resolved caller to the request context. The
// transport layer owns turning a bearer credential into a User; from here on
// the identity is opaque injected state.
func WithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

func IdentityFor(ctx context.Context) *models.User {
	user, _ := ctx.Value(identityKey).(*models.User)
	return user
}

// policy is the declarative role table: operation name to the role set
// allowed to invoke it. An empty set means any authenticated caller.
// Operations absent from the table are public and never pass through here.
var policy = map[string][]models.UserRole{
	"posts":      {},
	"draftPosts": {},
	"me":         {},

	"updateProfile": {},

	"trashedPosts": {models.RoleAdmin, models.RoleSuperAdmin},

	"createPost":       {models.RoleAuthor, models.RoleAdmin, models.RoleSuperAdmin},
	"updatePost":       {models.RoleAuthor, models.RoleAdmin, models.RoleSuperAdmin},
	"uploadPostBanner": {models.RoleAuthor, models.RoleAdmin, models.RoleSuperAdmin},

	"publishPost":   {models.RoleAdmin, models.RoleSuperAdmin},
	"unpublishPost": {models.RoleAdmin, models.RoleSuperAdmin},
	"trashPost":     {models.RoleAdmin, models.RoleSuperAdmin},
	"restorePost":   {models.RoleAdmin, models.RoleSuperAdmin},
	"deletePost":    {models.RoleAdmin, models.RoleSuperAdmin},

	"createCategory": {models.RoleAdmin, models.RoleSuperAdmin},
	"updateCategory": {models.RoleAdmin, models.RoleSuperAdmin},
	"deleteCategory": {models.RoleAdmin, models.RoleSuperAdmin},

	"createTag": {models.RoleAdmin, models.RoleSuperAdmin},
	"updateTag": {models.RoleAdmin, models.RoleSuperAdmin},
	// Tag deletion is deliberately stricter than tag create/update.
	"deleteTag": {models.RoleSuperAdmin},

	"users":              {models.RoleSuperAdmin},
	"user":               {models.RoleSuperAdmin},
	"createUser":         {models.RoleSuperAdmin},
	"updateUser":         {models.RoleSuperAdmin},
	"deleteUser":         {models.RoleSuperAdmin},
	"bulkDeleteUsers":    {models.RoleSuperAdmin},
	"bulkUpdateUserRole": {models.RoleSuperAdmin},
}

// Authorize evaluates the policy table for one operation: no identity means
// Unauthenticated, an identity outside the role set means Forbidden.
func Authorize(ctx context.Context, operation string) (*models.User, error) {
	user := IdentityFor(ctx)
	if user == nil {
		return nil, errs.Unauthenticated("Unauthenticated")
	}

	roles := policy[operation]
	if len(roles) == 0 || lo.Contains(roles, user.Role) {
		return user, nil
	}

	return nil, errs.Forbidden("You are not authorized to perform this action")
}

func guarded(operation string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if _, err := Authorize(p.Context, operation); err != nil {
			return nil, err
		}
		return fn(p)
	}
}
