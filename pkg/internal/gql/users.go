package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
)

func (b *schemaBuilder) userQueryFields() graphql.Fields {
	return graphql.Fields{
		"users": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.userType))),
			Resolve: guarded("users", func(p graphql.ResolveParams) (interface{}, error) {
				return b.r.Users.List()
			}),
		},
		"user": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: guarded("user", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Users.Get(id)
			}),
		},
	}
}

func (b *schemaBuilder) userMutationFields() graphql.Fields {
	createInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"role": &graphql.InputObjectFieldConfig{
				Type:         b.roleEnum,
				DefaultValue: models.RoleAuthor,
			},
		},
	})

	updateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role":      &graphql.InputObjectFieldConfig{Type: b.roleEnum},
			"avatarUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	profileInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"avatarUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	return graphql.Fields{
		"createUser": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
			},
			Resolve: guarded("createUser", func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})

				role := models.RoleAuthor
				if v, ok := input["role"].(string); ok {
					role = v
				}

				return b.r.Users.Create(
					stringArg(input, "name"),
					stringArg(input, "email"),
					stringArg(input, "password"),
					role,
				)
			}),
		},
		"updateUser": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
			},
			Resolve: guarded("updateUser", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				input := p.Args["input"].(map[string]interface{})

				opts := services.UpdateUserOpts{
					Name:      optStringArg(input, "name"),
					Email:     optStringArg(input, "email"),
					Password:  optStringArg(input, "password"),
					AvatarURL: optStringArg(input, "avatarUrl"),
				}
				if v, ok := input["role"].(string); ok {
					opts.Role = &v
				}

				return b.r.Users.Update(id, opts)
			}),
		},
		"deleteUser": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: guarded("deleteUser", func(p graphql.ResolveParams) (interface{}, error) {
				user := IdentityFor(p.Context)
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				if id == user.ID {
					return nil, errs.Forbidden("You cannot delete yourself")
				}
				return b.r.Users.Delete(id)
			}),
		},
		"bulkDeleteUsers": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"ids": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Int))),
				},
			},
			Resolve: guarded("bulkDeleteUsers", func(p graphql.ResolveParams) (interface{}, error) {
				user := IdentityFor(p.Context)
				ids, err := parseIDList(p.Args["ids"])
				if err != nil {
					return nil, err
				}

				// The caller's own account is silently skipped instead of
				// failing the whole batch.
				for _, id := range ids {
					if id == user.ID {
						continue
					}
					if _, err := b.r.Users.Delete(id); err != nil {
						return nil, err
					}
				}
				return true, nil
			}),
		},
		"bulkUpdateUserRole": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"ids": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Int))),
				},
				"role": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.roleEnum)},
			},
			Resolve: guarded("bulkUpdateUserRole", func(p graphql.ResolveParams) (interface{}, error) {
				ids, err := parseIDList(p.Args["ids"])
				if err != nil {
					return nil, err
				}
				role := p.Args["role"].(string)

				for _, id := range ids {
					if _, err := b.r.Users.Update(id, services.UpdateUserOpts{Role: &role}); err != nil {
						return nil, err
					}
				}
				return true, nil
			}),
		},
		"updateProfile": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(profileInput)},
			},
			Resolve: guarded("updateProfile", func(p graphql.ResolveParams) (interface{}, error) {
				user := IdentityFor(p.Context)
				input := p.Args["input"].(map[string]interface{})

				// Role changes never ride through the profile surface.
				return b.r.Users.Update(user.ID, services.UpdateUserOpts{
					Name:      optStringArg(input, "name"),
					Email:     optStringArg(input, "email"),
					Password:  optStringArg(input, "password"),
					AvatarURL: optStringArg(input, "avatarUrl"),
				})
			}),
		},
	}
}
