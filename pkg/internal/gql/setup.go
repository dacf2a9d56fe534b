package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
)

// The setup flow bootstraps the very first account. It is open by design
// and latches shut the moment any user exists.

func (b *schemaBuilder) setupQueryFields() graphql.Fields {
	return graphql.Fields{
		"isSetupCompleted": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				count, err := b.r.Users.Count()
				if err != nil {
					return nil, err
				}
				return count > 0, nil
			},
		},
	}
}

func (b *schemaBuilder) setupMutationFields() graphql.Fields {
	setupInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SetupSuperAdminInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	return graphql.Fields{
		"setupSuperAdmin": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(setupInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				count, err := b.r.Users.Count()
				if err != nil {
					return nil, err
				}
				if count > 0 {
					return nil, errs.SetupCompleted()
				}

				input := p.Args["input"].(map[string]interface{})
				return b.r.Users.Create(
					stringArg(input, "name"),
					stringArg(input, "email"),
					stringArg(input, "password"),
					models.RoleSuperAdmin,
				)
			},
		},
	}
}
