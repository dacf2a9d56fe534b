package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/security"
)

func (b *schemaBuilder) sessionQueryFields() graphql.Fields {
	return graphql.Fields{
		"me": &graphql.Field{
			Type: graphql.NewNonNull(b.userType),
			Resolve: guarded("me", func(p graphql.ResolveParams) (interface{}, error) {
				return *IdentityFor(p.Context), nil
			}),
		},
	}
}

func (b *schemaBuilder) sessionMutationFields() graphql.Fields {
	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	return graphql.Fields{
		"login": &graphql.Field{
			Type: graphql.NewNonNull(b.authPayload),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(loginInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})

				user, err := b.r.Users.VerifyCredential(
					stringArg(input, "email"),
					stringArg(input, "password"),
				)
				if err != nil {
					return nil, err
				}

				token, err := security.IssueToken(user.ID)
				if err != nil {
					return nil, err
				}

				return map[string]interface{}{
					"accessToken": token,
					"user":        user,
				}, nil
			},
		},
	}
}
