package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
)

func (b *schemaBuilder) tagQueryFields() graphql.Fields {
	return graphql.Fields{
		"tags": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.tagType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return b.r.Tags.List()
			},
		},
		"tag": &graphql.Field{
			Type: b.tagType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				tag, err := b.r.Tags.Get(id)
				if err != nil || tag == nil {
					return nil, err
				}
				return *tag, nil
			},
		},
		"tagBySlug": &graphql.Field{
			Type: b.tagType,
			Args: graphql.FieldConfigArgument{
				"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				tag, err := b.r.Tags.GetBySlug(p.Args["slug"].(string))
				if err != nil || tag == nil {
					return nil, err
				}
				return *tag, nil
			},
		},
	}
}

func (b *schemaBuilder) tagMutationFields() graphql.Fields {
	createInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTagInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"slug":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	updateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTagInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"slug":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	return graphql.Fields{
		"createTag": &graphql.Field{
			Type: graphql.NewNonNull(b.tagType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
			},
			Resolve: guarded("createTag", func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})

				var description string
				if d := optStringArg(input, "description"); d != nil {
					description = *d
				}

				return b.r.Tags.Create(
					stringArg(input, "name"),
					stringArg(input, "slug"),
					description,
				)
			}),
		},
		"updateTag": &graphql.Field{
			Type: graphql.NewNonNull(b.tagType),
			Args: graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
			},
			Resolve: guarded("updateTag", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				input := p.Args["input"].(map[string]interface{})

				return b.r.Tags.Update(id, services.UpdateTagOpts{
					Name:        optStringArg(input, "name"),
					Slug:        optStringArg(input, "slug"),
					Description: optStringArg(input, "description"),
				})
			}),
		},
		"deleteTag": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: guarded("deleteTag", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Tags.Delete(id)
			}),
		},
	}
}
