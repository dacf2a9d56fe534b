package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
)

func (b *schemaBuilder) categoryQueryFields() graphql.Fields {
	return graphql.Fields{
		"categories": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.categoryType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return b.r.Categories.List()
			},
		},
		"category": &graphql.Field{
			Type: b.categoryType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				category, err := b.r.Categories.Get(id)
				if err != nil || category == nil {
					return nil, err
				}
				return *category, nil
			},
		},
		"categoryBySlug": &graphql.Field{
			Type: b.categoryType,
			Args: graphql.FieldConfigArgument{
				"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				category, err := b.r.Categories.GetBySlug(p.Args["slug"].(string))
				if err != nil || category == nil {
					return nil, err
				}
				return *category, nil
			},
		},
	}
}

func (b *schemaBuilder) categoryMutationFields() graphql.Fields {
	createInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"slug":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"parentId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	updateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"slug":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"parentId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	return graphql.Fields{
		"createCategory": &graphql.Field{
			Type: graphql.NewNonNull(b.categoryType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
			},
			Resolve: guarded("createCategory", func(p graphql.ResolveParams) (interface{}, error) {
				input := p.Args["input"].(map[string]interface{})

				var parentID *uint
				if raw, ok := inputArg(input, "parentId"); ok && raw != nil {
					id, err := parseID(raw)
					if err != nil {
						return nil, err
					}
					parentID = &id
				}

				var description string
				if d := optStringArg(input, "description"); d != nil {
					description = *d
				}

				return b.r.Categories.Create(
					stringArg(input, "name"),
					stringArg(input, "slug"),
					description,
					parentID,
				)
			}),
		},
		"updateCategory": &graphql.Field{
			Type: graphql.NewNonNull(b.categoryType),
			Args: graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
			},
			Resolve: guarded("updateCategory", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				input := p.Args["input"].(map[string]interface{})

				opts := services.UpdateCategoryOpts{
					Name:        optStringArg(input, "name"),
					Slug:        optStringArg(input, "slug"),
					Description: optStringArg(input, "description"),
				}

				if raw, ok := inputArg(input, "parentId"); ok {
					if raw == nil {
						opts.ParentID = services.Some[*uint](nil)
					} else {
						parentID, err := parseID(raw)
						if err != nil {
							return nil, err
						}
						opts.ParentID = services.Some(&parentID)
					}
				}

				return b.r.Categories.Update(id, opts)
			}),
		},
		"deleteCategory": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: guarded("deleteCategory", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Categories.Delete(id)
			}),
		},
	}
}
