package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	jsoniter "github.com/json-iterator/go"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
	"gorm.io/datatypes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parseContent decodes the stringified JSON document carried by create and
// update inputs into the structured content column.
func parseContent(raw string) (datatypes.JSONMap, error) {
	doc := map[string]interface{}{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, errs.BadRequest("Invalid content document")
	}
	return datatypes.JSONMap(doc), nil
}

func (b *schemaBuilder) postQueryFields() graphql.Fields {
	return graphql.Fields{
		"posts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
			Resolve: guarded("posts", func(p graphql.ResolveParams) (interface{}, error) {
				return b.r.Posts.ListAll()
			}),
		},
		"publishedPosts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
			Args: graphql.FieldConfigArgument{
				"category": &graphql.ArgumentConfig{Type: graphql.String},
				"tag":      &graphql.ArgumentConfig{Type: graphql.String},
				"keyword":  &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				var filter services.PublishedFilter
				if v, ok := p.Args["category"].(string); ok {
					filter.Category = v
				}
				if v, ok := p.Args["tag"].(string); ok {
					filter.Tag = v
				}
				if v, ok := p.Args["keyword"].(string); ok {
					filter.Keyword = v
				}
				return b.r.Posts.ListPublished(filter)
			},
		},
		"draftPosts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
			Resolve: guarded("draftPosts", func(p graphql.ResolveParams) (interface{}, error) {
				return b.r.Posts.ListDrafts()
			}),
		},
		"trashedPosts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.postType))),
			Resolve: guarded("trashedPosts", func(p graphql.ResolveParams) (interface{}, error) {
				return b.r.Posts.ListTrashed()
			}),
		},
		"post": &graphql.Field{
			Type: b.postType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Posts.Get(id)
			},
		},
		"postBySlug": &graphql.Field{
			Type: b.postType,
			Args: graphql.FieldConfigArgument{
				"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post, err := b.r.Posts.GetBySlug(p.Args["slug"].(string))
				if err != nil || post == nil {
					return nil, err
				}
				return *post, nil
			},
		},
	}
}

func (b *schemaBuilder) postMutationFields() graphql.Fields {
	createInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"slug":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"excerpt":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"categoryId": &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"tagIds":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		},
	})

	updateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"slug":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"excerpt":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"bannerUrl":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"categoryId": &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"tagIds":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	return graphql.Fields{
		"createPost": &graphql.Field{
			Type: graphql.NewNonNull(b.postType),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
			},
			Resolve: guarded("createPost", func(p graphql.ResolveParams) (interface{}, error) {
				user := IdentityFor(p.Context)
				input := p.Args["input"].(map[string]interface{})

				content, err := parseContent(stringArg(input, "content"))
				if err != nil {
					return nil, err
				}

				opts := services.CreatePostOpts{
					Title:    stringArg(input, "title"),
					Slug:     stringArg(input, "slug"),
					Content:  content,
					Excerpt:  optStringArg(input, "excerpt"),
					AuthorID: user.ID,
				}

				if raw, ok := inputArg(input, "categoryId"); ok && raw != nil {
					categoryID, err := parseID(raw)
					if err != nil {
						return nil, err
					}
					opts.CategoryID = &categoryID
				}

				if raw, ok := inputArg(input, "tagIds"); ok && raw != nil {
					opts.TagIDs, err = parseIDList(raw)
					if err != nil {
						return nil, err
					}
				}

				return b.r.Posts.Create(opts)
			}),
		},
		"updatePost": &graphql.Field{
			Type: graphql.NewNonNull(b.postType),
			Args: graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
			},
			Resolve: guarded("updatePost", func(p graphql.ResolveParams) (interface{}, error) {
				user := IdentityFor(p.Context)
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				if err := b.r.Posts.VerifyAccess(id, *user); err != nil {
					return nil, err
				}

				input := p.Args["input"].(map[string]interface{})
				opts := services.UpdatePostOpts{
					Title:   optStringArg(input, "title"),
					Slug:    optStringArg(input, "slug"),
					Excerpt: optStringArg(input, "excerpt"),
				}

				if raw := optStringArg(input, "content"); raw != nil {
					opts.Content, err = parseContent(*raw)
					if err != nil {
						return nil, err
					}
				}

				if _, ok := inputArg(input, "bannerUrl"); ok {
					opts.BannerURL = services.Some(optStringArg(input, "bannerUrl"))
				}

				if raw, ok := inputArg(input, "categoryId"); ok {
					if raw == nil {
						opts.CategoryID = services.Some[*uint](nil)
					} else {
						categoryID, err := parseID(raw)
						if err != nil {
							return nil, err
						}
						opts.CategoryID = services.Some(&categoryID)
					}
				}

				if raw, ok := inputArg(input, "tagIds"); ok && raw != nil {
					tagIDs, err := parseIDList(raw)
					if err != nil {
						return nil, err
					}
					opts.TagIDs = services.Some(tagIDs)
				}

				return b.r.Posts.Update(id, opts)
			}),
		},
		"uploadPostBanner": &graphql.Field{
			Type: graphql.NewNonNull(b.postType),
			Args: graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"image": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: guarded("uploadPostBanner", func(p graphql.ResolveParams) (interface{}, error) {
				user := IdentityFor(p.Context)
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				if err := b.r.Posts.VerifyAccess(id, *user); err != nil {
					return nil, err
				}

				result, err := b.r.Storage.Upload(
					p.Context,
					p.Args["image"].(string),
					fmt.Sprintf("posts/%d/banner", id),
					true,
				)
				if err != nil {
					return nil, err
				}

				return b.r.Posts.Update(id, services.UpdatePostOpts{
					BannerURL: services.Some(&result.URL),
				})
			}),
		},
		"publishPost": &graphql.Field{
			Type: graphql.NewNonNull(b.postType),
			Args: idArg,
			Resolve: guarded("publishPost", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Posts.Publish(id)
			}),
		},
		"unpublishPost": &graphql.Field{
			Type: graphql.NewNonNull(b.postType),
			Args: idArg,
			Resolve: guarded("unpublishPost", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Posts.Unpublish(id)
			}),
		},
		"trashPost": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: idArg,
			Resolve: guarded("trashPost", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Posts.Trash(id)
			}),
		},
		"restorePost": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: idArg,
			Resolve: guarded("restorePost", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Posts.Restore(id)
			}),
		},
		"deletePost": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Args: idArg,
			Resolve: guarded("deletePost", func(p graphql.ResolveParams) (interface{}, error) {
				id, err := parseID(p.Args["id"])
				if err != nil {
					return nil, err
				}
				return b.r.Posts.DeletePermanently(id)
			}),
		},
	}
}
