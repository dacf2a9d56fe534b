package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/pressroomhq/pressroom/pkg/internal/models"
	"github.com/pressroomhq/pressroom/pkg/internal/services"
)

// Resolver wires the schema to the domain services. One instance is built at
// boot and shared by every request.
type Resolver struct {
	Users      *services.UserService
	Posts      *services.PostService
	Categories *services.CategoryService
	Tags       *services.TagService
	Storage    services.ImageStorage
}

type schemaBuilder struct {
	r *Resolver

	roleEnum     *graphql.Enum
	userType     *graphql.Object
	categoryType *graphql.Object
	tagType      *graphql.Object
	postType     *graphql.Object
	authPayload  *graphql.Object
}

func userSource(p graphql.ResolveParams) models.User {
	switch v := p.Source.(type) {
	case models.User:
		return v
	case *models.User:
		return *v
	}
	return models.User{}
}

func categorySource(p graphql.ResolveParams) models.Category {
	switch v := p.Source.(type) {
	case models.Category:
		return v
	case *models.Category:
		return *v
	}
	return models.Category{}
}

func tagSource(p graphql.ResolveParams) models.Tag {
	switch v := p.Source.(type) {
	case models.Tag:
		return v
	case *models.Tag:
		return *v
	}
	return models.Tag{}
}

func postSource(p graphql.ResolveParams) models.Post {
	switch v := p.Source.(type) {
	case models.Post:
		return v
	case *models.Post:
		return *v
	}
	return models.Post{}
}

func optString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func (b *schemaBuilder) buildTypes() {
	b.roleEnum = graphql.NewEnum(graphql.EnumConfig{
		Name: "UserRole",
		Values: graphql.EnumValueConfigMap{
			"SUPER_ADMIN": &graphql.EnumValueConfig{Value: models.RoleSuperAdmin},
			"ADMIN":       &graphql.EnumValueConfig{Value: models.RoleAdmin},
			"AUTHOR":      &graphql.EnumValueConfig{Value: models.RoleAuthor},
		},
	})

	b.userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Name, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Email, nil
				},
			},
			"role": &graphql.Field{
				Type: graphql.NewNonNull(b.roleEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Role, nil
				},
			},
			"avatarUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(userSource(p).AvatarURL), nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).CreatedAt, nil
				},
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).UpdatedAt, nil
				},
			},
		},
	})

	b.categoryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categorySource(p).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categorySource(p).Name, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categorySource(p).Description, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categorySource(p).Slug, nil
				},
			},
			"postCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Categories.CountPosts(categorySource(p).ID)
				},
			},
			"created_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categorySource(p).CreatedAt, nil
				},
			},
			"updated_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categorySource(p).UpdatedAt, nil
				},
			},
		},
	})

	// Self-referential fields land after construction.
	b.categoryType.AddFieldConfig("parent", &graphql.Field{
		Type: b.categoryType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			parent := categorySource(p).Parent
			if parent == nil {
				return nil, nil
			}
			return *parent, nil
		},
	})
	b.categoryType.AddFieldConfig("children", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.categoryType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			children := categorySource(p).Children
			if children == nil {
				children = []models.Category{}
			}
			return children, nil
		},
	})

	b.tagType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return tagSource(p).ID, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return tagSource(p).Name, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return tagSource(p).Description, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return tagSource(p).Slug, nil
				},
			},
			"postCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Tags.CountPosts(tagSource(p).ID)
				},
			},
			"created_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return tagSource(p).CreatedAt, nil
				},
			},
			"updated_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return tagSource(p).UpdatedAt, nil
				},
			},
		},
	})

	b.postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).ID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).Title, nil
				},
			},
			"slug": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).Slug, nil
				},
			},
			"excerpt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(postSource(p).Excerpt), nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.NewNonNull(jsonScalar),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return map[string]interface{}(postSource(p).Content), nil
				},
			},
			"banner_url": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optString(postSource(p).BannerURL), nil
				},
			},
			"author": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).Author, nil
				},
			},
			"category": &graphql.Field{
				Type: b.categoryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category := postSource(p).Category
					if category == nil {
						return nil, nil
					}
					return *category, nil
				},
			},
			"tags": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.tagType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					tags := postSource(p).Tags
					if tags == nil {
						tags = []models.Tag{}
					}
					return tags, nil
				},
			},
			"published_at": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					at := postSource(p).PublishedAt
					if at == nil {
						return nil, nil
					}
					return *at, nil
				},
			},
			"deleted_at": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					at := postSource(p).DeletedAt
					if !at.Valid {
						return nil, nil
					}
					return at.Time, nil
				},
			},
			"created_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).CreatedAt, nil
				},
			},
			"updated_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.DateTime),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).UpdatedAt, nil
				},
			},
		},
	})

	b.authPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"accessToken": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload, _ := p.Source.(map[string]interface{})
					return payload["accessToken"], nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(b.userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload, _ := p.Source.(map[string]interface{})
					return payload["user"], nil
				},
			},
		},
	})
}
