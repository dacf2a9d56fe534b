package gql

import "github.com/graphql-go/graphql"

func mergeFields(dst graphql.Fields, groups ...graphql.Fields) graphql.Fields {
	for _, group := range groups {
		for name, field := range group {
			dst[name] = field
		}
	}
	return dst
}

// Schema assembles the full executable schema. Types are built once per
// resolver; the result is safe for concurrent graphql.Do calls.
func (r *Resolver) Schema() (graphql.Schema, error) {
	b := &schemaBuilder{r: r}
	b.buildTypes()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: mergeFields(graphql.Fields{},
			b.setupQueryFields(),
			b.sessionQueryFields(),
			b.userQueryFields(),
			b.postQueryFields(),
			b.categoryQueryFields(),
			b.tagQueryFields(),
		),
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: mergeFields(graphql.Fields{},
			b.setupMutationFields(),
			b.sessionMutationFields(),
			b.userMutationFields(),
			b.postMutationFields(),
			b.categoryMutationFields(),
			b.tagMutationFields(),
		),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
