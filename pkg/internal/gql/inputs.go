package gql

// Argument plumbing for input objects. graphql-go hands input objects over
// as maps, which is what preserves the provided-vs-absent distinction the
// partial updates depend on: a key that is missing was omitted, a key that
// maps to nil was an explicit null.

func inputArg(p map[string]interface{}, key string) (interface{}, bool) {
	value, ok := p[key]
	return value, ok
}

// optStringArg flattens "absent" and "explicit null" to nil; callers that
// need to tell them apart use inputArg directly.
func optStringArg(p map[string]interface{}, key string) *string {
	value, ok := p[key]
	if !ok || value == nil {
		return nil
	}
	if s, ok := value.(string); ok {
		return &s
	}
	return nil
}

func stringArg(p map[string]interface{}, key string) string {
	s, _ := p[key].(string)
	return s
}
