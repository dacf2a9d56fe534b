package gql

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/pressroomhq/pressroom/pkg/internal/errs"
)

// jsonScalar carries the structured post content document through the API
// without flattening it to a string.
var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "An arbitrary JSON document.",
	Serialize: func(value interface{}) interface{} {
		return value
	},
	ParseValue: func(value interface{}) interface{} {
		return value
	},
	ParseLiteral: parseJSONLiteral,
})

func parseJSONLiteral(value ast.Value) interface{} {
	switch v := value.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		n, _ := strconv.ParseInt(v.Value, 10, 64)
		return n
	case *ast.FloatValue:
		f, _ := strconv.ParseFloat(v.Value, 64)
		return f
	case *ast.ListValue:
		list := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			list = append(list, parseJSONLiteral(item))
		}
		return list
	case *ast.ObjectValue:
		object := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			object[field.Name.Value] = parseJSONLiteral(field.Value)
		}
		return object
	default:
		return nil
	}
}

// parseID accepts whatever shape an ID argument arrives in (string from ID
// coercion, raw number from variables) and narrows it to a record id.
func parseID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errs.BadRequest("invalid id")
		}
		return uint(id), nil
	case int:
		return uint(v), nil
	case float64:
		return uint(v), nil
	default:
		return 0, errs.BadRequest("invalid id")
	}
}

func parseIDList(value interface{}) ([]uint, error) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, errs.BadRequest("invalid id list")
	}

	ids := make([]uint, 0, len(raw))
	for _, item := range raw {
		id, err := parseID(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
