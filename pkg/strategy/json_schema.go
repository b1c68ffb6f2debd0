// Package strategy holds helpers shared by strategy parameter structs.
package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a parameter struct to an inline JSON schema.
// Field names follow the json tags, so fields tagged json:"-" are left out.
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.AllowAdditionalProperties = false
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
