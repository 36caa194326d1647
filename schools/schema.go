package schools

import (
	"github.com/invopop/jsonschema"
)

// ResponseSchema returns the JSON schema for the expected model reply: an
// array of school objects. Providers that support structured output attach
// it to the request; providers that do not simply rely on the prompt text.
func ResponseSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	item := reflector.Reflect(&SchoolRecord{})
	item.Version = ""

	return &jsonschema.Schema{
		Type:  "array",
		Items: item,
	}
}
