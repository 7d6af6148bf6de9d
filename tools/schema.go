package tools

import "github.com/paysponge/spongewallet-go/models"

// Property is one JSON-schema property of a tool input.
type Property map[string]interface{}

// InputSchema is the object schema a model fills in when calling a tool.
type InputSchema struct {
	Type       string              `json:"type" yaml:"type"`
	Properties map[string]Property `json:"properties" yaml:"properties"`
	Required   []string            `json:"required" yaml:"required"`
}

func StringProperty(description string) Property {
	return Property{"type": "string", "description": description}
}

func StringEnumProperty(description string, values ...string) Property {
	return Property{"type": "string", "enum": values, "description": description}
}

func NumberProperty(description string) Property {
	return Property{"type": "number", "description": description}
}

func BooleanProperty(description string) Property {
	return Property{"type": "boolean", "description": description}
}

func ObjectProperty(description string) Property {
	return Property{"type": "object", "description": description}
}

// ArrayProperty describes a list whose elements match items.
func ArrayProperty(description string, items Property) Property {
	return Property{"type": "array", "items": items, "description": description}
}

// NestedObjectProperty describes an object with its own properties, used for array items.
func NestedObjectProperty(properties map[string]Property, required ...string) Property {
	return Property{"type": "object", "properties": properties, "required": nonNil(required)}
}

// ChainEnumProperty restricts a string to the given chain names.
func ChainEnumProperty(description string, chains ...models.Chain) Property {
	names := make([]string, len(chains))
	for i, chain := range chains {
		names[i] = string(chain)
	}
	return StringEnumProperty(description, names...)
}

// BuildSchema creates an object schema. required always marshals as a list.
func BuildSchema(properties map[string]Property, required ...string) InputSchema {
	if properties == nil {
		properties = map[string]Property{}
	}
	return InputSchema{
		Type:       "object",
		Properties: properties,
		Required:   nonNil(required),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
