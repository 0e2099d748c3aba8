package schemafile

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"derive-generator/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// --- GenericList YAML methods ---

// UnmarshalYAML accepts:
//   - Single name: T
//   - Single map: {name: T, constraint: comparable}
//   - Array of both: [T, {name: U, constraint: fmt.Stringer}]
func (g *GenericList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode, yaml.MappingNode:
		def, err := parseGeneric(node)
		if err != nil {
			return err
		}

		*g = GenericList{def}

		return nil

	case yaml.SequenceNode:
		defs := make(GenericList, 0, len(node.Content))

		for _, item := range node.Content {
			def, err := parseGeneric(item)
			if err != nil {
				return err
			}

			defs = append(defs, def)
		}

		*g = defs

		return nil

	default:
		return fmt.Errorf("expected generic name, map, or array, got %v", node.Kind)
	}
}

func parseGeneric(node *yaml.Node) (GenericDef, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return GenericDef{}, fmt.Errorf("invalid generic name: %w", err)
		}

		return GenericDef{Name: name}, nil

	case yaml.MappingNode:
		var def GenericDef
		if err := node.Decode(&def); err != nil {
			return GenericDef{}, fmt.Errorf("invalid generic: %w", err)
		}

		return def, nil

	default:
		return GenericDef{}, fmt.Errorf("expected generic name or map, got %v", node.Kind)
	}
}

// MarshalYAML outputs plain names for unconstrained parameters.
func (g GenericList) MarshalYAML() (any, error) {
	result := make([]any, len(g))

	for i, def := range g {
		if def.Constraint == "" {
			result[i] = def.Name
		} else {
			result[i] = def
		}
	}

	return result, nil
}

// --- FieldList YAML methods ---

// UnmarshalYAML accepts a sequence of fields, each either a single-key map
// {a: T} or the long form {name: a, type: T, skip: [Debug]}.
func (f *FieldList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("expected array of fields, got %v", node.Kind)
	}

	fields := make(FieldList, 0, len(node.Content))

	for _, item := range node.Content {
		field, err := parseField(item)
		if err != nil {
			return err
		}

		fields = append(fields, field)
	}

	*f = fields

	return nil
}

// parseField parses {a: T} or the long form of a record field.
func parseField(node *yaml.Node) (FieldDef, error) {
	if node.Kind != yaml.MappingNode {
		return FieldDef{}, fmt.Errorf("expected field map like {a: T}, got %v", node.Kind)
	}

	if isLongForm(node) {
		var def FieldDef
		if err := node.Decode(&def); err != nil {
			return FieldDef{}, fmt.Errorf("invalid field: %w", err)
		}

		return def, nil
	}

	if len(node.Content) != 2 {
		return FieldDef{}, errors.New("expected single key-value map like {a: T}")
	}

	var def FieldDef

	if err := node.Content[0].Decode(&def.Name); err != nil {
		return FieldDef{}, fmt.Errorf("invalid field name: %w", err)
	}

	if err := node.Content[1].Decode(&def.Type); err != nil {
		return FieldDef{}, fmt.Errorf("invalid field type for %s: %w", def.Name, err)
	}

	return def, nil
}

// isLongForm reports whether a mapping node uses the name/type keys.
func isLongForm(node *yaml.Node) bool {
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == "type" {
			return true
		}
	}

	return false
}

// MarshalYAML outputs the short form for fields without skip groups.
func (f FieldList) MarshalYAML() (any, error) {
	result := make([]any, len(f))

	for i, def := range f {
		if def.Skip.IsEmpty() {
			result[i] = map[string]string{def.Name: def.Type}
		} else {
			result[i] = def
		}
	}

	return result, nil
}

// --- TupleList YAML methods ---

// UnmarshalYAML accepts a sequence of type strings or {type: T, skip: [...]}.
func (t *TupleList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("expected array of tuple items, got %v", node.Kind)
	}

	items := make(TupleList, 0, len(node.Content))

	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			var typ string
			if err := item.Decode(&typ); err != nil {
				return fmt.Errorf("invalid tuple item: %w", err)
			}

			items = append(items, FieldDef{Type: typ})

		case yaml.MappingNode:
			var def FieldDef
			if err := item.Decode(&def); err != nil {
				return fmt.Errorf("invalid tuple item: %w", err)
			}

			items = append(items, def)

		default:
			return fmt.Errorf("expected string or map in tuple, got %v", item.Kind)
		}
	}

	*t = items

	return nil
}

// MarshalYAML outputs plain type strings for items without skip groups.
func (t TupleList) MarshalYAML() (any, error) {
	result := make([]any, len(t))

	for i, def := range t {
		if def.Skip.IsEmpty() {
			result[i] = def.Type
		} else {
			result[i] = FieldDef{Type: def.Type, Skip: def.Skip}
		}
	}

	return result, nil
}
