package choices

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML builds a table from a YAML mapping. Each key is a code name and
// each value is either a scalar id or a mapping with "id", an optional
// "display" and extra attributes. Document order is kept, so OrderNone is
// allowed.
//
//	usa: {id: 0, display: United States}
//	egypt: 1
func FromYAML[ID comparable](data []byte, opts ...Option) (*Choices[ID], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: choices document must be a mapping", ErrConfiguration)
	}

	root := doc.Content[0]
	entries := make([]Entry[ID], 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		e, err := entryFromNode[ID](root.Content[i].Value, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	cfg, err := newConfig(OrderByDisplay, opts)
	if err != nil {
		return nil, err
	}
	return build(entries, cfg.orderBy, false)
}

func entryFromNode[ID comparable](name string, node *yaml.Node) (Entry[ID], error) {
	e := Entry[ID]{Name: name}
	if node.Kind != yaml.MappingNode {
		if err := node.Decode(&e.ID); err != nil {
			return e, fmt.Errorf("%w: id of %s: %w", ErrConfiguration, name, err)
		}
		return e, nil
	}

	hasID := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		switch key {
		case KeyID:
			if err := value.Decode(&e.ID); err != nil {
				return e, fmt.Errorf("%w: id of %s: %w", ErrConfiguration, name, err)
			}
			hasID = true
		case KeyDisplay:
			if err := value.Decode(&e.Display); err != nil {
				return e, fmt.Errorf("%w: display of %s: %w", ErrConfiguration, name, err)
			}
		default:
			var extra any
			if err := value.Decode(&extra); err != nil {
				return e, fmt.Errorf("%w: %s of %s: %w", ErrConfiguration, key, name, err)
			}
			if e.Extra == nil {
				e.Extra = make(map[string]any)
			}
			e.Extra[key] = extra
		}
	}
	if !hasID {
		return e, fmt.Errorf("%w: %s", ErrMissingID, name)
	}
	return e, nil
}
