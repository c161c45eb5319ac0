package keyvalue

import (
	"fmt"
)

// Field converts between a text column and a Container using Separator.
type Field struct {
	Separator string
}

// FromDB parses stored text. Syntax errors come back as *ValidationError.
func (f Field) FromDB(text string) (*Container, error) {
	c, err := Parse(text, f.Separator)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	return c, nil
}

// ToDB renders c for storage. A nil container is stored as "".
func (f Field) ToDB(c *Container) string {
	if c == nil {
		return ""
	}
	return c.String()
}

// Assign converts a value set on a model into a Container: text is parsed,
// maps are copied and containers are kept as they are.
func (f Field) Assign(value any) (*Container, error) {
	switch v := value.(type) {
	case nil:
		return New(f.Separator), nil
	case string:
		return f.FromDB(v)
	case []byte:
		return f.FromDB(string(v))
	case *Container:
		if v == nil {
			return New(f.Separator), nil
		}
		return v, nil
	case map[string]string:
		return FromMap(v, f.Separator), nil
	case map[string]any:
		return FromMap(v, f.Separator), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}
