package uploadto

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lestrrat-go/strftime"
)

// Named lets a model choose the {model_name} it renders as.
type Named interface {
	ModelName() string
}

// Model is implemented by instances with a primary key, rendered by {instance.pk}.
type Model interface {
	PK() any
}

const instancePrefix = "instance."

// ModelName returns the name instance renders as: ModelName() when it is
// Named, else its type name.
func ModelName(instance any) string {
	if n, ok := instance.(Named); ok {
		return n.ModelName()
	}
	t := reflect.TypeOf(instance)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// render expands strftime verbs in template, then substitutes {placeholders}.
// "{{" and "}}" stand for literal braces.
func render(template string, now time.Time, instance any, info FileInfo) (string, error) {
	if instance == nil {
		return "", ErrNilInstance
	}
	expanded, err := strftime.Format(template, now)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrTemplate, template, err)
	}

	var b strings.Builder
	for i := 0; i < len(expanded); {
		c := expanded[i]
		switch {
		case c == '{' && strings.HasPrefix(expanded[i:], "{{"):
			b.WriteByte('{')
			i += 2
		case c == '}' && strings.HasPrefix(expanded[i:], "}}"):
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(expanded[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed placeholder in %q", ErrTemplate, template)
			}
			v, err := placeholder(expanded[i+1:i+end], instance, info)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
			i += end + 1
		case c == '}':
			return "", fmt.Errorf("%w: single '}' in %q", ErrTemplate, template)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

func placeholder(name string, instance any, info FileInfo) (string, error) {
	switch name {
	case "model_name":
		return ModelName(instance), nil
	case "filename":
		return info.Filename, nil
	case "extension":
		return info.Extension, nil
	case "full_filename":
		return info.FullFilename, nil
	case "uuid":
		return uuid.NewString(), nil
	}
	if attr, ok := strings.CutPrefix(name, instancePrefix); ok {
		v, err := instanceAttribute(instance, attr)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("%w: unknown placeholder {%s}", ErrTemplate, name)
}

// instanceAttribute resolves attr on instance: "pk" through PK(), then a
// zero-argument method, then an exported field. A lower-case attr also
// matches its capitalised Go name.
func instanceAttribute(instance any, attr string) (any, error) {
	if attr == "pk" {
		if m, ok := instance.(Model); ok {
			return m.PK(), nil
		}
	}
	names := []string{attr}
	if r, size := utf8.DecodeRuneInString(attr); unicode.IsLower(r) {
		names = append(names, string(unicode.ToUpper(r))+attr[size:])
	}

	rv := reflect.ValueOf(instance)
	for _, n := range names {
		if m := rv.MethodByName(n); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
			return m.Call(nil)[0].Interface(), nil
		}
	}
	s := reflect.Indirect(rv)
	if s.Kind() == reflect.Struct {
		for _, n := range names {
			if f, ok := s.Type().FieldByName(n); ok && f.IsExported() {
				return s.FieldByIndex(f.Index).Interface(), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %T has no attribute %q", ErrTemplate, instance, attr)
}
