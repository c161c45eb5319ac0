package choices

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Reserved keys of a mapping entry. They cannot be used as extra attributes.
const (
	KeyID      = "id"
	KeyDisplay = "display"
	KeyName    = "name"
)

// Entry is one enumerated value.
type Entry[ID comparable] struct {
	// Name is the code name used to refer to the entry in code.
	Name string
	// ID is the value stored in the record.
	ID ID
	// Display is the label shown to people. Defaults to a label derived from Name.
	Display string
	// Extra holds any further named attributes.
	Extra map[string]any
}

// Value returns a built-in key (id, display, name) or an extra attribute.
func (e Entry[ID]) Value(key string) (any, bool) {
	switch key {
	case KeyID:
		return e.ID, true
	case KeyDisplay:
		return e.Display, true
	case KeyName:
		return e.Name, true
	}
	v, ok := e.Extra[key]
	return v, ok
}

func (e Entry[ID]) clone() Entry[ID] {
	e.Extra = maps.Clone(e.Extra)
	return e
}

// Choice is one (stored value, label) pair of the call form.
type Choice[ID comparable] struct {
	Value ID
	Label string
}

// Pair is a raw mapping form element. Value is either a scalar id or a
// map[string]any holding "id", an optional "display" and extra attributes.
type Pair struct {
	Name  string
	Value any
}

// DefaultLabel turns a code name into a label: underscores become spaces and
// every word is title-cased, so "WATER_MELON" becomes "Water Melon".
func DefaultLabel(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

func normalizeEntry[ID comparable](e Entry[ID], upper bool) (Entry[ID], error) {
	if e.Name == "" {
		return e, fmt.Errorf("%w: empty code name", ErrConfiguration)
	}
	if upper {
		e.Name = strings.ToUpper(e.Name)
	}
	if v := reflect.ValueOf(any(e.ID)); v.IsValid() && !v.Comparable() {
		return e, fmt.Errorf("%w: id of %s is not hashable: %T", ErrConfiguration, e.Name, any(e.ID))
	}
	if isNaN(reflect.ValueOf(any(e.ID))) {
		return e, fmt.Errorf("%w: id of %s is NaN", ErrConfiguration, e.Name)
	}
	if e.Display == "" {
		e.Display = DefaultLabel(e.Name)
	}
	for _, reserved := range []string{KeyID, KeyDisplay, KeyName} {
		if _, ok := e.Extra[reserved]; ok {
			return e, fmt.Errorf("%w: extra attribute %q of %s shadows a built-in key", ErrConfiguration, reserved, e.Name)
		}
	}
	if len(e.Extra) == 0 {
		e.Extra = nil
	} else {
		e.Extra = maps.Clone(e.Extra)
	}
	return e, nil
}

// entryFromRaw normalizes a scalar-or-mapping value into an entry.
func entryFromRaw[ID comparable](name string, raw any) (Entry[ID], error) {
	e := Entry[ID]{Name: name}
	m, isMap := raw.(map[string]any)
	if !isMap {
		id, err := convertID[ID](name, raw)
		if err != nil {
			return e, err
		}
		e.ID = id
		return e, nil
	}

	rawID, ok := m[KeyID]
	if !ok {
		return e, fmt.Errorf("%w: %s", ErrMissingID, name)
	}
	id, err := convertID[ID](name, rawID)
	if err != nil {
		return e, err
	}
	e.ID = id

	if rawDisplay, ok := m[KeyDisplay]; ok && rawDisplay != nil {
		display, ok := rawDisplay.(string)
		if !ok {
			return e, fmt.Errorf("%w: display of %s is %T, not a string", ErrConfiguration, name, rawDisplay)
		}
		e.Display = display
	}
	for k, v := range m {
		if k == KeyID || k == KeyDisplay {
			continue
		}
		if e.Extra == nil {
			e.Extra = make(map[string]any, len(m))
		}
		e.Extra[k] = v
	}
	return e, nil
}

// convertID asserts raw to ID, allowing lossless conversions between numeric kinds.
func convertID[ID comparable](name string, raw any) (ID, error) {
	if id, ok := raw.(ID); ok {
		return id, nil
	}
	var zero ID
	target := reflect.TypeOf(&zero).Elem()
	v := reflect.ValueOf(raw)
	if v.IsValid() && isNumeric(v.Kind()) && isNumeric(target.Kind()) && v.CanConvert(target) {
		converted := v.Convert(target)
		if converted.Convert(v.Type()).Equal(v) {
			return converted.Interface().(ID), nil
		}
	}
	return zero, fmt.Errorf("%w: id of %s is %T, want %v", ErrConfiguration, name, raw, target)
}

type idClass int

const (
	classUnordered idClass = iota
	classNumber
	classString
)

func isNaN(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return math.IsNaN(real(c)) || math.IsNaN(imag(c))
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func classify(id any) idClass {
	v := reflect.ValueOf(id)
	if !v.IsValid() {
		return classUnordered
	}
	switch {
	case isNumeric(v.Kind()):
		return classNumber
	case v.Kind() == reflect.String:
		return classString
	}
	return classUnordered
}

// checkOrderable fails unless every id is a number or every id is a string.
func checkOrderable[ID comparable](entries []Entry[ID]) error {
	if len(entries) == 0 {
		return nil
	}
	first := classify(entries[0].ID)
	for _, e := range entries {
		class := classify(e.ID)
		if class == classUnordered || class != first {
			return fmt.Errorf("%w: %v (%T) of %s", ErrUnorderableChoices, any(e.ID), any(e.ID), e.Name)
		}
	}
	return nil
}

// compareIDs orders ids that passed checkOrderable.
func compareIDs(a, b any) int {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.String {
		return strings.Compare(va.String(), vb.String())
	}
	switch {
	case va.CanInt() && vb.CanInt():
		return cmp.Compare(va.Int(), vb.Int())
	case va.CanUint() && vb.CanUint():
		return cmp.Compare(va.Uint(), vb.Uint())
	case va.CanInt() && vb.CanUint():
		if va.Int() < 0 {
			return -1
		}
		return cmp.Compare(uint64(va.Int()), vb.Uint())
	case va.CanUint() && vb.CanInt():
		return -compareIDs(b, a)
	}
	return cmp.Compare(asFloat(va), asFloat(vb))
}

func asFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	}
	return v.Float()
}
