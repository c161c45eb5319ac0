package keyvalue_test

import (
	"database/sql"
	"database/sql/driver"
	"slices"
	"testing"

	"github.com/on-the-ground/modelhelpers/keyvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ sql.Scanner   = (*keyvalue.Container)(nil)
	_ driver.Valuer = (*keyvalue.Container)(nil)
)

func TestParse(t *testing.T) {
	c, err := keyvalue.Parse("  name = Ramast \n\n age=30\nurl = a=b\n", keyvalue.DefaultSeparator)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"name": "Ramast", "age": "30", "url": "a=b"}, c.Map())
	assert.Equal(t, []string{"name", "age", "url"}, slices.Collect(c.Keys()))
	assert.Equal(t, "name = Ramast\nage = 30\nurl = a=b\n", c.String())
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "\n", "  \n \t\n"} {
		c, err := keyvalue.Parse(text, "")
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, "", c.String())
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := keyvalue.Parse("a = 1\nName ?? Ramast", "=")
	require.ErrorIs(t, err, keyvalue.ErrInvalidSyntax)

	var syntaxErr *keyvalue.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 2, syntaxErr.Line)
	assert.Equal(t, "Name ?? Ramast", syntaxErr.Text)
	assert.Equal(t, "=", syntaxErr.Separator)
}

func TestParse_CustomSeparator(t *testing.T) {
	_, err := keyvalue.Parse("Name = Ramast", ":")
	assert.ErrorIs(t, err, keyvalue.ErrInvalidSyntax)

	c, err := keyvalue.Parse("Name : Ramast", ":")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Name": "Ramast"}, c.Map())
	assert.Equal(t, "Name : Ramast\n", c.String())
}

func TestContainer_Set(t *testing.T) {
	c := keyvalue.New("")
	c.Set("Age", 30)
	c.Set("Empty", nil)
	c.Set("Ratio", 0.5)
	c.Set("Age", "31")

	assert.Equal(t, "=", c.Separator())
	assert.Equal(t, 3, c.Len())
	v, ok := c.Get("Age")
	assert.True(t, ok)
	assert.Equal(t, "31", v)
	v, ok = c.Get("Empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	_, ok = c.Get("Missing")
	assert.False(t, ok)
	assert.Equal(t, "Age = 31\nEmpty = \nRatio = 0.5\n", c.String())
}

func TestContainer_DeleteAndUpdate(t *testing.T) {
	c := keyvalue.FromMap(map[string]int{"b": 2, "a": 1}, "=")
	assert.Equal(t, []string{"a", "b"}, slices.Collect(c.Keys()))

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))

	c.Update(map[string]any{"Name": "Ramast", "b": 3})
	assert.Equal(t, "b = 3\nName = Ramast\n", c.String())

	other := keyvalue.New("=")
	other.Set("z", "last")
	other.Set("b", "4")
	c.Merge(other)
	assert.Equal(t, "b = 4\nName = Ramast\nz = last\n", c.String())

	pairs := map[string]string{}
	for k, v := range c.All() {
		pairs[k] = v
		if k == "Name" {
			break
		}
	}
	assert.Equal(t, map[string]string{"b": "4", "Name": "Ramast"}, pairs)
}

func TestContainer_MapIsACopy(t *testing.T) {
	c := keyvalue.New("=")
	c.Set("k", "v")
	m := c.Map()
	m["k"] = "changed"

	v, _ := c.Get("k")
	assert.Equal(t, "v", v)
}

func TestContainer_ScanKeepsContentsOnError(t *testing.T) {
	c := keyvalue.New(":")
	c.Set("old", 1)

	err := c.Scan("fresh: 2\nbroken line")
	require.ErrorIs(t, err, keyvalue.ErrInvalidSyntax)
	assert.Equal(t, map[string]string{"old": "1"}, c.Map())
	assert.Equal(t, "old : 1\n", c.String())

	assert.ErrorIs(t, c.Scan(3.5), keyvalue.ErrUnsupportedValue)
	assert.Equal(t, map[string]string{"old": "1"}, c.Map())

	require.NoError(t, c.Scan("fresh: 2"))
	assert.Equal(t, map[string]string{"fresh": "2"}, c.Map())
}

func TestContainer_ScanValue(t *testing.T) {
	var c keyvalue.Container
	require.NoError(t, c.Scan([]byte("a = 1\nb = 2\n")))
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, c.Map())

	require.NoError(t, c.Scan("c = 3"))
	assert.Equal(t, map[string]string{"c": "3"}, c.Map())

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "c = 3\n", v)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, 0, c.Len())

	assert.ErrorIs(t, c.Scan(42), keyvalue.ErrUnsupportedValue)
	assert.ErrorIs(t, c.Scan("no separator"), keyvalue.ErrInvalidSyntax)

	var nilContainer *keyvalue.Container
	v, err = nilContainer.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
