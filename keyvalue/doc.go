// Package keyvalue stores a flat string mapping as text, one "key = value"
// pair per line, so it fits a plain text database column.
//
//	opts, err := keyvalue.Parse("color = red\nsize = 4\n", keyvalue.DefaultSeparator)
//	opts.Set("size", 5)
//	opts.String() // "color = red\nsize = 5\n"
package keyvalue
