// Package choices provides immutable, ordered enumeration tables for model fields.
//
// A table maps symbolic code names to the ids stored in a record, the labels
// shown to people, and any extra attributes an entry carries. Tables are
// meant to be built once, usually as package level variables, and read from
// anywhere afterwards:
//
//	var Animals = choices.Must(choices.New([]choices.Entry[int]{
//	    {Name: "insect", ID: 1},
//	    {Name: "mammal", ID: 2},
//	    {Name: "none", ID: 0, Display: "Not Animal"},
//	}))
//
//	Animals.Choices() // [{1 Insect} {2 Mammal} {0 Not Animal}]
//	Animals.MustID("insect") // 1
//
// Tables come in two flavours. The mapping form (New, FromPairs, FromMap,
// FromYAML) keeps code names as given. The declarative form (Declare, Extend)
// upper-cases code names and lets a derived table override inherited entries
// by name.
//
// The order of Choices() is fixed at construction by an OrderBy policy:
// by display label (default), by id, or as declared.
//
// Every construction error is returned immediately; a table is never partially
// built and cannot be modified afterwards, so it is safe for concurrent use.
package choices
