// Package column resolves ordered column declarations into a field-keyed lookup.
//
// A declaration describes one displayed column: the row field it reads, its
// header label, whether it is sortable, its declared value type, and how its
// values are rendered. Resolve stamps each declaration with its ordinal index
// so cells are always placed in declaration order, independent of the order in
// which a row's fields happen to be iterated.
package column
