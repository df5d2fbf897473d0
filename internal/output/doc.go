// Package output holds the path-keyed build output table.
//
// Every request path maps to an Item of one of four kinds. Override items do
// not carry their payload inline: they point at a record in the table's
// arena, and every alias of the same logical resource points at the same
// record. Mutating a record's headers through the table is therefore visible
// through all of its aliases.
package output
