// Package printer implements the canonical textual printer of spec.md
// §4.C/§6: write-simple, write-shared, write, and display, in both modes
// over the value universe of package value.
//
// Algorithm shape is grounded on hive/walker/core.go's visited-tracking
// DFS (first-visit vs. second-visit branching) and hive/printer's
// Options/New(...)/multi-format entry-point shape, generalized from a
// bitmap over cell offsets to a value.AttrMap over object identity, since
// Scheme values are not contiguous-offset addressable.
package printer
