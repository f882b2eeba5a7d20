// Package portal finds the two-letter labels written around a donut maze,
// classifies every labeled opening as sitting on the outer or the inner ring,
// and pairs equally labeled openings into portals.
//
// What
//
//   - Scan walks every cell of a gridgraph.Grid and matches the vertical and
//     horizontal windows "letter letter floor" and "floor letter letter".
//     The floor cell is the walkable portal tile; the letters, read
//     top-to-bottom or left-to-right, form the Label.
//   - A match whose letters touch the physical edge of the grid is Outer,
//     every other match is Inner (it borders the central hole).
//   - Pair groups occurrences by label. The entry and exit sentinel labels
//     (AA and ZZ by default) give the start and end tiles; every other label
//     must occur exactly twice and becomes a symmetric pair of Links.
//
// Layers
//
//	Each Link records both its own Layer and the Layer of its partner. The
//	two are independent: a well-formed donut pairs an outer tile with an
//	inner one, but nothing in the flat topology requires it.
//
// Errors
//
//   - ErrMalformedLabel   a non-sentinel label occurs other than twice, or a
//     sentinel occurs more than once.
//   - ErrMissingSentinel  the entry or exit label is absent.
//   - ErrOptionViolation  invalid sentinel configuration.
//
// Usage
//
//	layout, err := portal.Extract(g)
//	if err != nil {
//	    // ErrMalformedLabel, ErrMissingSentinel, ErrOptionViolation
//	}
//	if link, ok := layout.Portals.Partner(tile); ok {
//	    fmt.Println(link.Label, link.Layer, "→", link.To)
//	}
package portal
