// Package query evaluates sort and section specifications against the record store.
//
// A Spec lists sort keys in priority order and optionally names a section key.
// The section key must be the primary sort key; otherwise records sharing a
// section value would not form contiguous runs and section boundaries would be
// meaningless. Validate reports such specs as ErrInvalidSpec.
//
// Evaluate applies the optional filter and a stable multi-key sort. Ties that
// survive every declared key are broken by insertion order, then by id, so the
// result is fully deterministic.
//
// # Usage
//
//	spec := query.DefaultSpec() // zone asc, wins desc, name asc; sectioned by zone
//	records, err := query.Evaluate(ctx, spec, st)
//	for _, g := range query.Sections(spec, records) {
//	    fmt.Println(g.Key, len(g.Records))
//	}
package query
