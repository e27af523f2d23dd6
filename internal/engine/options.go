package engine

import (
	"sort"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/types"
)

// Options returns the distinct values of every dimension the dataset
// carries, sorted for display. This is what the host hands to filter
// controls as their default "everything selected" lists. The empty
// value is a real option when leads with a missing value exist, so
// that selecting everything really keeps every lead.
func Options(ds *types.Dataset) map[types.Dimension][]string {
	out := map[types.Dimension][]string{}
	if ds == nil {
		return out
	}
	for _, d := range ds.Dimensions {
		seen := map[string]bool{}
		vals := []string{}
		for _, lead := range ds.Leads {
			v := lead.DimensionValue(d)
			if !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
		sort.Strings(vals)
		out[d] = vals
	}
	return out
}

// FullSelection builds the spec that selects every observed value on
// every present dimension, with no search. Apply(ds, FullSelection(ds))
// returns the dataset unchanged in content and order.
func FullSelection(ds *types.Dataset) types.FilterSpec {
	var spec types.FilterSpec
	for d, vals := range Options(ds) {
		spec.SetSelection(d, vals)
	}
	return spec
}
