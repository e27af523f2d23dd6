package engine

import (
	"strings"

	"github.com/thiagogoldschmidt/InternorgaDashboard/internal/types"
)

type dimSet struct {
	dim types.Dimension
	set map[string]bool
}

// Apply filters ds by spec and aggregates the filtered view in a
// single pass. It is a pure function of its inputs and total over
// them: a nil or empty dataset, or a spec matching nothing, yields a
// zero-count result, never an error. Source order is preserved.
func Apply(ds *types.Dataset, spec types.FilterSpec) types.DashboardResult {
	res := types.DashboardResult{
		Leads:      []types.Lead{},
		Metrics:    types.MetricsSummary{Tiers: make(map[string]int, len(types.FixedTiers))},
		Breakdowns: []types.CategoryBreakdown{},
	}
	for _, tier := range types.FixedTiers {
		res.Metrics.Tiers[tier] = 0
	}
	if ds == nil {
		return res
	}

	// lookup sets per active dimension; a nil selection means the
	// dimension was omitted, an empty one matches nothing
	var sets []dimSet
	for _, d := range types.AllDimensions {
		sel, active := spec.Selection(d)
		if !active {
			continue
		}
		set := make(map[string]bool, len(sel))
		for _, v := range sel {
			set[v] = true
		}
		sets = append(sets, dimSet{dim: d, set: set})
	}
	search := strings.ToLower(spec.Search)

	counts := make(map[types.Dimension]map[string]int, len(ds.Dimensions))
	for _, d := range ds.Dimensions {
		counts[d] = map[string]int{}
	}

	for _, lead := range ds.Leads {
		if !matches(lead, sets, search) {
			continue
		}
		res.Leads = append(res.Leads, lead)
		res.Metrics.Total++
		// only the fixed tiers are counted here; an unexpected tier
		// value still shows up in the scoring breakdown
		if _, fixed := res.Metrics.Tiers[lead.Scoring]; fixed {
			res.Metrics.Tiers[lead.Scoring]++
		}
		for _, d := range ds.Dimensions {
			counts[d][lead.DimensionValue(d)]++
		}
	}

	for _, d := range ds.Dimensions {
		res.Breakdowns = append(res.Breakdowns, types.CategoryBreakdown{
			Dimension: d,
			Counts:    counts[d],
		})
	}
	return res
}

// matches checks all dimension predicates (AND-combined) and then the
// text search. A missing dimension value passes only when the empty
// value itself is selected; a missing text field never matches.
func matches(lead types.Lead, sets []dimSet, search string) bool {
	for _, s := range sets {
		if !s.set[lead.DimensionValue(s.dim)] {
			return false
		}
	}
	if search == "" {
		return true
	}
	for _, field := range []string{lead.Company, lead.FirstName, lead.LastName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
