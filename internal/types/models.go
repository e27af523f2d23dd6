package types

// Dimension identifies one categorical lead attribute that can be
// filtered on and broken down into per-value counts.
type Dimension string

const (
	DimScoring  Dimension = "scoring"
	DimVertical Dimension = "vertical"
	DimFollowUp Dimension = "follow_up"
	DimRep      Dimension = "rep"
	DimOutcome  Dimension = "outcome"
)

// AllDimensions lists every dimension in display order.
var AllDimensions = []Dimension{DimScoring, DimVertical, DimFollowUp, DimRep, DimOutcome}

// Column returns the exact source column header for the dimension.
func (d Dimension) Column() string {
	switch d {
	case DimScoring:
		return "Scoring"
	case DimVertical:
		return "Vertical"
	case DimFollowUp:
		return "Follow Up"
	case DimRep:
		return "Rep"
	case DimOutcome:
		return "Event Outcome"
	}
	return string(d)
}

// UnscoredTier is the sentinel substituted at load time for a missing,
// empty, or "/" score value.
const UnscoredTier = "Unscored"

// FixedTiers are the score tiers always reported in MetricsSummary,
// present even when their count is zero.
var FixedTiers = []string{"A", "B", "C", UnscoredTier}

// Lead is one prospective-customer record collected at an event.
// Every field except Row may be empty in the source; Scoring is
// guaranteed non-empty after loading (see UnscoredTier).
type Lead struct {
	Row       int    `json:"row"`
	Scoring   string `json:"scoring"`
	Vertical  string `json:"vertical,omitempty"`
	FollowUp  string `json:"follow_up,omitempty"`
	Rep       string `json:"rep,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Company   string `json:"company,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	// Extra holds source columns outside the fixed schema, untouched.
	Extra map[string]string `json:"extra,omitempty"`
}

// DimensionValue returns the lead's raw value for the dimension.
func (l Lead) DimensionValue(d Dimension) string {
	switch d {
	case DimScoring:
		return l.Scoring
	case DimVertical:
		return l.Vertical
	case DimFollowUp:
		return l.FollowUp
	case DimRep:
		return l.Rep
	case DimOutcome:
		return l.Outcome
	}
	return ""
}

// Dataset is the ordered, immutable lead collection for one load.
// Columns preserves the full source column order, extras included.
// Dimensions lists only the dimensions whose columns the source had,
// so callers can skip absent ones instead of probing.
type Dataset struct {
	Leads      []Lead      `json:"leads"`
	Columns    []string    `json:"columns"`
	Dimensions []Dimension `json:"dimensions"`
}

// HasDimension reports whether the source carried the dimension's column.
func (ds *Dataset) HasDimension(d Dimension) bool {
	for _, have := range ds.Dimensions {
		if have == d {
			return true
		}
	}
	return false
}

// FilterSpec is one user-supplied filter state. A nil selection slice
// means the dimension is omitted (no filter); a non-nil empty slice is
// an active selection that matches nothing. JSON keeps the distinction:
// an absent key unmarshals to nil, "[]" to an empty non-nil slice.
type FilterSpec struct {
	Scoring  []string `json:"scoring"`
	Vertical []string `json:"vertical"`
	FollowUp []string `json:"follow_up"`
	Rep      []string `json:"rep"`
	Outcome  []string `json:"outcome"`
	Search   string   `json:"search,omitempty"`
}

// Selection returns the selected values for the dimension and whether
// the dimension is active in this spec.
func (f FilterSpec) Selection(d Dimension) ([]string, bool) {
	var sel []string
	switch d {
	case DimScoring:
		sel = f.Scoring
	case DimVertical:
		sel = f.Vertical
	case DimFollowUp:
		sel = f.FollowUp
	case DimRep:
		sel = f.Rep
	case DimOutcome:
		sel = f.Outcome
	}
	return sel, sel != nil
}

// SetSelection activates the dimension with the given values. Passing
// an empty non-nil slice makes the dimension match nothing.
func (f *FilterSpec) SetSelection(d Dimension, vals []string) {
	switch d {
	case DimScoring:
		f.Scoring = vals
	case DimVertical:
		f.Vertical = vals
	case DimFollowUp:
		f.FollowUp = vals
	case DimRep:
		f.Rep = vals
	case DimOutcome:
		f.Outcome = vals
	}
}

// MetricsSummary are the scalar counts for one filtered view.
// Tiers always carries every FixedTiers key; an unexpected tier value
// in the data is visible in the scoring breakdown but not here, so the
// tier sum may fall short of Total.
type MetricsSummary struct {
	Total int            `json:"total"`
	Tiers map[string]int `json:"tiers"`
}

// CategoryBreakdown maps each raw value of one dimension to its count
// in the filtered view. Values absent from the view are absent here;
// consumers treat absence as zero. Unordered; display sorting is the
// presentation layer's job.
type CategoryBreakdown struct {
	Dimension Dimension      `json:"dimension"`
	Counts    map[string]int `json:"counts"`
}

// DashboardResult is everything the engine derives from one
// (Dataset, FilterSpec) pair.
type DashboardResult struct {
	Leads      []Lead              `json:"leads"`
	Metrics    MetricsSummary      `json:"metrics"`
	Breakdowns []CategoryBreakdown `json:"breakdowns"`
}
