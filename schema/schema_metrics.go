package schema

// HalsteadTotals maps the five Halstead quantity names to their integer
// totals summed across a snapshot. An empty map means the metric could not
// be computed for any file.
type HalsteadTotals map[HalsteadKey]int

// Volume returns the summed Halstead volume and whether it is present.
func (h HalsteadTotals) Volume() (float64, bool) {
	if len(h) == 0 {
		return 0, false
	}
	return float64(h[HalsteadVolume]), true
}

// MetricsResult is the flat per-snapshot metrics mapping. Pointer fields
// are nil when the metric could not be computed; Halstead degrades to an
// empty map instead. Coupling and Cohesion are permanently nil stubs kept
// for dataset schema stability.
type MetricsResult struct {
	LOC                  *int           `json:"LOC"`
	CyclomaticComplexity *float64       `json:"CyclomaticComplexity"`
	Halstead             HalsteadTotals `json:"HalsteadMetrics"`
	Comments             int            `json:"comments"`
	MaintainabilityIndex *float64       `json:"MaintainabilityIndex"`
	CodeDuplication      *int           `json:"CodeDuplication"`
	Coupling             *float64       `json:"coupling"`
	Cohesion             *float64       `json:"cohesion"`
}

// HalsteadVisit holds the raw per-file Halstead quantities as produced by
// the source visitor, before rounding and truncation.
type HalsteadVisit struct {
	Length     int     // N1 + N2
	Vocabulary int     // n1 + n2
	Volume     float64 // length * log2(vocabulary)
	Difficulty float64 // (n1 / 2) * (N2 / n2)
	Effort     float64 // difficulty * volume
}

// MetricInfo describes one metric for display purposes.
type MetricInfo struct {
	Name        string   `json:"name"`
	Purpose     string   `json:"purpose"`
	Inputs      []string `json:"inputs"`
	Aggregation string   `json:"aggregation"`
	Formula     string   `json:"formula,omitempty"` // Only used for JSON output
}

// MetricsRenderModel contains all processed data needed for displaying metric definitions.
type MetricsRenderModel struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Metrics     []MetricInfo      `json:"metrics"`
	Notes       map[string]string `json:"notes"`
}
