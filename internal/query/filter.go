// Package query implements the typed filter DSL and SQL planner for
// listing/searching Instance rows, optionally joined against a single
// SolverRun's Solution overlay (spec.md §4.7).
package query

import "fmt"

// SortKey enumerates the closed set of sortable columns.
type SortKey string

const (
	SortKeyIID             SortKey = "iid"
	SortKeyName            SortKey = "name"
	SortKeyNodes           SortKey = "n"
	SortKeyEdges           SortKey = "m"
	SortKeyBestScore       SortKey = "best_score"
	SortKeyDifficulty      SortKey = "difficulty" // aliases best_score, see planner
	SortKeyMinDeg          SortKey = "min_deg"
	SortKeyMaxDeg          SortKey = "max_deg"
	SortKeyNumCCs          SortKey = "num_ccs"
	SortKeyNodesLargestCC  SortKey = "nodes_largest_cc"
	SortKeyDiameter        SortKey = "diameter"
	SortKeyTreewidth       SortKey = "treewidth"
	SortKeyCreatedAt       SortKey = "created_at"

	// Overlay-only sort keys, valid only when SolverOverlay is set.
	SortKeyScore           SortKey = "score"
	SortKeyScoreDiff       SortKey = "score_diff"
	SortKeySecondsComputed SortKey = "seconds_computed"
	SortKeyErrorCode       SortKey = "error_code"
)

var overlayOnlySortKeys = map[SortKey]bool{
	SortKeyScore: true, SortKeyScoreDiff: true, SortKeySecondsComputed: true, SortKeyErrorCode: true,
}

// ResultStatus is the overlay's result_status enum.
type ResultStatus string

const (
	ResultStatusNone       ResultStatus = "None"
	ResultStatusValid      ResultStatus = "Valid"
	ResultStatusInvalid    ResultStatus = "Invalid"
	ResultStatusOptimal    ResultStatus = "Optimal"
	ResultStatusSuboptimal ResultStatus = "Suboptimal"
	ResultStatusIncomplete ResultStatus = "Incomplete"
	ResultStatusTimeout    ResultStatus = "Timeout"
	ResultStatusInfeasible ResultStatus = "Infeasible"
	ResultStatusError      ResultStatus = "Error"
)

// Range is an inclusive lower/upper bound pair; a nil field is unset.
type Range struct {
	LB *float64
	UB *float64
}

// Empty reports whether neither bound was supplied.
func (r Range) Empty() bool {
	return r.LB == nil && r.UB == nil
}

// SolverOverlay joins a specific (solver run, instance) Solution row
// in. It must be fully set or fully absent.
type SolverOverlay struct {
	Solver             string
	Run                string
	ScoreRange         Range
	ScoreDiffRange     Range
	SecondsComputedRange Range
	ResultStatus       *ResultStatus
}

// Filter is the flat configuration accepted by the listing/search
// endpoints.
type Filter struct {
	// pagination
	Page  int
	Limit int

	// sort
	SortBy        SortKey
	SortDirection string // asc, desc

	// tag filter
	TagID *int64

	// size / structure ranges
	NodesRange          Range
	EdgesRange          Range
	BestScoreRange      Range
	MinDegRange         Range
	MaxDegRange         Range
	NumCCsRange         Range
	NodesLargestCCRange Range
	DiameterRange       Range
	TreewidthRange      Range

	// boolean facets
	Planar    *bool
	Bipartite *bool
	Regular   *bool

	// search
	SearchText *string
	IIDExact   *int64

	Overlay *SolverOverlay

	IncludeTagList    bool
	IncludeMaxValues  bool
}

// Validate enforces the cross-field constraints spec.md calls
// check_validity: overlay-only sort keys and overlay-only filter
// ranges require a fully-specified overlay (both solver and run),
// pages are 1-based, and limit must be positive.
func (f *Filter) Validate() error {
	if f.Page < 1 {
		return fmt.Errorf("query: page must be >= 1")
	}
	if f.Limit <= 0 {
		return fmt.Errorf("query: limit must be positive")
	}
	if f.SortBy != "" && overlayOnlySortKeys[f.SortBy] && f.Overlay == nil {
		return fmt.Errorf("query: sort key %q requires a solver overlay", f.SortBy)
	}
	if f.SortDirection != "" && f.SortDirection != "asc" && f.SortDirection != "desc" {
		return fmt.Errorf("query: sort_direction must be asc or desc")
	}
	// The overlay is "both or neither" (spec.md §4.7): a caller must
	// not be able to submit a lone solver/run, nor submit overlay-only
	// filter ranges without one, and have them silently dropped.
	if f.Overlay != nil && (f.Overlay.Solver == "" || f.Overlay.Run == "") {
		return fmt.Errorf("query: overlay filters require both solver and run")
	}
	return nil
}
