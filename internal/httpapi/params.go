// Package httpapi wires the plain-JSON HTTP wire surface (spec.md §6)
// over the ingest and query packages: a router, request parsing, and
// the handlers themselves.
package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"domsetbench/internal/apperror"
	"domsetbench/internal/query"
)

func floatPtr(v url.Values, key string) (*float64, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apperror.NewWithField(apperror.CodeBadInput, "not a number", key)
	}
	return &f, nil
}

func rangeParam(v url.Values, prefix string) (query.Range, error) {
	lb, err := floatPtr(v, prefix+"_min")
	if err != nil {
		return query.Range{}, err
	}
	ub, err := floatPtr(v, prefix+"_max")
	if err != nil {
		return query.Range{}, err
	}
	return query.Range{LB: lb, UB: ub}, nil
}

func boolPtr(v url.Values, key string) *bool {
	s := v.Get(key)
	if s == "" {
		return nil
	}
	b := s == "true" || s == "1"
	return &b
}

func intDefault(v url.Values, key string, def int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.NewWithField(apperror.CodeBadInput, "not an integer", key)
	}
	return n, nil
}

// parseFilter builds a query.Filter from a request's query string,
// applying the configured default/max page limits.
func parseFilter(r *http.Request, defaultLimit, maxLimit int) (*query.Filter, error) {
	v := r.URL.Query()

	page, err := intDefault(v, "page", 1)
	if err != nil {
		return nil, err
	}
	limit, err := intDefault(v, "limit", defaultLimit)
	if err != nil {
		return nil, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	f := &query.Filter{
		Page:              page,
		Limit:             limit,
		SortBy:            query.SortKey(v.Get("sort_by")),
		SortDirection:     strings.ToLower(v.Get("sort_direction")),
		IncludeTagList:    v.Get("include_tag_list") == "true",
		IncludeMaxValues:  v.Get("include_max_values") == "true",
	}

	if s := v.Get("tag_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, apperror.NewWithField(apperror.CodeBadInput, "not an integer", "tag_id")
		}
		f.TagID = &id
	}

	if f.NodesRange, err = rangeParam(v, "nodes"); err != nil {
		return nil, err
	}
	if f.EdgesRange, err = rangeParam(v, "edges"); err != nil {
		return nil, err
	}
	if f.BestScoreRange, err = rangeParam(v, "best_score"); err != nil {
		return nil, err
	}
	if f.MinDegRange, err = rangeParam(v, "min_deg"); err != nil {
		return nil, err
	}
	if f.MaxDegRange, err = rangeParam(v, "max_deg"); err != nil {
		return nil, err
	}
	if f.NumCCsRange, err = rangeParam(v, "num_ccs"); err != nil {
		return nil, err
	}
	if f.NodesLargestCCRange, err = rangeParam(v, "nodes_largest_cc"); err != nil {
		return nil, err
	}
	if f.DiameterRange, err = rangeParam(v, "diameter"); err != nil {
		return nil, err
	}
	if f.TreewidthRange, err = rangeParam(v, "treewidth"); err != nil {
		return nil, err
	}

	f.Planar = boolPtr(v, "planar")
	f.Bipartite = boolPtr(v, "bipartite")
	f.Regular = boolPtr(v, "regular")

	if s := v.Get("search"); s != "" {
		f.SearchText = &s
	}
	if s := v.Get("iid"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, apperror.NewWithField(apperror.CodeBadInput, "not an integer", "iid")
		}
		f.IIDExact = &id
	}

	// Overlay fields are parsed unconditionally so that a lone
	// overlay_solver/overlay_run, or an overlay-only filter range
	// submitted without either, is caught by Filter.Validate() below
	// rather than silently dropped (spec.md §4.7: "both or neither").
	solver, run := v.Get("overlay_solver"), v.Get("overlay_run")
	scoreRange, err := rangeParam(v, "overlay_score")
	if err != nil {
		return nil, err
	}
	scoreDiffRange, err := rangeParam(v, "overlay_score_diff")
	if err != nil {
		return nil, err
	}
	secondsComputedRange, err := rangeParam(v, "overlay_seconds_computed")
	if err != nil {
		return nil, err
	}
	var resultStatus *query.ResultStatus
	if s := v.Get("overlay_status"); s != "" {
		status := query.ResultStatus(s)
		resultStatus = &status
	}

	overlayRequested := solver != "" || run != "" ||
		!scoreRange.Empty() || !scoreDiffRange.Empty() || !secondsComputedRange.Empty() || resultStatus != nil
	if overlayRequested {
		f.Overlay = &query.SolverOverlay{
			Solver:               solver,
			Run:                  run,
			ScoreRange:           scoreRange,
			ScoreDiffRange:       scoreDiffRange,
			SecondsComputedRange: secondsComputedRange,
			ResultStatus:         resultStatus,
		}
	}

	if err := f.Validate(); err != nil {
		return nil, apperror.New(apperror.CodeBadInput, err.Error())
	}

	return f, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	s := r.PathValue(name)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperror.NewWithField(apperror.CodeBadInput, "not an integer", name)
	}
	return id, nil
}
