package query

import (
	"fmt"
	"strings"
)

// sortColumn maps a validated SortKey to its whitelisted SQL
// identifier. SortKeyDifficulty deliberately aliases best_score, so
// it sorts exactly like SortKeyBestScore; instances with no recorded
// solution have a NULL best_score and get no size-based fallback.
func sortColumn(key SortKey) string {
	switch key {
	case SortKeyDifficulty:
		return "i.best_score"
	case SortKeyScore:
		return "s.score"
	case SortKeyScoreDiff:
		return "(s.score - i.best_score)"
	case SortKeySecondsComputed:
		return "s.seconds_computed"
	case SortKeyErrorCode:
		return "s.error_code"
	case SortKeyIID, SortKeyName, SortKeyNodes, SortKeyEdges, SortKeyBestScore,
		SortKeyMinDeg, SortKeyMaxDeg, SortKeyNumCCs, SortKeyNodesLargestCC,
		SortKeyDiameter, SortKeyTreewidth, SortKeyCreatedAt:
		return "i." + string(key)
	default:
		return "i.iid"
	}
}

// planner accumulates WHERE conditions and positional args, assigning
// placeholder numbers as conditions are added — the only string
// concatenation performed is of whitelisted identifiers, never of
// caller-supplied values.
type planner struct {
	conditions []string
	args       []any
	joinSolution bool
}

func newPlanner() *planner {
	return &planner{conditions: []string{"1=1"}}
}

func (p *planner) arg(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

func (p *planner) addRange(column string, r Range) {
	if r.LB != nil {
		p.conditions = append(p.conditions, fmt.Sprintf("%s >= %s", column, p.arg(*r.LB)))
	}
	if r.UB != nil {
		p.conditions = append(p.conditions, fmt.Sprintf("%s <= %s", column, p.arg(*r.UB)))
	}
}

func (p *planner) addEq(column string, v any) {
	p.conditions = append(p.conditions, fmt.Sprintf("%s = %s", column, p.arg(v)))
}

func (p *planner) where() string {
	return strings.Join(p.conditions, " AND ")
}

// build assembles the shared WHERE clause and argument list for a
// Filter, joining the Solution overlay when requested.
func build(f *Filter) *planner {
	p := newPlanner()

	p.addRange("i.n", f.NodesRange)
	p.addRange("i.m", f.EdgesRange)
	p.addRange("i.best_score", f.BestScoreRange)
	p.addRange("i.min_deg", f.MinDegRange)
	p.addRange("i.max_deg", f.MaxDegRange)
	p.addRange("i.num_ccs", f.NumCCsRange)
	p.addRange("i.nodes_largest_cc", f.NodesLargestCCRange)
	p.addRange("i.diameter", f.DiameterRange)
	p.addRange("i.treewidth", f.TreewidthRange)

	if f.Planar != nil {
		p.addEq("i.planar", *f.Planar)
	}
	if f.Bipartite != nil {
		p.addEq("i.bipartite", *f.Bipartite)
	}
	if f.Regular != nil && *f.Regular {
		p.conditions = append(p.conditions, "i.min_deg = i.max_deg")
	}

	if f.TagID != nil {
		p.conditions = append(p.conditions,
			fmt.Sprintf("EXISTS (SELECT 1 FROM instance_tag it WHERE it.instance_iid = i.iid AND it.tag_tid = %s)", p.arg(*f.TagID)))
	}

	if f.IIDExact != nil {
		p.addEq("i.iid", *f.IIDExact)
	} else if f.SearchText != nil && *f.SearchText != "" {
		p.conditions = append(p.conditions,
			fmt.Sprintf("to_tsvector('simple', COALESCE(i.name,'') || ' ' || COALESCE(i.description,'') || ' ' || COALESCE(i.submitted_by,'')) @@ plainto_tsquery('simple', %s)", p.arg(*f.SearchText)))
	}

	if f.Overlay != nil {
		p.joinSolution = true
		p.conditions = append(p.conditions, fmt.Sprintf("sr.solver_uuid::text = %s", p.arg(f.Overlay.Solver)))
		p.conditions = append(p.conditions, fmt.Sprintf("sr.run_uuid::text = %s", p.arg(f.Overlay.Run)))
		p.addRange("s.score", f.Overlay.ScoreRange)
		p.addRange("(s.score - i.best_score)", f.Overlay.ScoreDiffRange)
		p.addRange("s.seconds_computed", f.Overlay.SecondsComputedRange)
		if f.Overlay.ResultStatus != nil {
			p.addEq("s.error_code", string(*f.Overlay.ResultStatus))
		}
	}

	return p
}

func (f *Filter) joinClause(p *planner) string {
	if p.joinSolution {
		return "JOIN solution s ON s.instance_iid = i.iid JOIN solver_run sr ON sr.run_uuid = s.sr_uuid"
	}
	return ""
}

func (f *Filter) orderClause() string {
	dir := "asc"
	if f.SortDirection == "desc" {
		dir = "desc"
	}
	col := "i.iid"
	if f.SortBy != "" {
		col = sortColumn(f.SortBy)
	}
	return fmt.Sprintf("%s %s", col, dir)
}

// ListQuery builds shape 1: the paginated listing query, plus its
// argument list (LIMIT/OFFSET appended last).
func ListQuery(f *Filter) (string, []any) {
	p := build(f)

	var b strings.Builder
	b.WriteString("SELECT i.*")
	if f.IncludeTagList {
		b.WriteString(", (SELECT string_agg(it.tag_tid::text, ',') FROM instance_tag it WHERE it.instance_iid = i.iid) AS tags")
	}
	if p.joinSolution {
		b.WriteString(", s.sid, s.sr_uuid, s.error_code, s.score, s.seconds_computed, s.solution_hash")
	}
	b.WriteString(" FROM instance i ")
	b.WriteString(f.joinClause(p))
	b.WriteString(" WHERE ")
	b.WriteString(p.where())
	b.WriteString(" ORDER BY ")
	b.WriteString(f.orderClause())

	limitPos := p.arg(f.Limit)
	offsetPos := p.arg((f.Page - 1) * f.Limit)
	fmt.Fprintf(&b, " LIMIT %s OFFSET %s", limitPos, offsetPos)

	return b.String(), p.args
}

// CountQuery builds shape 2: the total-match count for the same
// filter, without pagination.
func CountQuery(f *Filter) (string, []any) {
	p := build(f)

	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM instance i ")
	b.WriteString(f.joinClause(p))
	b.WriteString(" WHERE ")
	b.WriteString(p.where())

	return b.String(), p.args
}

// IDListQuery builds shape 3: the bulk iid list used by the
// newline-joined "instance_list" and "download id list" endpoints.
func IDListQuery(f *Filter) (string, []any) {
	p := build(f)

	var b strings.Builder
	b.WriteString("SELECT i.iid FROM instance i ")
	b.WriteString(f.joinClause(p))
	b.WriteString(" WHERE ")
	b.WriteString(p.where())
	b.WriteString(" ORDER BY ")
	b.WriteString(f.orderClause())

	return b.String(), p.args
}
