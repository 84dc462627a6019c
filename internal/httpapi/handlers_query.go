package httpapi

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"domsetbench/internal/apperror"
	"domsetbench/internal/httpapi/respond"
	"domsetbench/internal/ingest"
	"domsetbench/internal/pace"
	"domsetbench/internal/query"
)

const problemID = "ds"

// Status reports the summary counts a dashboard or health check polls.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	var instances, solutions, tags int64
	row := h.db.QueryRow(r.Context(), `SELECT
		(SELECT COUNT(*) FROM instance),
		(SELECT COUNT(*) FROM solution),
		(SELECT COUNT(*) FROM tag)`)
	if err := row.Scan(&instances, &solutions, &tags); err != nil {
		respond.Error(w, fmt.Errorf("status counts: %w", err))
		return
	}

	respond.OK(w, map[string]any{
		"status":    "success",
		"server":    "domsetbench",
		"problem":   problemID,
		"instances": instances,
		"solutions": solutions,
		"tags":      tags,
	})
}

type tagModel struct {
	TID             int64  `json:"tid"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Style           string `json:"style"`
	InstanceCount   int64  `json:"instance_count"`
}

// TagsList returns every tag along with how many instances carry it.
func (h *Handlers) TagsList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(r.Context(), `
		SELECT t.tid, t.name, t.description, t.style, COUNT(it.instance_iid)
		FROM tag t
		LEFT JOIN instance_tag it ON it.tag_tid = t.tid
		GROUP BY t.tid
		ORDER BY t.name`)
	if err != nil {
		respond.Error(w, fmt.Errorf("list tags: %w", err))
		return
	}
	defer rows.Close()

	tags := make([]tagModel, 0)
	for rows.Next() {
		var t tagModel
		if err := rows.Scan(&t.TID, &t.Name, &t.Description, &t.Style, &t.InstanceCount); err != nil {
			respond.Error(w, fmt.Errorf("scan tag: %w", err))
			return
		}
		tags = append(tags, t)
	}

	respond.OK(w, map[string]any{"status": "success", "tags": tags})
}

type instanceResult struct {
	IID            int64    `json:"iid"`
	Nodes          int32    `json:"nodes"`
	Edges          int32    `json:"edges"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	SubmittedBy    string   `json:"submitted_by,omitempty"`
	BestScore      *int32   `json:"best_known_solution,omitempty"`
	MinDeg         *int32   `json:"min_deg,omitempty"`
	MaxDeg         *int32   `json:"max_deg,omitempty"`
	NumCCs         *int32   `json:"num_ccs,omitempty"`
	NodesLargestCC *int32   `json:"nodes_largest_cc,omitempty"`
	Diameter       *int32   `json:"diameter,omitempty"`
	Treewidth      *int32   `json:"treewidth,omitempty"`
	Planar         *bool    `json:"planar,omitempty"`
	Bipartite      *bool    `json:"bipartite,omitempty"`
	Tags           []string `json:"tags,omitempty"`

	Overlay *overlayResult `json:"overlay,omitempty"`
}

type overlayResult struct {
	SID             int64    `json:"sid"`
	Run             string   `json:"run"`
	Status          string   `json:"status"`
	Score           *int32   `json:"score,omitempty"`
	SecondsComputed *float64 `json:"seconds_computed,omitempty"`
	SolutionHash    string   `json:"solution_hash,omitempty"`
}

// tagNameIndex loads every tag once so a result row's comma-joined
// tag ids can be translated to names without an N+1 query per row.
func (h *Handlers) tagNameIndex(ctx context.Context) (map[string]string, error) {
	rows, err := h.db.Query(ctx, `SELECT tid, name FROM tag`)
	if err != nil {
		return nil, fmt.Errorf("load tag names: %w", err)
	}
	defer rows.Close()

	idx := make(map[string]string)
	for rows.Next() {
		var tid int64
		var name string
		if err := rows.Scan(&tid, &name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		idx[strconv.FormatInt(tid, 10)] = name
	}
	return idx, nil
}

// InstancesList serves the paginated/filtered listing (wire-surface
// shape 1).
func (h *Handlers) InstancesList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r, h.ingestCfg.DefaultPageLimit, h.ingestCfg.MaxPageLimit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var tagIdx map[string]string
	if f.IncludeTagList {
		tagIdx, err = h.tagNameIndex(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
	}

	listSQL, listArgs := query.ListQuery(f)
	rows, err := h.db.Query(r.Context(), listSQL, listArgs...)
	if err != nil {
		respond.Error(w, fmt.Errorf("list instances: %w", err))
		return
	}
	defer rows.Close()

	hasOverlay := f.Overlay != nil
	results := make([]instanceResult, 0)
	for rows.Next() {
		ir, tagStr, overlay, err := query.ScanInstance(rows, f.IncludeTagList, hasOverlay)
		if err != nil {
			respond.Error(w, fmt.Errorf("scan instance: %w", err))
			return
		}
		results = append(results, toInstanceResult(ir, tagStr, overlay, tagIdx))
	}

	countSQL, countArgs := query.CountQuery(f)
	var total int64
	if err := h.db.QueryRow(r.Context(), countSQL, countArgs...).Scan(&total); err != nil {
		respond.Error(w, fmt.Errorf("count instances: %w", err))
		return
	}

	resp := map[string]any{
		"status":        "success",
		"options":       f,
		"total_matches": total,
		"results":       results,
	}

	if f.IncludeMaxValues {
		var maxN, maxM int32
		var maxScore *int32
		if err := h.db.QueryRow(r.Context(), `SELECT MAX(n), MAX(m), MAX(best_score) FROM instance`).Scan(&maxN, &maxM, &maxScore); err != nil {
			respond.Error(w, fmt.Errorf("max values: %w", err))
			return
		}
		resp["max_values"] = map[string]any{"nodes": maxN, "edges": maxM, "best_score": maxScore}
	}

	respond.OK(w, resp)
}

func toInstanceResult(ir *query.InstanceRow, tagStr *string, overlay *query.OverlayRow, tagIdx map[string]string) instanceResult {
	res := instanceResult{
		IID: ir.IID, Nodes: ir.N, Edges: ir.M, Name: ir.Name, Description: ir.Description,
		SubmittedBy: ir.SubmittedBy, BestScore: ir.BestScore, MinDeg: ir.MinDeg, MaxDeg: ir.MaxDeg,
		NumCCs: ir.NumCCs, NodesLargestCC: ir.NodesLargestCC, Diameter: ir.Diameter,
		Treewidth: ir.Treewidth, Planar: ir.Planar, Bipartite: ir.Bipartite,
	}

	if tagStr != nil && *tagStr != "" {
		for _, id := range strings.Split(*tagStr, ",") {
			if name, ok := tagIdx[id]; ok {
				res.Tags = append(res.Tags, name)
			}
		}
	}

	if overlay != nil {
		res.Overlay = &overlayResult{
			SID: overlay.SID, Run: overlay.SRUUID.String(), Status: overlay.ErrorCode,
			Score: overlay.Score, SecondsComputed: overlay.SecondsComputed,
		}
		if overlay.SolutionHash != nil {
			res.Overlay.SolutionHash = hex.EncodeToString(overlay.SolutionHash)
		}
	}

	return res
}

// InstanceList serves the same filter as InstancesList but returns a
// plain-text newline-joined iid list (wire-surface shape 3), for
// clients that just want the id set.
func (h *Handlers) InstanceList(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r, h.ingestCfg.DefaultPageLimit, h.ingestCfg.MaxPageLimit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	idSQL, idArgs := query.IDListQuery(f)
	rows, err := h.db.Query(r.Context(), idSQL, idArgs...)
	if err != nil {
		respond.Error(w, fmt.Errorf("list instance ids: %w", err))
		return
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var iid int64
		if err := rows.Scan(&iid); err != nil {
			respond.Error(w, fmt.Errorf("scan instance id: %w", err))
			return
		}
		fmt.Fprintf(&b, "%d\n", iid)
	}

	respond.Text(w, b.String())
}

// InstanceDownload streams an instance's canonical PACE bytes with a
// leading `c {json}` comment header carrying its metadata.
func (h *Handlers) InstanceDownload(w http.ResponseWriter, r *http.Request) {
	iid, err := pathInt64(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var name, description, submittedBy string
	var data []byte
	err = h.db.QueryRow(r.Context(), `
		SELECT i.name, i.description, i.submitted_by, d.data
		FROM instance i JOIN instance_data d ON d.did = i.data_did
		WHERE i.iid = $1`, iid).Scan(&name, &description, &submittedBy, &data)
	if err != nil {
		if err == pgx.ErrNoRows {
			respond.Error(w, apperror.ErrNotFound)
			return
		}
		respond.Error(w, fmt.Errorf("fetch instance data: %w", err))
		return
	}

	header := fmt.Sprintf("c {\"iid\":%d,\"name\":%q,\"description\":%q,\"submitted_by\":%q}\n", iid, name, description, submittedBy)

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%d.gr"`, iid))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(header))
	_, _ = w.Write(data)
}

// SolutionsDownload fetches a stored valid solution by its content
// hash, rendered as PACE solution text or JSON depending on the
// `format` query param.
func (h *Handlers) SolutionsDownload(w http.ResponseWriter, r *http.Request) {
	hashHex := r.PathValue("hash")
	hash, err := hex.DecodeString(hashHex)
	if err != nil {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "hash must be hex-encoded", "hash"))
		return
	}

	var score int32
	var data []byte
	err = h.db.QueryRow(r.Context(), `
		SELECT s.score, sd.data FROM solution s
		JOIN solution_data sd ON sd.hash = s.solution_hash
		WHERE s.solution_hash = $1 AND s.score IS NOT NULL
		LIMIT 1`, hash).Scan(&score, &data)
	if err != nil {
		if err == pgx.ErrNoRows {
			respond.Error(w, apperror.ErrNotFound)
			return
		}
		respond.Error(w, fmt.Errorf("fetch solution: %w", err))
		return
	}

	nodes, err := ingest.DecodeSolutionData(data)
	if err != nil {
		respond.Error(w, apperror.Wrap(err, apperror.CodeIntegrity, "stored solution is not valid"))
		return
	}

	if r.URL.Query().Get("format") == "json" {
		oneIndexed := make([]uint32, len(nodes))
		for i, n := range nodes {
			oneIndexed[i] = n + 1
		}
		respond.OK(w, map[string]any{"status": "ok", "score": score, "solution": oneIndexed})
		return
	}

	var buf strings.Builder
	if err := pace.WriteSolution(&buf, nodes); err != nil {
		respond.Error(w, fmt.Errorf("write solution text: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sol_%s.sol"`, hashHex))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(buf.String()))
}

// SolutionHashes lists every valid-solution content hash a solver has
// ever produced, across all of its runs.
func (h *Handlers) SolutionHashes(w http.ResponseWriter, r *http.Request) {
	solverUUID, err := uuid.Parse(r.PathValue("solver_uuid"))
	if err != nil {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "solver_uuid"))
		return
	}

	rows, err := h.db.Query(r.Context(), `
		SELECT DISTINCT s.solution_hash FROM solution s
		JOIN solver_run sr ON sr.run_uuid = s.sr_uuid
		WHERE s.solution_hash IS NOT NULL AND sr.solver_uuid = $1`, solverUUID)
	if err != nil {
		respond.Error(w, fmt.Errorf("list solution hashes: %w", err))
		return
	}
	defer rows.Close()

	hashes := make([]string, 0)
	for rows.Next() {
		var h []byte
		if err := rows.Scan(&h); err != nil {
			respond.Error(w, fmt.Errorf("scan solution hash: %w", err))
			return
		}
		hashes = append(hashes, hex.EncodeToString(h))
	}

	respond.OK(w, map[string]any{"status": "ok", "hashes": hashes})
}

type runOutcomeCounts struct {
	NumValid      int64
	NumOptimal    int64
	NumSuboptimal int64
	NumInfeasible int64
	NumError      int64
	NumTimeout    int64
}

func loadRunOutcomeCounts(ctx context.Context, db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, runUUID uuid.UUID) (*runOutcomeCounts, error) {
	rows, err := db.Query(ctx, `SELECT error_code, COUNT(*) FROM solution WHERE sr_uuid = $1 GROUP BY error_code`, runUUID)
	if err != nil {
		return nil, fmt.Errorf("group run outcomes: %w", err)
	}
	defer rows.Close()

	counts := &runOutcomeCounts{}
	for rows.Next() {
		var code string
		var n int64
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan run outcome: %w", err)
		}
		switch ingest.ResultKind(code) {
		case ingest.ResultValid, ingest.ResultValidCached:
			counts.NumValid += n
		case ingest.ResultInfeasible:
			counts.NumInfeasible += n
		case ingest.ResultTimeout:
			counts.NumTimeout += n
		default:
			counts.NumError += n
		}
	}

	err = db.QueryRow(ctx, `
		SELECT COUNT(*) FROM solution s JOIN instance i ON i.iid = s.instance_iid
		WHERE s.sr_uuid = $1 AND s.score IS NOT NULL AND s.score = i.best_score`, runUUID).Scan(&counts.NumOptimal)
	if err != nil {
		return nil, fmt.Errorf("count optimal runs: %w", err)
	}
	counts.NumSuboptimal = counts.NumValid - counts.NumOptimal

	return counts, nil
}

type runResponse struct {
	SRID          int64     `json:"sr_id"`
	RunUUID       uuid.UUID `json:"run_uuid"`
	SolverUUID    uuid.UUID `json:"solver_uuid"`
	Hide          bool      `json:"hide"`
	Name          string    `json:"name,omitempty"`
	Description   string    `json:"description,omitempty"`
	NumScheduled  int       `json:"num_scheduled"`
	NumOptimal    int64     `json:"num_optimal"`
	NumSuboptimal int64     `json:"num_suboptimal"`
	NumInfeasible int64     `json:"num_infeasible"`
	NumError      int64     `json:"num_error"`
	NumTimeout    int64     `json:"num_timeout"`
}

// SolverRunList reports per-run outcome roll-ups for a solver.
func (h *Handlers) SolverRunList(w http.ResponseWriter, r *http.Request) {
	solverUUID, err := uuid.Parse(r.URL.Query().Get("solver"))
	if err != nil {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "solver"))
		return
	}
	includeHidden := r.URL.Query().Get("include_hidden") == "true"

	where := "WHERE solver_uuid = $1"
	if !includeHidden {
		where += " AND hide = false"
	}
	rows, err := h.db.Query(r.Context(), fmt.Sprintf(`
		SELECT run_uuid, solver_uuid, hide, name, description, num_scheduled
		FROM solver_run %s ORDER BY created_at DESC`, where), solverUUID)
	if err != nil {
		respond.Error(w, fmt.Errorf("list solver runs: %w", err))
		return
	}

	type rawRun struct {
		RunUUID      uuid.UUID
		SolverUUID   uuid.UUID
		Hide         bool
		Name         string
		Description  string
		NumScheduled int
	}
	var raws []rawRun
	for rows.Next() {
		var rr rawRun
		if err := rows.Scan(&rr.RunUUID, &rr.SolverUUID, &rr.Hide, &rr.Name, &rr.Description, &rr.NumScheduled); err != nil {
			rows.Close()
			respond.Error(w, fmt.Errorf("scan solver run: %w", err))
			return
		}
		raws = append(raws, rr)
	}
	rows.Close()

	results := make([]runResponse, 0, len(raws))
	for i, rr := range raws {
		counts, err := loadRunOutcomeCounts(r.Context(), h.db, rr.RunUUID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		results = append(results, runResponse{
			SRID: int64(i + 1), RunUUID: rr.RunUUID, SolverUUID: rr.SolverUUID, Hide: rr.Hide,
			Name: rr.Name, Description: rr.Description, NumScheduled: rr.NumScheduled,
			NumOptimal: counts.NumOptimal, NumSuboptimal: counts.NumSuboptimal,
			NumInfeasible: counts.NumInfeasible, NumError: counts.NumError, NumTimeout: counts.NumTimeout,
		})
	}

	respond.OK(w, map[string]any{"status": "ok", "solver": solverUUID, "runs": results})
}

const performanceTargetPoints = 1000

type runPerformance struct {
	Run             uuid.UUID `json:"run"`
	Score           []float64 `json:"score"`
	SecondsComputed []float64 `json:"seconds_computed"`
}

// SolverRunPerformance returns, for each requested run, its
// normalized scores and its seconds computed as two series, each
// sorted on its own (the pairing of a score with its time is not
// kept), used to plot a solver's performance. Series longer than 2x the target
// point count are downsampled by a fixed stride.
func (h *Handlers) SolverRunPerformance(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	solverUUID, err := uuid.Parse(v.Get("solver"))
	if err != nil {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "solver"))
		return
	}

	runStrs := v["run"]
	if len(runStrs) == 0 {
		respond.Error(w, apperror.New(apperror.CodeBadInput, "at least one run is required"))
		return
	}

	var instancesOf *uuid.UUID
	if s := v.Get("instances_of"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "instances_of"))
			return
		}
		instancesOf = &id
	}

	runs := make([]runPerformance, 0, len(runStrs))
	for _, rs := range runStrs {
		runUUID, err := uuid.Parse(rs)
		if err != nil {
			respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "run"))
			return
		}
		perf, err := h.runPerformance(r.Context(), runUUID, instancesOf)
		if err != nil {
			respond.Error(w, err)
			return
		}
		runs = append(runs, *perf)
	}

	respond.OK(w, map[string]any{"status": "ok", "solver": solverUUID, "runs": runs})
}

func (h *Handlers) runPerformance(ctx context.Context, runUUID uuid.UUID, instancesOf *uuid.UUID) (*runPerformance, error) {
	sqlStr := `
		SELECT CAST(s.score AS FLOAT8) / CAST(i.best_score AS FLOAT8), s.seconds_computed
		FROM solution s JOIN instance i ON i.iid = s.instance_iid
		WHERE s.sr_uuid = $1 AND s.score IS NOT NULL AND s.seconds_computed IS NOT NULL AND i.best_score IS NOT NULL`
	args := []any{runUUID}
	if instancesOf != nil {
		sqlStr += ` AND i.iid IN (SELECT instance_iid FROM solution WHERE sr_uuid = $2)`
		args = append(args, *instancesOf)
	}

	rows, err := h.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("load run performance: %w", err)
	}
	defer rows.Close()

	var scores, seconds []float64
	for rows.Next() {
		var score, secs float64
		if err := rows.Scan(&score, &secs); err != nil {
			return nil, fmt.Errorf("scan run performance: %w", err)
		}
		scores = append(scores, score)
		seconds = append(seconds, secs)
	}

	sort.Float64s(scores)
	sort.Float64s(seconds)

	if len(seconds) > 2*performanceTargetPoints {
		step := len(seconds) / performanceTargetPoints
		scores = downsample(scores, step)
		seconds = downsample(seconds, step)
	}

	return &runPerformance{Run: runUUID, Score: scores, SecondsComputed: seconds}, nil
}

func downsample(xs []float64, step int) []float64 {
	out := make([]float64, 0, len(xs)/step+1)
	for i := 0; i < len(xs); i += step {
		out = append(out, xs[i])
	}
	return out
}

// InstanceFetchUnsolved returns the single smallest instance with no
// recorded Solution yet, letting a solver bootstrap its work queue
// without a separate scheduler.
func (h *Handlers) InstanceFetchUnsolved(w http.ResponseWriter, r *http.Request) {
	var iid int64
	var name, description, submittedBy string
	var n, m int32
	var data []byte
	err := h.db.QueryRow(r.Context(), `
		SELECT i.iid, i.name, i.description, i.submitted_by, i.n, i.m, d.data
		FROM instance i
		JOIN instance_data d ON d.did = i.data_did
		WHERE NOT EXISTS (SELECT 1 FROM solution s WHERE s.instance_iid = i.iid)
		ORDER BY i.n ASC
		LIMIT 1`).Scan(&iid, &name, &description, &submittedBy, &n, &m, &data)
	if err != nil {
		if err == pgx.ErrNoRows {
			respond.OK(w, map[string]any{"status": "empty"})
			return
		}
		respond.Error(w, fmt.Errorf("fetch unsolved instance: %w", err))
		return
	}

	respond.OK(w, map[string]any{
		"status": "success",
		"instance": map[string]any{
			"iid": iid, "nodes": n, "edges": m, "name": name,
			"description": description, "submitted_by": submittedBy,
		},
		"data": string(data),
	})
}

type solutionRun struct {
	CreatedAt       time.Time `json:"created_at"`
	Run             uuid.UUID `json:"run"`
	RunName         string    `json:"run_name,omitempty"`
	RunDescription  string    `json:"run_description,omitempty"`
	SecondsComputed *float64  `json:"seconds_computed,omitempty"`
	Score           *int32    `json:"score,omitempty"`
	Status          string    `json:"status"`
}

// InstanceSolutions reports the global score histogram for an
// instance plus, when a solver is given, every one of its runs on
// that instance.
func (h *Handlers) InstanceSolutions(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	iid, err := strconv.ParseInt(v.Get("iid"), 10, 64)
	if err != nil {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not an integer", "iid"))
		return
	}

	rows, err := h.db.Query(r.Context(), `
		SELECT score, COUNT(*) FROM solution WHERE instance_iid = $1 AND score IS NOT NULL GROUP BY score ORDER BY score`, iid)
	if err != nil {
		respond.Error(w, fmt.Errorf("score histogram: %w", err))
		return
	}
	histogram := make(map[string]int64)
	for rows.Next() {
		var score int32
		var n int64
		if err := rows.Scan(&score, &n); err != nil {
			rows.Close()
			respond.Error(w, fmt.Errorf("scan histogram bucket: %w", err))
			return
		}
		histogram[strconv.Itoa(int(score))] = n
	}
	rows.Close()

	resp := map[string]any{
		"status":                 "ok",
		"filters":                map[string]any{"iid": iid, "solver": v.Get("solver")},
		"global_score_histogram": histogram,
	}

	if solverStr := v.Get("solver"); solverStr != "" {
		solverUUID, err := uuid.Parse(solverStr)
		if err != nil {
			respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "solver"))
			return
		}

		solRows, err := h.db.Query(r.Context(), `
			SELECT s.created_at, s.sr_uuid, sr.name, sr.description, s.seconds_computed, s.score, s.error_code
			FROM solution s JOIN solver_run sr ON sr.run_uuid = s.sr_uuid
			WHERE s.instance_iid = $1 AND sr.solver_uuid = $2
			ORDER BY s.created_at DESC`, iid, solverUUID)
		if err != nil {
			respond.Error(w, fmt.Errorf("solver solutions: %w", err))
			return
		}
		defer solRows.Close()

		solverSolutions := make([]solutionRun, 0)
		for solRows.Next() {
			var sr solutionRun
			if err := solRows.Scan(&sr.CreatedAt, &sr.Run, &sr.RunName, &sr.RunDescription, &sr.SecondsComputed, &sr.Score, &sr.Status); err != nil {
				respond.Error(w, fmt.Errorf("scan solver solution: %w", err))
				return
			}
			solverSolutions = append(solverSolutions, sr)
		}
		resp["solver_solutions"] = solverSolutions
	}

	respond.OK(w, resp)
}
