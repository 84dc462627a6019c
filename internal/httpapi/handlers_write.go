package httpapi

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"domsetbench/internal/apperror"
	"domsetbench/internal/httpapi/respond"
	"domsetbench/internal/ingest"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.New(apperror.CodeBadInput, "malformed JSON body")
	}
	return nil
}

type tagCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       string `json:"style"`
}

// TagsNew creates a new tag.
func (h *Handlers) TagsNew(w http.ResponseWriter, r *http.Request) {
	var req tagCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	if req.Name == "" {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "tag name is required", "name"))
		return
	}
	if req.Name[0] >= '0' && req.Name[0] <= '9' {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "tag name cannot start with a digit", "name"))
		return
	}

	var tid int64
	err := h.db.QueryRow(r.Context(), `
		INSERT INTO tag (name, description, style) VALUES ($1, $2, $3) RETURNING tid`,
		req.Name, req.Description, req.Style).Scan(&tid)
	if err != nil {
		if isUniqueViolation(err) {
			respond.Error(w, apperror.ErrDuplicateTag)
			return
		}
		respond.Error(w, fmt.Errorf("insert tag: %w", err))
		return
	}

	respond.OK(w, map[string]any{"status": "success", "tag_id": tid})
}

type instanceUploadRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	SubmittedBy  string   `json:"submitted_by"`
	Tags         []string `json:"tags"`
	IgnoreHeader bool     `json:"ignore_header"`
	Data         string   `json:"data"`
}

// InstancesNew canonicalizes and stores a newly posted PACE instance.
func (h *Handlers) InstancesNew(w http.ResponseWriter, r *http.Request) {
	var req instanceUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	if req.Data == "" {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "data is required", "data"))
		return
	}

	result, err := h.ingest.UploadInstance(r.Context(), ingest.InstanceUploadRequest{
		Name: req.Name, Description: req.Description, SubmittedBy: req.SubmittedBy,
		Tags: req.Tags, IgnoreHeader: req.IgnoreHeader, Data: req.Data,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, map[string]any{
		"status": "success", "instance_id": result.InstanceID,
		"nodes": result.NumNodes, "edges": result.NumEdges, "hash": hex.EncodeToString(result.Hash[:]),
	})
}

type instanceUpdateRequest struct {
	IID            int64   `json:"iid"`
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	MinDeg         *int    `json:"min_deg"`
	MaxDeg         *int    `json:"max_deg"`
	NumCCs         *int    `json:"num_ccs"`
	NodesLargestCC *int    `json:"nodes_largest_cc"`
	Diameter       *int    `json:"diameter"`
	Treewidth      *int    `json:"tree_width"`
	Planar         *bool   `json:"planar"`
}

// InstancesUpdate applies a partial metadata update to an instance.
func (h *Handlers) InstancesUpdate(w http.ResponseWriter, r *http.Request) {
	var req instanceUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	err := h.ingest.UpdateInstanceMeta(r.Context(), req.IID, ingest.InstanceMetaUpdate{
		Name: req.Name, Description: req.Description, MinDeg: req.MinDeg, MaxDeg: req.MaxDeg,
		NumCCs: req.NumCCs, NodesLargestCC: req.NodesLargestCC, Diameter: req.Diameter,
		Treewidth: req.Treewidth, Planar: req.Planar,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, map[string]any{"status": "success"})
}

// InstancesDelete removes an instance and GCs its orphaned content.
func (h *Handlers) InstancesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.ingest.DeleteInstance(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, map[string]any{"status": "ok", "id": id})
}

// solverResult is the tagged-union wire shape of a solution upload's
// outcome, mirroring the `result` field's `status` discriminant.
type solverResult struct {
	Status string   `json:"status"`
	Data   []uint32 `json:"data,omitempty"`   // valid
	Hash   string   `json:"hash,omitempty"`   // validcached
}

type solutionUploadRequest struct {
	InstanceID      int64        `json:"instance_id"`
	RunUUID         uuid.UUID    `json:"run_uuid"`
	SolverUUID      uuid.UUID    `json:"solver_uuid"`
	SecondsComputed *float64     `json:"seconds_computed"`
	Result          solverResult `json:"result"`
	DryRun          bool         `json:"dry_run"`
}

var resultKindByStatus = map[string]ingest.ResultKind{
	"valid":            ingest.ResultValid,
	"validcached":      ingest.ResultValidCached,
	"infeasible":       ingest.ResultInfeasible,
	"syntaxerror":      ingest.ResultSyntaxError,
	"timeout":          ingest.ResultTimeout,
	"noncompetitive":   ingest.ResultNonCompetitive,
	"incompleteoutput": ingest.ResultIncompleteOutput,
}

// SolutionsNew records a solver's result for an (instance, run) pair.
// The posted node list is 1-indexed on the wire and converted to the
// 0-indexed representation internal packages use uniformly.
func (h *Handlers) SolutionsNew(w http.ResponseWriter, r *http.Request) {
	var req solutionUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	kind, ok := resultKindByStatus[req.Result.Status]
	if !ok {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "unrecognized result status", "result.status"))
		return
	}

	ingestReq := ingest.SolutionUploadRequest{
		InstanceID: req.InstanceID, RunUUID: req.RunUUID, SolverUUID: req.SolverUUID,
		SecondsComputed: req.SecondsComputed, Kind: kind, DryRun: req.DryRun,
	}

	if kind == ingest.ResultValid {
		zeroIndexed := make([]uint32, len(req.Result.Data))
		for i, n := range req.Result.Data {
			if n == 0 {
				respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "node ids are 1-indexed", "result.data"))
				return
			}
			zeroIndexed[i] = n - 1
		}
		ingestReq.NodeList = zeroIndexed
	}

	if kind == ingest.ResultValidCached {
		hash, err := hex.DecodeString(req.Result.Hash)
		if err != nil {
			respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "hash must be hex-encoded", "result.hash"))
			return
		}
		ingestReq.CachedHash = hash
	}

	result, err := h.ingest.UploadSolution(r.Context(), ingestReq)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := map[string]any{"status": "success", "committed": result.Committed}
	if result.SolutionHash != nil {
		resp["solution_hash"] = hex.EncodeToString(result.SolutionHash)
	}
	if result.Score != nil {
		resp["score"] = *result.Score
	}
	respond.OK(w, resp)
}

type solverRunAnnotateRequest struct {
	RunUUID     uuid.UUID `json:"run_uuid"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Hide        *bool     `json:"hide"`
}

// SolverRunAnnotate lets an admin set a run's display name,
// description, or hidden flag.
func (h *Handlers) SolverRunAnnotate(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	runUUID, err := uuid.Parse(v.Get("run_uuid"))
	if err != nil {
		respond.Error(w, apperror.NewWithField(apperror.CodeBadInput, "not a uuid", "run_uuid"))
		return
	}

	setClauses := ""
	args := []any{runUUID}
	add := func(column string, value any) {
		args = append(args, value)
		if setClauses != "" {
			setClauses += ", "
		}
		setClauses += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if name := v.Get("name"); name != "" {
		add("name", name)
	}
	if description := v.Get("description"); description != "" {
		add("description", description)
	}
	if hide := v.Get("hide"); hide != "" {
		add("hide", hide == "true")
	}

	if setClauses == "" {
		respond.Error(w, apperror.ErrEmptyUpdate)
		return
	}

	tag, err := h.db.Exec(r.Context(), fmt.Sprintf("UPDATE solver_run SET %s WHERE run_uuid = $1", setClauses), args...)
	if err != nil {
		respond.Error(w, fmt.Errorf("annotate solver run: %w", err))
		return
	}
	if tag.RowsAffected() == 0 {
		respond.Error(w, apperror.ErrNotFound)
		return
	}

	respond.OK(w, map[string]any{"status": "success"})
}
