package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"domsetbench/internal/apperror"
	"domsetbench/internal/digest"
	"domsetbench/internal/pace"
	"domsetbench/internal/storage"
	"domsetbench/internal/verify"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ResultKind is the tagged-union discriminant of a solution upload
// (spec.md §4.6.3).
type ResultKind string

const (
	ResultValid            ResultKind = "Valid"
	ResultValidCached      ResultKind = "ValidCached"
	ResultInfeasible       ResultKind = "Infeasible"
	ResultSyntaxError      ResultKind = "SyntaxError"
	ResultTimeout          ResultKind = "Timeout"
	ResultNonCompetitive   ResultKind = "NonCompetitive"
	ResultIncompleteOutput ResultKind = "IncompleteOutput"
)

func (k ResultKind) isNegative() bool {
	switch k {
	case ResultInfeasible, ResultSyntaxError, ResultTimeout, ResultNonCompetitive, ResultIncompleteOutput:
		return true
	}
	return false
}

// SolutionUploadRequest mirrors POST /api/solutions/new.
type SolutionUploadRequest struct {
	InstanceID      int64
	RunUUID         uuid.UUID
	SolverUUID      uuid.UUID
	SecondsComputed *float64
	Kind            ResultKind
	NodeList        []uint32 // ResultValid
	CachedHash      []byte   // ResultValidCached
	DryRun          bool
}

// SolutionUploadResult is returned even when DryRun rolls the
// transaction back, so a client can confirm what would have been
// stored.
type SolutionUploadResult struct {
	SolutionHash []byte
	Score        *int
	Committed    bool
}

// UploadSolution inserts (or upserts) a SolverRun and a Solution row
// for it, branching on the result kind. A Valid/ValidCached result
// maintains Instance.best_score via a single conditional UPDATE.
func (s *Service) UploadSolution(ctx context.Context, req SolutionUploadRequest) (*SolutionUploadResult, error) {
	runFn := func(tx pgx.Tx) (*SolutionUploadResult, error) {
		if err := upsertSolverRun(ctx, tx, req.RunUUID, req.SolverUUID); err != nil {
			return nil, err
		}

		var result *SolutionUploadResult
		var err error

		switch {
		case req.Kind == ResultValid:
			result, err = s.uploadValidSolution(ctx, tx, req)
		case req.Kind == ResultValidCached:
			result, err = s.uploadCachedSolution(ctx, tx, req)
		case req.Kind.isNegative():
			result, err = uploadNegativeSolution(ctx, tx, req)
		default:
			err = apperror.New(apperror.CodeBadInput, fmt.Sprintf("unknown result kind %q", req.Kind))
		}
		if err != nil {
			return nil, err
		}

		result.Committed = !req.DryRun
		return result, nil
	}

	if req.DryRun {
		result, err := storage.WithTransactionRollback(ctx, s.db, runFn)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.RecordSolutionUploaded(string(req.Kind))
		}
		return result, nil
	}

	result, err := storage.WithTransactionResult(ctx, s.db, runFn)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSolutionUploaded(string(req.Kind))
	}
	return result, nil
}

func upsertSolverRun(ctx context.Context, tx pgx.Tx, runUUID, solverUUID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO solver_run (run_uuid, solver_uuid, num_scheduled)
		VALUES ($1, $2, 1)
		ON CONFLICT (run_uuid) DO UPDATE SET num_scheduled = solver_run.num_scheduled + 1
	`, runUUID, solverUUID)
	if err != nil {
		return fmt.Errorf("upsert solver_run: %w", err)
	}
	return nil
}

func (s *Service) uploadValidSolution(ctx context.Context, tx pgx.Tx, req SolutionUploadRequest) (*SolutionUploadResult, error) {
	var n uint32
	var dataDid int64
	if err := tx.QueryRow(ctx, `SELECT n, data_did FROM instance WHERE iid = $1`, req.InstanceID).Scan(&n, &dataDid); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("select instance: %w", err)
	}

	var canonicalData []byte
	if err := tx.QueryRow(ctx, `SELECT data FROM instance_data WHERE did = $1`, dataDid).Scan(&canonicalData); err != nil {
		return nil, fmt.Errorf("select instance_data: %w", err)
	}

	reader, err := pace.NewReader(bytes.NewReader(canonicalData))
	if err != nil {
		return nil, apperror.New(apperror.CodeIntegrity, err.Error())
	}
	edges, err := reader.ReadAll()
	if err != nil {
		return nil, apperror.New(apperror.CodeIntegrity, err.Error())
	}

	ok, err := verify.DominatingSet(n, edges, req.NodeList)
	if err != nil {
		return nil, apperror.New(apperror.CodeBadInput, err.Error())
	}
	if !ok {
		return nil, apperror.ErrInvalidDomSet
	}

	score := len(req.NodeList)
	hash := digest.Solution(req.NodeList)

	payload, err := encodeSolutionData(req.NodeList)
	if err != nil {
		return nil, fmt.Errorf("encode solution data: %w", err)
	}
	if err := storage.PutSolutionData(ctx, tx, hash[:], payload); err != nil {
		return nil, err
	}

	if err := insertSolutionRow(ctx, tx, req, ResultValid, hash[:], &score); err != nil {
		return nil, err
	}
	if err := maintainBestScore(ctx, tx, req.InstanceID, score); err != nil {
		return nil, err
	}

	return &SolutionUploadResult{SolutionHash: hash[:], Score: &score}, nil
}

func (s *Service) uploadCachedSolution(ctx context.Context, tx pgx.Tx, req SolutionUploadRequest) (*SolutionUploadResult, error) {
	var score int
	err := tx.QueryRow(ctx, `
		SELECT sol.score FROM solution sol
		WHERE sol.solution_hash = $1 AND sol.error_code = 'Valid'
		LIMIT 1
	`, req.CachedHash).Scan(&score)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperror.ErrUnknownHash
		}
		return nil, fmt.Errorf("lookup cached solution: %w", err)
	}

	if err := insertSolutionRow(ctx, tx, req, ResultValid, req.CachedHash, &score); err != nil {
		return nil, err
	}
	if err := maintainBestScore(ctx, tx, req.InstanceID, score); err != nil {
		return nil, err
	}

	return &SolutionUploadResult{SolutionHash: req.CachedHash, Score: &score}, nil
}

func uploadNegativeSolution(ctx context.Context, tx pgx.Tx, req SolutionUploadRequest) (*SolutionUploadResult, error) {
	if err := insertSolutionRow(ctx, tx, req, req.Kind, nil, nil); err != nil {
		return nil, err
	}
	return &SolutionUploadResult{}, nil
}

func insertSolutionRow(ctx context.Context, tx pgx.Tx, req SolutionUploadRequest, kind ResultKind, hash []byte, score *int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO solution (instance_iid, sr_uuid, error_code, score, seconds_computed, solution_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, req.InstanceID, req.RunUUID, string(kind), score, req.SecondsComputed, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewWithField(apperror.CodeConflict, "duplicate result for (run, instance) pair", "sr_uuid")
		}
		return fmt.Errorf("insert solution: %w", err)
	}
	return nil
}

// maintainBestScore updates Instance.best_score in a single
// conditional UPDATE; no read-modify-write round trip.
func maintainBestScore(ctx context.Context, tx pgx.Tx, instanceID int64, score int) error {
	_, err := tx.Exec(ctx, `
		UPDATE instance SET best_score = $1
		WHERE iid = $2 AND (best_score IS NULL OR best_score > $1)
	`, score, instanceID)
	if err != nil {
		return fmt.Errorf("maintain best_score: %w", err)
	}
	return nil
}

func encodeSolutionData(nodes []uint32) ([]byte, error) {
	oneIndexed := make([]uint32, len(nodes))
	for i, n := range nodes {
		oneIndexed[i] = n + 1
	}
	return json.Marshal(oneIndexed)
}

// DecodeSolutionData reverses encodeSolutionData for consumers that
// need the zero-indexed node list back out of a stored payload, such
// as the solution-download handler.
func DecodeSolutionData(data []byte) ([]uint32, error) {
	var oneIndexed []uint32
	if err := json.Unmarshal(data, &oneIndexed); err != nil {
		return nil, err
	}
	zeroIndexed := make([]uint32, len(oneIndexed))
	for i, n := range oneIndexed {
		zeroIndexed[i] = n - 1
	}
	return zeroIndexed, nil
}
