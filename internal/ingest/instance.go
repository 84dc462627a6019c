// Package ingest implements the transactional writers that mutate
// Instance/Tag/Solution/SolverRun state: instance upload and delete,
// solution upload, and instance metadata update (spec.md §4.6).
package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"domsetbench/internal/apperror"
	"domsetbench/internal/canon"
	"domsetbench/internal/logger"
	"domsetbench/internal/metrics"
	"domsetbench/internal/storage"
)

// Service wires together the storage layer and ambient concerns for
// every write operation.
type Service struct {
	db      storage.DB
	metrics *metrics.Metrics
}

func NewService(db storage.DB, m *metrics.Metrics) *Service {
	return &Service{db: db, metrics: m}
}

// InstanceUploadRequest mirrors the fields accepted by POST /api/instances/new.
type InstanceUploadRequest struct {
	Name          string
	Description   string
	SubmittedBy   string
	Tags          []string
	IgnoreHeader  bool
	Data          string
}

type InstanceUploadResult struct {
	InstanceID int64
	NumNodes   uint32
	NumEdges   uint32
	Hash       [32]byte
}

// UploadInstance canonicalizes the posted PACE bytes, stores them
// content-addressed, creates an Instance row, and attaches any
// requested tags (spec.md §4.6.1).
func (s *Service) UploadInstance(ctx context.Context, req InstanceUploadRequest) (*InstanceUploadResult, error) {
	result, err := canon.Canonicalize([]byte(req.Data), !req.IgnoreHeader)
	if err != nil {
		return nil, apperror.New(apperror.CodeBadInput, err.Error())
	}

	res, err := storage.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*InstanceUploadResult, error) {
		did, err := storage.PutInstanceData(ctx, tx, result.Hash[:], result.Bytes)
		if err != nil {
			return nil, err
		}

		var instanceID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO instance (data_did, name, description, submitted_by, n, m)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING iid
		`, did, req.Name, req.Description, req.SubmittedBy, result.NumNodes, result.NumEdges).Scan(&instanceID)
		if err != nil {
			return nil, fmt.Errorf("insert instance: %w", err)
		}

		for _, tagName := range req.Tags {
			var tid int64
			err := tx.QueryRow(ctx, `SELECT tid FROM tag WHERE name = $1`, tagName).Scan(&tid)
			if err != nil {
				return nil, apperror.New(apperror.CodeBadInput, fmt.Sprintf("unknown tag %q", tagName))
			}
			if _, err := tx.Exec(ctx, `INSERT INTO instance_tag (instance_iid, tag_tid) VALUES ($1, $2)`, instanceID, tid); err != nil {
				return nil, fmt.Errorf("insert instance_tag: %w", err)
			}
		}

		return &InstanceUploadResult{
			InstanceID: instanceID,
			NumNodes:   result.NumNodes,
			NumEdges:   result.NumEdges,
			Hash:       result.Hash,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordInstanceUploaded(int(res.NumNodes), int(res.NumEdges))
	}
	logger.Log.Info("instance uploaded", "instance_id", res.InstanceID, "n", res.NumNodes, "m", res.NumEdges)

	return res, nil
}

// DeleteInstance removes an Instance and everything that points at
// it, pruning orphaned InstanceData/SolutionData rows. Ordering
// matters: Solutions are deleted before the SolutionData orphan
// check, and the Instance row before the InstanceData orphan check
// (spec.md §4.6.2).
func (s *Service) DeleteInstance(ctx context.Context, instanceID int64) error {
	err := storage.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM instance_tag WHERE instance_iid = $1`, instanceID); err != nil {
			return fmt.Errorf("delete instance_tag: %w", err)
		}

		rows, err := tx.Query(ctx, `SELECT DISTINCT solution_hash FROM solution WHERE instance_iid = $1 AND solution_hash IS NOT NULL`, instanceID)
		if err != nil {
			return fmt.Errorf("select solution hashes: %w", err)
		}
		var hashes [][]byte
		for rows.Next() {
			var h []byte
			if err := rows.Scan(&h); err != nil {
				rows.Close()
				return fmt.Errorf("scan solution hash: %w", err)
			}
			hashes = append(hashes, h)
		}
		rows.Close()

		if _, err := tx.Exec(ctx, `DELETE FROM solution WHERE instance_iid = $1`, instanceID); err != nil {
			return fmt.Errorf("delete solution: %w", err)
		}

		orphanedSolutions := 0
		for _, h := range hashes {
			deleted, err := storage.GCSolutionDataIfOrphan(ctx, tx, h)
			if err != nil {
				return err
			}
			if deleted {
				orphanedSolutions++
			}
		}

		var dataDid int64
		if err := tx.QueryRow(ctx, `SELECT data_did FROM instance WHERE iid = $1`, instanceID).Scan(&dataDid); err != nil {
			if err == pgx.ErrNoRows {
				return apperror.ErrNotFound
			}
			return fmt.Errorf("select instance data_did: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM instance WHERE iid = $1`, instanceID); err != nil {
			return fmt.Errorf("delete instance: %w", err)
		}

		orphanedInstance, err := storage.GCInstanceDataIfOrphan(ctx, tx, dataDid)
		if err != nil {
			return err
		}

		if s.metrics != nil {
			s.metrics.RecordInstanceDeleted()
			if orphanedInstance {
				s.metrics.RecordOrphanInstanceDataGC(1)
			}
			if orphanedSolutions > 0 {
				s.metrics.RecordOrphanSolutionDataGC(orphanedSolutions)
			}
		}

		return nil
	})

	return err
}
