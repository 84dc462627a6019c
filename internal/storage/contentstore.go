package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PutInstanceData inserts canonical PACE bytes under hash if absent,
// and returns the did either way ("insert if absent").
func PutInstanceData(ctx context.Context, tx pgx.Tx, hash []byte, data []byte) (int64, error) {
	var did int64
	err := tx.QueryRow(ctx, `
		INSERT INTO instance_data (hash, data) VALUES ($1, $2)
		ON CONFLICT (hash) DO UPDATE SET hash = EXCLUDED.hash
		RETURNING did
	`, hash, data).Scan(&did)
	if err != nil {
		return 0, fmt.Errorf("storage: put_instance_data: %w", err)
	}
	return did, nil
}

// PutSolutionData inserts the canonical node-set encoding under hash
// if absent; idempotent under concurrent writers racing on the same
// content address.
func PutSolutionData(ctx context.Context, tx pgx.Tx, hash []byte, data []byte) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO solution_data (hash, data) VALUES ($1, $2)
		ON CONFLICT (hash) DO NOTHING
	`, hash, data)
	if err != nil {
		return fmt.Errorf("storage: put_solution_data: %w", err)
	}
	return nil
}

// GCInstanceDataIfOrphan deletes the InstanceData row at did iff no
// Instance row references it anymore. Returns whether it was deleted.
func GCInstanceDataIfOrphan(ctx context.Context, tx pgx.Tx, did int64) (bool, error) {
	var liveRefs int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM instance WHERE data_did = $1`, did).Scan(&liveRefs); err != nil {
		return false, fmt.Errorf("storage: count instance refs: %w", err)
	}
	if liveRefs > 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM instance_data WHERE did = $1`, did); err != nil {
		return false, fmt.Errorf("storage: gc_instance_data_if_orphan: %w", err)
	}
	return true, nil
}

// GCSolutionDataIfOrphan deletes the SolutionData row at hash iff no
// Solution row references it anymore. Returns whether it was deleted.
func GCSolutionDataIfOrphan(ctx context.Context, tx pgx.Tx, hash []byte) (bool, error) {
	var liveRefs int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM solution WHERE solution_hash = $1`, hash).Scan(&liveRefs); err != nil {
		return false, fmt.Errorf("storage: count solution refs: %w", err)
	}
	if liveRefs > 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM solution_data WHERE hash = $1`, hash); err != nil {
		return false, fmt.Errorf("storage: gc_solution_data_if_orphan: %w", err)
	}
	return true, nil
}
