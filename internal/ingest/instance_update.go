package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"domsetbench/internal/apperror"
)

// InstanceMetaUpdate is a partial update; fields left nil are
// untouched. Recognized options per spec.md §4.6.4.
type InstanceMetaUpdate struct {
	Name            *string
	Description     *string
	MinDeg          *int
	MaxDeg          *int
	NumCCs          *int
	NodesLargestCC  *int
	Diameter        *int
	Treewidth       *int
	Planar          *bool
}

// UpdateInstanceMeta applies a partial update to an Instance row,
// enforcing the numeric sanity bounds against its node count.
func (s *Service) UpdateInstanceMeta(ctx context.Context, instanceID int64, upd InstanceMetaUpdate) error {
	if upd.Name == nil && upd.Description == nil && upd.MinDeg == nil && upd.MaxDeg == nil &&
		upd.NumCCs == nil && upd.NodesLargestCC == nil && upd.Diameter == nil &&
		upd.Treewidth == nil && upd.Planar == nil {
		return apperror.ErrEmptyUpdate
	}

	var n int
	if err := s.db.QueryRow(ctx, `SELECT n FROM instance WHERE iid = $1`, instanceID).Scan(&n); err != nil {
		if err == pgx.ErrNoRows {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("select instance n: %w", err)
	}

	if upd.MinDeg != nil && (*upd.MinDeg < 0 || *upd.MinDeg >= n) {
		return apperror.New(apperror.CodeBadInput, "min_deg must be in [0, n)")
	}
	if upd.MaxDeg != nil && (*upd.MaxDeg < 0 || *upd.MaxDeg >= n) {
		return apperror.New(apperror.CodeBadInput, "max_deg must be in [0, n)")
	}
	if upd.MinDeg != nil && upd.MaxDeg != nil && *upd.MinDeg > *upd.MaxDeg {
		return apperror.New(apperror.CodeBadInput, "min_deg must not exceed max_deg")
	}
	if upd.NumCCs != nil && upd.NodesLargestCC != nil && *upd.NumCCs+*upd.NodesLargestCC > n+1 {
		return apperror.New(apperror.CodeBadInput, "num_ccs + nodes_largest_cc must not exceed n + 1")
	}
	if upd.Diameter != nil && (*upd.Diameter < 0 || *upd.Diameter >= n) {
		return apperror.New(apperror.CodeBadInput, "diameter must be in [0, n)")
	}
	if upd.Treewidth != nil && (*upd.Treewidth < 0 || *upd.Treewidth >= n) {
		return apperror.New(apperror.CodeBadInput, "treewidth must be in [0, n)")
	}

	setClauses := make([]string, 0, 8)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.MinDeg != nil {
		add("min_deg", *upd.MinDeg)
	}
	if upd.MaxDeg != nil {
		add("max_deg", *upd.MaxDeg)
	}
	if upd.NumCCs != nil {
		add("num_ccs", *upd.NumCCs)
	}
	if upd.NodesLargestCC != nil {
		add("nodes_largest_cc", *upd.NodesLargestCC)
	}
	if upd.Diameter != nil {
		add("diameter", *upd.Diameter)
	}
	if upd.Treewidth != nil {
		add("treewidth", *upd.Treewidth)
	}
	if upd.Planar != nil {
		add("planar", *upd.Planar)
	}

	args = append(args, instanceID)
	query := fmt.Sprintf("UPDATE instance SET %s WHERE iid = $%d", joinClauses(setClauses), len(args))

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update instance: %w", err)
	}

	return nil
}

func joinClauses(clauses []string) string {
	out := ""
	for i, c := range clauses {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
