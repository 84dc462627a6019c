package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InstanceRow mirrors the column order of `SELECT i.*` against the
// instance table's migration-defined layout (spec.md §3's Instance
// entity).
type InstanceRow struct {
	IID            int64
	DataDID        int64
	Name           string
	Description    string
	SubmittedBy    string
	CreatedAt      time.Time
	N              int32
	M              int32
	BestScore      *int32
	MinDeg         *int32
	MaxDeg         *int32
	NumCCs         *int32
	NodesLargestCC *int32
	Diameter       *int32
	Treewidth      *int32
	Planar         *bool
	Bipartite      *bool
}

// OverlayRow mirrors the Solution columns appended to a listing query
// when a solver overlay is active.
type OverlayRow struct {
	SID             int64
	SRUUID          uuid.UUID
	ErrorCode       string
	Score           *int32
	SecondsComputed *float64
	SolutionHash    []byte
}

// ScanInstance reads one row of ListQuery's output (IDListQuery rows
// carry only the iid and are scanned directly). tags
// and overlay are populated only when the corresponding flag was set
// on the Filter that produced the query.
func ScanInstance(rows pgx.Rows, includeTags, includeOverlay bool) (*InstanceRow, *string, *OverlayRow, error) {
	row := &InstanceRow{}
	dests := []any{
		&row.IID, &row.DataDID, &row.Name, &row.Description, &row.SubmittedBy,
		&row.CreatedAt, &row.N, &row.M, &row.BestScore, &row.MinDeg, &row.MaxDeg,
		&row.NumCCs, &row.NodesLargestCC, &row.Diameter, &row.Treewidth,
		&row.Planar, &row.Bipartite,
	}

	var tags *string
	if includeTags {
		dests = append(dests, &tags)
	}

	var overlay *OverlayRow
	if includeOverlay {
		overlay = &OverlayRow{}
		dests = append(dests, &overlay.SID, &overlay.SRUUID, &overlay.ErrorCode,
			&overlay.Score, &overlay.SecondsComputed, &overlay.SolutionHash)
	}

	if err := rows.Scan(dests...); err != nil {
		return nil, nil, nil, err
	}
	return row, tags, overlay, nil
}
