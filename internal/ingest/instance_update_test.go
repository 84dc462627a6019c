package ingest

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"domsetbench/internal/apperror"
)

func TestUpdateInstanceMetaRejectsEmptyUpdate(t *testing.T) {
	mock, svc := setupMockService(t)
	defer mock.Close()

	err := svc.UpdateInstanceMeta(context.Background(), 1, InstanceMetaUpdate{})
	require.ErrorIs(t, err, apperror.ErrEmptyUpdate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInstanceMetaRejectsOutOfRangeDegree(t *testing.T) {
	mock, svc := setupMockService(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT n FROM instance WHERE iid = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"n"}).AddRow(5))

	tooHigh := 5
	err := svc.UpdateInstanceMeta(context.Background(), 1, InstanceMetaUpdate{MinDeg: &tooHigh})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInstanceMetaRejectsCCBoundViolation(t *testing.T) {
	mock, svc := setupMockService(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT n FROM instance WHERE iid = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"n"}).AddRow(5))

	numCCs, nodesLargest := 4, 4 // 4+4 > 5+1
	err := svc.UpdateInstanceMeta(context.Background(), 1, InstanceMetaUpdate{
		NumCCs: &numCCs, NodesLargestCC: &nodesLargest,
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInstanceMetaAppliesPartialUpdate(t *testing.T) {
	mock, svc := setupMockService(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT n FROM instance WHERE iid = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"n"}).AddRow(10))

	mock.ExpectExec(`UPDATE instance SET name = \$1, min_deg = \$2 WHERE iid = \$3`).
		WithArgs("new-name", 3, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	name := "new-name"
	minDeg := 3
	err := svc.UpdateInstanceMeta(context.Background(), 1, InstanceMetaUpdate{Name: &name, MinDeg: &minDeg})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
