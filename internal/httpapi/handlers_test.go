package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"domsetbench/internal/config"
)

// pgxMockAdapter narrows a pgxmock pool to the storage.DB interface,
// mirroring the ingest package's repository test harness.
type pgxMockAdapter struct {
	mock pgxmock.PgxPoolIface
}

func (a *pgxMockAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.mock.Exec(ctx, sql, args...)
}

func (a *pgxMockAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return a.mock.Query(ctx, sql, args...)
}

func (a *pgxMockAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return a.mock.QueryRow(ctx, sql, args...)
}

func (a *pgxMockAdapter) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return a.mock.BeginTx(ctx, txOptions)
}

func (a *pgxMockAdapter) Close() { a.mock.Close() }

func (a *pgxMockAdapter) Ping(ctx context.Context) error { return a.mock.Ping(ctx) }

func newTestHandlers(t *testing.T) (pgxmock.PgxPoolIface, *Handlers) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	h := NewHandlers(&pgxMockAdapter{mock: mock}, nil, config.IngestConfig{}, nil)
	return mock, h
}

func TestStatusReportsSummaryCounts(t *testing.T) {
	mock, h := newTestHandlers(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(pgxmock.NewRows([]string{"instances", "solutions", "tags"}).AddRow(int64(3), int64(5), int64(2)))

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `"instances":3`)
	require.Contains(t, body, `"solutions":5`)
	require.Contains(t, body, `"tags":2`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagsNewRejectsMalformedJSON(t *testing.T) {
	mock, h := newTestHandlers(t)
	defer mock.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/tags/new", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.TagsNew(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"kind":"BAD_INPUT"`)
}

func TestTagsNewRejectsEmptyName(t *testing.T) {
	mock, h := newTestHandlers(t)
	defer mock.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/tags/new", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	h.TagsNew(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTagsNewSurfacesDuplicateAsConflict(t *testing.T) {
	mock, h := newTestHandlers(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO tag`).
		WithArgs("trees", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tag_name_key"})

	req := httptest.NewRequest(http.MethodPost, "/api/tags/new", strings.NewReader(`{"name":"trees"}`))
	rec := httptest.NewRecorder()
	h.TagsNew(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), `"kind":"CONFLICT"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagsNewInsertsAndReturnsID(t *testing.T) {
	mock, h := newTestHandlers(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO tag`).
		WithArgs("trees", "leafy graphs", "green").
		WillReturnRows(pgxmock.NewRows([]string{"tid"}).AddRow(int64(9)))

	req := httptest.NewRequest(http.MethodPost, "/api/tags/new",
		strings.NewReader(`{"name":"trees","description":"leafy graphs","style":"green"}`))
	rec := httptest.NewRecorder()
	h.TagsNew(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"tag_id":9`)
	require.NoError(t, mock.ExpectationsWereMet())
}
