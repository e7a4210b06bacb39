package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/internal/types"
	"github.com/fadedpez/dugout/pkg/entities"
	recordsRepo "github.com/fadedpez/dugout/pkg/repositories/records"
	"github.com/fadedpez/dugout/pkg/services/records"
	"github.com/fadedpez/dugout/pkg/services/statistics"
	"github.com/fadedpez/dugout/pkg/storage"
	"github.com/fadedpez/dugout/pkg/storage/file"
)

type testServer struct {
	*httptest.Server
	repo    *recordsRepo.MemoryRepository
	records *records.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	history, err := file.New(&storage.Options{MaxSnapshots: 10})
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	repo := recordsRepo.NewMemoryRepository()
	rs := records.NewService(repo, history)
	srv := NewServer(rs, statistics.NewService(repo), Options{CacheTTL: time.Minute})
	srv.SetLogger(logging.NewLoggerTo(io.Discard, logging.DEBUG))
	srv.now = func() time.Time { return time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC) }

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, repo: repo, records: rs}
}

func (ts *testServer) do(t *testing.T, method, path, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestBattingFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/batting", "application/json",
		`{"player":"山田","date":"2025-04-12","opponent":"Tigers","result":"ヒット","hitType":"HOME_RUN","rbi":"2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var stored entities.BattingRecord
	decode(t, resp, &stored)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, entities.ResultHit, stored.Result)
	assert.Equal(t, "1", stored.AB)

	resp = ts.do(t, http.MethodGet, "/api/v1/batting?sort=hr", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var table statistics.BattingTable
	decode(t, resp, &table)
	require.NotEmpty(t, table.Rows)
	assert.Equal(t, "山田", table.Rows[0].Player)
	assert.Equal(t, 1, table.Rows[0].HR)
	assert.Equal(t, "1.000", table.Rows[0].AVG)
	assert.Equal(t, statistics.BattingSortHR, table.Sort.Key)
	assert.Equal(t, 1, table.Team.Games)

	resp = ts.do(t, http.MethodGet, "/api/v1/players/山田", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail statistics.PlayerDetail
	decode(t, resp, &detail)
	assert.Len(t, detail.Records, 1)

	resp = ts.do(t, http.MethodGet, "/api/v1/batting/months", "", "")
	var months map[string][]string
	decode(t, resp, &months)
	assert.Equal(t, []string{"2025-04"}, months["months"])

	resp = ts.do(t, http.MethodPut, "/api/v1/batting/"+stored.ID, "application/json",
		`{"player":"山田","date":"2025-04-12","result":"WALK"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/batting/undo", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var undone map[string]interface{}
	decode(t, resp, &undone)
	assert.Equal(t, "edit", undone["reason"])
	assert.EqualValues(t, 1, undone["restored"])

	resp = ts.do(t, http.MethodDelete, "/api/v1/batting/"+stored.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	recs, err := ts.repo.ListBatting(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestErrorStatuses(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   types.ErrorCode
	}{
		{"missing player", http.MethodPost, "/api/v1/batting", `{"result":"HIT"}`, http.StatusBadRequest, types.ErrPlayerRequired},
		{"unknown result", http.MethodPost, "/api/v1/batting", `{"player":"山田","result":"BUNT"}`, http.StatusBadRequest, types.ErrResultRequired},
		{"bad json", http.MethodPost, "/api/v1/batting", `{`, http.StatusBadRequest, types.ErrInvalidArgument},
		{"missing pitcher", http.MethodPost, "/api/v1/pitching", `{"innings":"1"}`, http.StatusBadRequest, types.ErrPitcherRequired},
		{"nothing to undo", http.MethodPost, "/api/v1/batting/undo", ``, http.StatusConflict, types.ErrNothingToUndo},
		{"missing record", http.MethodDelete, "/api/v1/batting/nope", ``, http.StatusNotFound, types.ErrRecordNotFound},
		{"unknown sort", http.MethodGet, "/api/v1/batting?sort=nope", ``, http.StatusBadRequest, types.ErrInvalidArgument},
		{"bad asc", http.MethodGet, "/api/v1/pitching?asc=maybe", ``, http.StatusBadRequest, types.ErrInvalidArgument},
		{"unknown roster", http.MethodGet, "/api/v1/rosters/coaches", ``, http.StatusBadRequest, types.ErrInvalidArgument},
		{"unknown log", http.MethodGet, "/api/v1/export/fielding.csv", ``, http.StatusBadRequest, types.ErrInvalidArgument},
		{"empty import", http.MethodPost, "/api/v1/import/batting", "player,result\r\n", http.StatusBadRequest, types.ErrImportFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := ts.do(t, tc.method, tc.path, "application/json", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestReadsAreCachedUntilWrite(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/pitching", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	resp = ts.do(t, http.MethodGet, "/api/v1/pitching", "", "")
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
	var table statistics.PitchingTable
	decode(t, resp, &table)
	assert.Empty(t, table.Rows)

	resp = ts.do(t, http.MethodPost, "/api/v1/pitching", "application/json",
		`{"pitcher":"鈴木","date":"2025-04-12","innings":"6.1","er":"3"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/pitching", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	decode(t, resp, &table)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "4.26", table.Rows[0].ERA)
}

func TestCacheKeyIgnoresParameterOrder(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/batting?month=2025-04&sort=h", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	resp = ts.do(t, http.MethodGet, "/api/v1/batting?sort=h&month=2025-04", "", "")
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))
	resp = ts.do(t, http.MethodGet, "/api/v1/batting?sort=h&month=2025-05", "", "")
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
}

func TestExportImportRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	csv := "player,date,result,hitType,rbi\r\n山田,2025-04-12,ヒット,本塁打,1\r\n佐藤,2025-04-12,四球,,\r\n"
	resp := ts.do(t, http.MethodPost, "/api/v1/import/batting", "text/csv", csv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var imported map[string]int
	decode(t, resp, &imported)
	assert.Equal(t, 2, imported["imported"])

	resp = ts.do(t, http.MethodGet, "/api/v1/export/batting.csv", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="batting-20250412.csv"`, resp.Header.Get("Content-Disposition"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "\ufeffplayer,"))
	assert.Contains(t, string(body), "山田")

	// The import is undoable
	resp = ts.do(t, http.MethodPost, "/api/v1/batting/undo", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	recs, err := ts.repo.ListBatting(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRosterRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/rosters/batters", "", "")
	var roster map[string][]string
	decode(t, resp, &roster)
	assert.Equal(t, entities.DefaultBatters, roster["names"])

	resp = ts.do(t, http.MethodPost, "/api/v1/rosters/pitchers", "application/json", `{"name":"鈴木"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/rosters/pitchers", "application/json", `{"name":"鈴木"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.do(t, http.MethodPut, "/api/v1/rosters/pitchers", "application/json", `{"names":["高橋"," 鈴木 ","高橋"]}`)
	decode(t, resp, &roster)
	assert.Equal(t, []string{"高橋", "鈴木"}, roster["names"])

	resp = ts.do(t, http.MethodDelete, "/api/v1/rosters/pitchers/高橋", "", "")
	decode(t, resp, &roster)
	assert.Equal(t, []string{"鈴木"}, roster["names"])

	resp = ts.do(t, http.MethodGet, "/api/v1/rosters/pitchers/csv?encoding=sjis", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(body)
	require.NoError(t, err)
	assert.Equal(t, "鈴木", string(decoded))

	resp = ts.do(t, http.MethodPost, "/api/v1/rosters/batters/csv", "text/csv", "\ufeff田中\r\n\r\n 伊藤 \r\n")
	decode(t, resp, &roster)
	assert.Equal(t, []string{"田中", "伊藤"}, roster["names"])
}

type failingRecords struct {
	RecordsService
}

func (failingRecords) OnChange(func()) {}

func (failingRecords) Batting(context.Context) ([]*entities.BattingRecord, error) {
	return nil, types.WrapError(types.ErrDatabaseError, "failed to list batting records", errors.New("disk I/O error"))
}

func TestServerErrorsHideCause(t *testing.T) {
	srv := NewServer(failingRecords{}, nil, Options{})
	srv.SetLogger(logging.NewLoggerTo(io.Discard, logging.DEBUG))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/batting/records", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, types.ErrDatabaseError, body.Code)
	assert.Equal(t, "failed to list batting records", body.Message)
	assert.NotContains(t, rec.Body.String(), "disk I/O")
}

func TestClearBattingThenUndo(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	resp := ts.do(t, http.MethodPost, "/api/v1/batting", "application/json",
		`{"player":"佐藤","date":"2025-04-12","result":"OUT"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodDelete, "/api/v1/batting", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	recs, err := ts.repo.ListBatting(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	resp = ts.do(t, http.MethodPost, "/api/v1/batting/undo", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	recs, err = ts.repo.ListBatting(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "佐藤", recs[0].Player)
}

func TestWritesOutsideTheAPIFlushTheCache(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	teamPA := func() int {
		resp := ts.do(t, http.MethodGet, "/api/v1/batting", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var table statistics.BattingTable
		decode(t, resp, &table)
		return table.Team.PA
	}
	pitchers := func() int {
		resp := ts.do(t, http.MethodGet, "/api/v1/pitching", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var table statistics.PitchingTable
		decode(t, resp, &table)
		return len(table.Rows)
	}

	assert.Equal(t, 0, teamPA())
	assert.Equal(t, 0, pitchers())

	// the Discord bot writes through the records service directly
	_, err := ts.records.AddPlateAppearance(ctx, &entities.BattingRecord{
		Player: "山田", Date: "2025-04-12", Result: entities.ResultHit, HitType: entities.HitTypeSingle,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, teamPA())

	_, err = ts.records.AddOuting(ctx, &entities.PitchingRecord{Pitcher: "高橋", Date: "2025-04-12", Innings: "5"})
	require.NoError(t, err)
	assert.Equal(t, 1, pitchers())

	_, err = ts.records.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, teamPA())
}
