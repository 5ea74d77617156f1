package httpadapter

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/hint"
	"github.com/fatema-maitham/sudoko-solver/internal/infrastructure/storage"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
	"github.com/fatema-maitham/sudoko-solver/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	classicText = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	solvedText  = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

	// Two 5s in row 0.
	conflictText = "550000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000"

	// Box 0 holds 1,2,4..9 across its rows while cell 3 pins the 3 of
	// row 0 outside it, so no digit is left for the two open cells.
	noSolutionText = "000300000" +
		"456000000" +
		"789000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000" +
		"000000000"
)

func parseGrid(t *testing.T, text string) domain.Grid {
	t.Helper()
	g, err := domain.ParseGrid(text)
	require.NoError(t, err)
	return g
}

// oneEmptyText is the solved classic grid with cell 40 blanked; the only
// move left is the naked single 5 there.
func oneEmptyText() string {
	return solvedText[:40] + "." + solvedText[41:]
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := storage.NewFS(t.TempDir())
	t.Cleanup(func() { _ = store.Close() })
	uc := usecase.NewService(solver.NewEngine(), hint.NewSingles(), store)
	return NewRouter(uc, RouterOptions{Metrics: true})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestSolveEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", gridReq{Grid: ptr(parseGrid(t, classicText))})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[solveResp](t, w)
	assert.True(t, resp.OK)
	assert.Equal(t, parseGrid(t, solvedText), resp.Grid)
	assert.Greater(t, resp.Stats.Assignments, 0)
}

func TestSolveConflicts(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", gridReq{Grid: ptr(parseGrid(t, conflictText))})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[errorBody](t, w)
	assert.Equal(t, solver.KindConflicts, resp.Code)
	assert.Equal(t, []int{0, 1}, resp.Conflicts)
}

func TestSolveNoSolution(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", gridReq{Grid: ptr(parseGrid(t, noSolutionText))})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode[errorBody](t, w)
	assert.Equal(t, solver.KindNoSolution, resp.Code)
	assert.Empty(t, resp.Conflicts)
}

func TestSolveRejectsMissingGrid(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", map[string]any{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decode[errorBody](t, w).Code)
}

func TestSolveRejectsOutOfRangeCell(t *testing.T) {
	r := newTestRouter(t)
	g := parseGrid(t, classicText)
	g[7] = 12
	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", gridReq{Grid: &g})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, solver.KindInvalid, decode[errorBody](t, w).Code)
}

func TestValidateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/validate", gridReq{Grid: ptr(parseGrid(t, classicText))})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[validateResp](t, w)
	assert.True(t, resp.OK)
	assert.Equal(t, []int{}, resp.Conflicts)

	w = doJSON(t, r, http.MethodPost, "/api/v1/validate", gridReq{Grid: ptr(parseGrid(t, conflictText))})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[validateResp](t, w)
	assert.False(t, resp.OK)
	assert.Equal(t, []int{0, 1}, resp.Conflicts)
}

func TestHintEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/hint", gridReq{Grid: ptr(parseGrid(t, oneEmptyText()))})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[hintResp](t, w)
	require.True(t, resp.Found)
	require.NotNil(t, resp.Hint)
	assert.Equal(t, 40, resp.Hint.Cell)
	assert.Equal(t, 4, resp.Hint.Row)
	assert.Equal(t, 4, resp.Hint.Col)
	assert.Equal(t, uint8(5), resp.Hint.Value)
	assert.Equal(t, domain.ReasonNakedSingle, resp.Hint.Reason)

	// Nothing forced on an empty grid.
	w = doJSON(t, r, http.MethodPost, "/api/v1/hint", gridReq{Grid: &domain.Grid{}})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[hintResp](t, w)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Hint)

	w = doJSON(t, r, http.MethodPost, "/api/v1/hint", gridReq{Grid: ptr(parseGrid(t, conflictText))})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, solver.KindConflicts, decode[errorBody](t, w).Code)
}

func TestSolveStepsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve/steps", gridReq{Grid: ptr(parseGrid(t, classicText))})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[solveStepsResp](t, w)
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Grid)
	assert.Equal(t, parseGrid(t, solvedText), *resp.Grid)
	require.NotEmpty(t, resp.Steps)
	assert.Equal(t, domain.StepAssign, resp.Steps[0].Kind)
	assert.Equal(t, len(resp.Steps), countKind(resp.Steps, domain.StepAssign)+
		countKind(resp.Steps, domain.StepFocus)+countKind(resp.Steps, domain.StepGuess)+
		countKind(resp.Steps, domain.StepUnassign)+countKind(resp.Steps, domain.StepBacktrack))
}

func TestSolveStepsReportsFailedSearch(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve/steps", gridReq{Grid: ptr(parseGrid(t, noSolutionText))})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[solveStepsResp](t, w)
	assert.False(t, resp.OK)
	assert.Nil(t, resp.Grid)
	assert.Equal(t, solver.KindNoSolution, resp.Code)
	// The walk up to exhaustion is still reported.
	assert.NotEmpty(t, resp.Steps)

	// Conflicting givens never reach the search, so they stay an error.
	w = doJSON(t, r, http.MethodPost, "/api/v1/solve/steps", gridReq{Grid: ptr(parseGrid(t, conflictText))})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPuzzleCRUD(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/puzzles", savePuzzleReq{
		Grid: ptr(parseGrid(t, classicText)),
		Name: "classic",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Puzzle](t, w)
	assert.NotEmpty(t, created.ID)
	assert.NotZero(t, created.CreatedAt)
	assert.Equal(t, "classic", created.Name)

	w = doJSON(t, r, http.MethodGet, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listPuzzlesResp](t, w)
	require.Len(t, list.Puzzles, 1)
	assert.Equal(t, created.ID, list.Puzzles[0].ID)
	assert.Equal(t, 30, list.Puzzles[0].Clues)

	w = doJSON(t, r, http.MethodGet, "/api/v1/puzzles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Puzzle](t, w)
	assert.Equal(t, created.Givens, got.Givens)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/puzzles/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/puzzles/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[errorBody](t, w).Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/puzzles/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPuzzleListEmpty(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/puzzles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"puzzles":[]}`, w.Body.String())
}

func TestTraceEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/traces", gridReq{Grid: ptr(parseGrid(t, classicText))})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tr := decode[domain.SolveTrace](t, w)
	assert.NotEmpty(t, tr.ID)
	assert.True(t, tr.Solved)
	assert.Equal(t, parseGrid(t, solvedText), tr.Solution)
	assert.NotEmpty(t, tr.Steps)

	w = doJSON(t, r, http.MethodGet, "/api/v1/traces", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[listTracesResp](t, w)
	require.Len(t, list.Traces, 1)
	assert.Equal(t, tr.ID, list.Traces[0].ID)
	assert.True(t, list.Traces[0].Solved)

	w = doJSON(t, r, http.MethodGet, "/api/v1/traces/"+tr.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.SolveTrace](t, w)
	assert.Equal(t, tr.Steps, got.Steps)

	w = doJSON(t, r, http.MethodGet, "/api/v1/traces/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTraceRecordsRejectedPuzzle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/traces", gridReq{Grid: ptr(parseGrid(t, conflictText))})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tr := decode[domain.SolveTrace](t, w)
	assert.False(t, tr.Solved)
	assert.Equal(t, solver.KindConflicts, tr.ErrorCode)
	assert.Equal(t, []int{0, 1}, tr.Conflicts)
	assert.Empty(t, tr.Steps)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	// One solve so the solver series have samples.
	doJSON(t, r, http.MethodPost, "/api/v1/solve", gridReq{Grid: ptr(parseGrid(t, classicText))})

	w := doJSON(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "sudoku_solver_solves_total"))
}

func ptr(g domain.Grid) *domain.Grid { return &g }

func countKind(steps []domain.Step, kind domain.StepKind) int {
	n := 0
	for _, s := range steps {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
