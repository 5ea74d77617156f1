// Package httpadapter exposes the solver and the puzzle/trace stores as a
// JSON API under /api/v1, plus a websocket that replays solve traces step
// by step.
package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/infrastructure/storage"
	"github.com/fatema-maitham/sudoko-solver/internal/ports"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
	"github.com/fatema-maitham/sudoko-solver/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
	// Log receives the websocket diagnostics; nil falls back to the
	// default logger.
	Log *slog.Logger
	// MaxStepDelay caps the per-step pacing a watch client may request.
	MaxStepDelay time.Duration
}

func New(uc *usecase.Service) *Handler {
	return &Handler{UC: uc, MaxStepDelay: time.Second}
}

func (h *Handler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/validate", h.handleValidate)
		api.POST("/solve", h.handleSolve)
		api.POST("/solve/steps", h.handleSolveSteps)
		api.GET("/solve/watch", h.handleWatch)
		api.POST("/hint", h.handleHint)

		api.POST("/puzzles", h.handleSavePuzzle)
		api.GET("/puzzles", h.handleListPuzzles)
		api.GET("/puzzles/:id", h.handleGetPuzzle)
		api.DELETE("/puzzles/:id", h.handleDeletePuzzle)

		api.POST("/traces", h.handleRecordTrace)
		api.GET("/traces", h.handleListTraces)
		api.GET("/traces/:id", h.handleGetTrace)
	}
}

// errorBody is the envelope every failed request gets: a message, a stable
// machine-readable code and, for conflict rejections, the offending cells.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Conflicts []int  `json:"conflicts,omitempty"`
}

// writeSolveError maps solver errors onto statuses: bad input is 400, a
// well-formed puzzle with no solution is 422.
func writeSolveError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, solver.ErrConflicts), errors.Is(err, solver.ErrInvalidPuzzle):
		status = http.StatusBadRequest
	case errors.Is(err, solver.ErrUnsolvable), errors.Is(err, solver.ErrNoSolution):
		status = http.StatusUnprocessableEntity
	}
	body := errorBody{Error: err.Error(), Code: solver.ErrorKind(err)}
	var ce *solver.ConflictError
	if errors.As(err, &ce) {
		body.Conflicts = ce.Cells
	}
	c.JSON(status, body)
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error(), Code: "not_found"})
		return
	}
	c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error(), Code: "internal"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error(), Code: "bad_request"})
}

// gridReq is the common request body: 81 cells in row-major order, zero for
// empty. The pointer makes a missing field distinguishable from an empty
// grid, which is a legal puzzle.
type gridReq struct {
	Grid *domain.Grid `json:"grid" binding:"required"`
}

// bindGrid decodes and range-checks the grid shared by the solve-family
// endpoints. It has already written the response when ok is false.
func bindGrid(c *gin.Context) (domain.Grid, bool) {
	var req gridReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return domain.Grid{}, false
	}
	if err := req.Grid.CheckCells(); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error(), Code: solver.KindInvalid})
		return domain.Grid{}, false
	}
	return *req.Grid, true
}

type statsBody struct {
	Assignments int   `json:"assignments"`
	Guesses     int   `json:"guesses"`
	Backtracks  int   `json:"backtracks"`
	DurationMs  int64 `json:"durationMs"`
}

func newStatsBody(st ports.Stats) statsBody {
	return statsBody{
		Assignments: st.Assignments,
		Guesses:     st.Guesses,
		Backtracks:  st.Backtracks,
		DurationMs:  st.Duration.Milliseconds(),
	}
}

// ---- Validate ----

type validateResp struct {
	OK        bool  `json:"ok"`
	Conflicts []int `json:"conflicts"`
}

func (h *Handler) handleValidate(c *gin.Context) {
	g, ok := bindGrid(c)
	if !ok {
		return
	}
	valid, conflicts, err := h.UC.Validate(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error(), Code: "internal"})
		return
	}
	if conflicts == nil {
		conflicts = []int{}
	}
	c.JSON(http.StatusOK, validateResp{OK: valid, Conflicts: conflicts})
}

// ---- Solve ----

type solveResp struct {
	OK    bool        `json:"ok"`
	Grid  domain.Grid `json:"grid"`
	Stats statsBody   `json:"stats"`
}

func (h *Handler) handleSolve(c *gin.Context) {
	g, ok := bindGrid(c)
	if !ok {
		return
	}
	out, st, err := h.UC.Solve(g)
	if err != nil {
		writeSolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, solveResp{OK: true, Grid: out, Stats: newStatsBody(st)})
}

// ---- Solve with steps ----

type solveStepsResp struct {
	OK    bool          `json:"ok"`
	Grid  *domain.Grid  `json:"grid,omitempty"`
	Steps []domain.Step `json:"steps"`
	Stats statsBody     `json:"stats"`
	Error string        `json:"error,omitempty"`
	Code  string        `json:"code,omitempty"`
}

// handleSolveSteps returns the full ordered trace. Unlike /solve, a failed
// search still answers 200 with the steps walked before giving up; only
// malformed input is rejected outright.
func (h *Handler) handleSolveSteps(c *gin.Context) {
	g, ok := bindGrid(c)
	if !ok {
		return
	}
	var rec domain.Recorder
	out, st, err := h.UC.SolveWithSteps(g, &rec)
	steps := rec.Steps
	if steps == nil {
		steps = []domain.Step{}
	}
	if err != nil {
		if errors.Is(err, solver.ErrConflicts) || errors.Is(err, solver.ErrInvalidPuzzle) {
			writeSolveError(c, err)
			return
		}
		c.JSON(http.StatusOK, solveStepsResp{
			Steps: steps,
			Stats: newStatsBody(st),
			Error: err.Error(),
			Code:  solver.ErrorKind(err),
		})
		return
	}
	c.JSON(http.StatusOK, solveStepsResp{OK: true, Grid: &out, Steps: steps, Stats: newStatsBody(st)})
}

// ---- Hint ----

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
}

func (h *Handler) handleHint(c *gin.Context) {
	g, ok := bindGrid(c)
	if !ok {
		return
	}
	hint, found, err := h.UC.Hint(g)
	if err != nil {
		writeSolveError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, hintResp{Found: false})
		return
	}
	c.JSON(http.StatusOK, hintResp{Found: true, Hint: &hint})
}

// ---- Puzzles ----

type savePuzzleReq struct {
	Grid  *domain.Grid `json:"grid" binding:"required"`
	Name  string       `json:"name"`
	Notes string       `json:"notes"`
}

func (h *Handler) handleSavePuzzle(c *gin.Context) {
	var req savePuzzleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Grid.CheckCells(); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error(), Code: solver.KindInvalid})
		return
	}
	p := &domain.Puzzle{Givens: *req.Grid, Name: req.Name, Notes: req.Notes}
	if err := h.UC.SavePuzzle(c.Request.Context(), p); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type listPuzzlesResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
}

func (h *Handler) handleListPuzzles(c *gin.Context) {
	metas, err := h.UC.ListPuzzles(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if metas == nil {
		metas = []domain.PuzzleMeta{}
	}
	c.JSON(http.StatusOK, listPuzzlesResp{Puzzles: metas})
}

func (h *Handler) handleGetPuzzle(c *gin.Context) {
	p, err := h.UC.GetPuzzle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) handleDeletePuzzle(c *gin.Context) {
	if err := h.UC.DeletePuzzle(c.Request.Context(), c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- Traces ----

// handleRecordTrace solves, persists the full trace and returns it. Puzzles
// the engine rejects or exhausts are recorded too; only malformed input is
// refused.
func (h *Handler) handleRecordTrace(c *gin.Context) {
	g, ok := bindGrid(c)
	if !ok {
		return
	}
	tr, err := h.UC.RecordSolve(c.Request.Context(), g)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tr)
}

type listTracesResp struct {
	Traces []domain.TraceMeta `json:"traces"`
}

func (h *Handler) handleListTraces(c *gin.Context) {
	metas, err := h.UC.ListTraces(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if metas == nil {
		metas = []domain.TraceMeta{}
	}
	c.JSON(http.StatusOK, listTracesResp{Traces: metas})
}

func (h *Handler) handleGetTrace(c *gin.Context) {
	tr, err := h.UC.GetTrace(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tr)
}
