package httpadapter

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/fatema-maitham/sudoko-solver/internal/domain"
	"github.com/fatema-maitham/sudoko-solver/internal/solver"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watchReq is one solve request on an open watch socket.
type watchReq struct {
	Grid       *domain.Grid `json:"grid"`
	IntervalMs int          `json:"interval_ms"`
}

// stepFrame carries one replayed step; n is its position in the trace.
type stepFrame struct {
	Type string      `json:"type"` // "step"
	N    int         `json:"n"`
	Step domain.Step `json:"step"`
}

type resultFrame struct {
	Type  string       `json:"type"` // "result"
	Grid  *domain.Grid `json:"grid,omitempty"`
	Steps int          `json:"steps"`
	Stats statsBody    `json:"stats"`
}

type errorFrame struct {
	Type      string `json:"type"` // "error"
	Error     string `json:"error"`
	Code      string `json:"code"`
	Conflicts []int  `json:"conflicts,omitempty"`
}

// handleWatch upgrades to a websocket and serves solve requests in a loop.
// Each request is solved to completion first; only the finished trace is
// replayed frame by frame, paced by the client's interval_ms up to
// MaxStepDelay. Pacing never slows the solve itself.
func (h *Handler) handleWatch(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger().Warn("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	for {
		var req watchReq
		if err := ws.ReadJSON(&req); err != nil {
			h.logger().Debug("watch client gone", "error", err)
			return
		}
		if req.Grid == nil {
			if !h.sendFrame(ws, errorFrame{Type: "error", Error: "missing grid", Code: "bad_request"}) {
				return
			}
			continue
		}
		if err := req.Grid.CheckCells(); err != nil {
			if !h.sendFrame(ws, errorFrame{Type: "error", Error: err.Error(), Code: solver.KindInvalid}) {
				return
			}
			continue
		}

		var rec domain.Recorder
		out, st, solveErr := h.UC.SolveWithSteps(*req.Grid, &rec)

		delay := time.Duration(req.IntervalMs) * time.Millisecond
		if delay > h.MaxStepDelay {
			delay = h.MaxStepDelay
		}
		for n, step := range rec.Steps {
			if n > 0 && delay > 0 {
				time.Sleep(delay)
			}
			if !h.sendFrame(ws, stepFrame{Type: "step", N: n, Step: step}) {
				return
			}
		}

		if solveErr != nil {
			frame := errorFrame{Type: "error", Error: solveErr.Error(), Code: solver.ErrorKind(solveErr)}
			var ce *solver.ConflictError
			if errors.As(solveErr, &ce) {
				frame.Conflicts = ce.Cells
			}
			if !h.sendFrame(ws, frame) {
				return
			}
			continue
		}
		if !h.sendFrame(ws, resultFrame{Type: "result", Grid: &out, Steps: len(rec.Steps), Stats: newStatsBody(st)}) {
			return
		}
	}
}

// sendFrame writes one frame, reporting false once the connection is gone.
func (h *Handler) sendFrame(ws *websocket.Conn, v any) bool {
	if err := ws.WriteJSON(v); err != nil {
		h.logger().Warn("websocket write failed", "error", err)
		return false
	}
	return true
}
