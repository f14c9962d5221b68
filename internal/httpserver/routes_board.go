// internal/httpserver/routes_board.go
//
// HTTP routes for the current board:
//   - POST /api/board                        → draw a new board from the whole pool
//   - POST /api/board/cells/{index}/toggle   → mark/unmark one cell
//
// A new board always replaces the previous one, marks included.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/history"
	"github.com/robalobadob/bingo/internal/telemetry"
)

// mountBoard registers the board routes.
func (s *Server) mountBoard(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Post("/", s.handleNewBoard)
		r.Post("/cells/{index}/toggle", s.handleToggle)
	})
}

// boardRes is returned by the board routes.
type boardRes struct {
	Board   *bingo.Board `json:"board"`
	Toggled *bool        `json:"toggled,omitempty"`
}

// handleNewBoard reshuffles the pool into a fresh board.
func (s *Server) handleNewBoard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	ctx, span := telemetry.Tracer().Start(r.Context(), "bingo.generate_board")
	b, n := sess.NewBoard()
	span.SetAttributes(attribute.Int("bingo.pool_size", n), attribute.Int("bingo.filled", b.Filled()))
	span.End()

	s.recordDraw(ctx, sess.ID, history.ReasonNew, n, b)
	_ = json.NewEncoder(w).Encode(boardRes{Board: b})
}

// handleToggle flips a cell. Center, empty and out-of-grid cells report
// toggled=false and leave the board unchanged.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, `{"error":"bad_index"}`, http.StatusBadRequest)
		return
	}
	ok, b := sessionFrom(r).Toggle(idx)
	_ = json.NewEncoder(w).Encode(boardRes{Board: b, Toggled: &ok})
}
