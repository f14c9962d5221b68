// internal/httpserver/routes_cards.go
//
// HTTP routes for the card pool:
//   - POST   /api/cards             → add one phrase ({"text": "..."})
//   - POST   /api/cards/bulk        → add every line of an uploaded file or raw body
//   - DELETE /api/cards/{id}        → remove by stable card ID
//   - DELETE /api/cards/at/{index}  → remove by list position
//   - DELETE /api/cards             → clear the pool and draw an empty board
//
// Only clearing regenerates the board; adds and removes refresh the list.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/history"
	"github.com/robalobadob/bingo/internal/telemetry"
)

// maxUploadBytes bounds a bulk upload.
const maxUploadBytes = 1 << 20

// mountCards registers the card pool routes.
func (s *Server) mountCards(r chi.Router) {
	r.Route("/cards", func(r chi.Router) {
		r.Post("/", s.handleAddCard)
		r.Post("/bulk", s.handleAddBulk)
		r.Delete("/", s.handleClear)
		r.Delete("/{id}", s.handleRemoveCard)
		r.Delete("/at/{index}", s.handleRemoveAt)
	})
}

// addCardReq is the payload for POST /api/cards.
type addCardReq struct {
	Text string `json:"text"`
}

// cardsRes is returned by the card routes.
type cardsRes struct {
	Added   []bingo.Card `json:"added,omitempty"`
	Removed *bingo.Card  `json:"removed,omitempty"`
	Cards   []bingo.Card `json:"cards"`
	Count   int          `json:"count"`
}

func writeCards(w http.ResponseWriter, sess *bingo.Session, res cardsRes) {
	snap := sess.Snapshot()
	res.Cards, res.Count = snap.Cards, snap.Count
	_ = json.NewEncoder(w).Encode(res)
}

// handleAddCard adds a single phrase. Blank text is accepted and ignored.
func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	res := cardsRes{Added: []bingo.Card{}}
	if c, ok := sess.AddCard(req.Text); ok {
		res.Added = append(res.Added, c)
	}
	writeCards(w, sess, res)
}

// handleAddBulk appends the lines of a multipart "file" field, or of the raw
// request body for any other content type.
func (s *Server) handleAddBulk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	raw, err := readUpload(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, `{"error":"too_large"}`, http.StatusRequestEntityTooLarge)
			return
		}
		hlog.FromRequest(r).Debug().Err(err).Msg("read upload")
		http.Error(w, `{"error":"bad_upload"}`, http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	_, span := telemetry.Tracer().Start(r.Context(), "bingo.add_cards_bulk")
	added := sess.AddCardsBulk(raw)
	span.SetAttributes(attribute.Int("bingo.added", len(added)))
	span.End()

	writeCards(w, sess, cardsRes{Added: added})
}

// readUpload returns the uploaded text.
func readUpload(r *http.Request) (string, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		f, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		return string(b), err
	}
	b, err := io.ReadAll(r.Body)
	return string(b), err
}

// handleRemoveCard removes a card by its stable ID.
func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	c, err := sess.RemoveCard(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	writeCards(w, sess, cardsRes{Removed: &c})
}

// handleRemoveAt removes the card at a list position.
func (s *Server) handleRemoveAt(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, `{"error":"bad_index"}`, http.StatusBadRequest)
		return
	}
	sess := sessionFrom(r)
	c, err := sess.RemoveCardAt(idx)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	writeCards(w, sess, cardsRes{Removed: &c})
}

// handleClear empties the pool and returns the regenerated (empty) board.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	ctx, span := telemetry.Tracer().Start(r.Context(), "bingo.clear")
	b := sess.Clear()
	span.End()

	s.recordDraw(ctx, sess.ID, history.ReasonClear, 0, b)
	snap := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(snap)
}
