package history

import (
	"context"
	"database/sql"
	"time"
)

// Reasons a board was drawn.
const (
	ReasonInit  = "init"  // first board of a new session
	ReasonNew   = "new"   // user asked for a new board
	ReasonClear = "clear" // pool was cleared
)

// timeLayout sorts lexically, unlike RFC3339Nano which trims trailing zeros.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Draw is one board generation. Phrases are never recorded.
type Draw struct {
	SessionID string    `json:"sessionId"`
	Reason    string    `json:"reason"`
	PoolSize  int       `json:"poolSize"`
	Filled    int       `json:"filled"`
	DrawnAt   time.Time `json:"drawnAt"`
}

// Stats summarizes the whole log.
type Stats struct {
	Draws       int     `json:"draws"`
	Sessions    int     `json:"sessions"`
	AvgPoolSize float64 `json:"avgPoolSize"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts a draw. A zero DrawnAt is set to now.
func (s *Store) Record(ctx context.Context, d Draw) error {
	if d.DrawnAt.IsZero() {
		d.DrawnAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO draws(session_id, reason, pool_size, filled, drawn_at)
		 VALUES(?,?,?,?,?)`,
		d.SessionID, d.Reason, d.PoolSize, d.Filled, d.DrawnAt.UTC().Format(timeLayout),
	)
	return err
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COUNT(DISTINCT session_id), COALESCE(AVG(pool_size), 0) FROM draws`,
	).Scan(&st.Draws, &st.Sessions, &st.AvgPoolSize)
	return st, err
}

// Recent returns the latest draws of a session, newest first.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]Draw, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, reason, pool_size, filled, drawn_at
		 FROM draws
		 WHERE session_id=?
		 ORDER BY drawn_at DESC, id DESC
		 LIMIT ?`, sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Draw, 0, limit)
	for rows.Next() {
		var d Draw
		var at string
		if err := rows.Scan(&d.SessionID, &d.Reason, &d.PoolSize, &d.Filled, &at); err != nil {
			return nil, err
		}
		d.DrawnAt, _ = time.Parse(timeLayout, at)
		out = append(out, d)
	}
	return out, rows.Err()
}
