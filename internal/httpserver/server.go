// internal/httpserver/server.go
//
// HTTP server wiring for the bingo backend.
// Responsibilities:
//   - Router + middleware (CORS, timeouts, panic recovery, request IDs,
//     access logs, tracing spans).
//   - Public endpoints: "/" (embedded web page), "/health", "/api".
//   - Session-scoped API under /api: board, cells, cards.
//   - Diagnostics: /debug/stats (live sessions + draw log summary).
//
// Notes:
//   - Every /api request runs inside a session (see session.go); a browser
//     without a valid session cookie gets a fresh one seeded with the
//     default phrases.
//   - Draw log writes are best effort; failures are logged and ignored.

package httpserver

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/robalobadob/bingo/assets"
	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/history"
	"github.com/robalobadob/bingo/internal/store"
	"github.com/robalobadob/bingo/internal/telemetry"
)

// Options configures a Server. Zero values fall back to the defaults noted.
type Options struct {
	Store         store.Store      // required
	History       *history.Store   // nil disables the draw log
	Defaults      func() []string  // phrases seeded into new sessions; nil seeds nothing
	Secret        string           // HS256 key for session tokens
	CookieName    string           // default "bingo_session"
	ClientOrigin  string           // default "http://localhost:5173"
	SecureCookies bool             // Secure + SameSite=None cookies
	NewRand       func() *rand.Rand // default bingo.NewRand
}

// Server bundles router, session store and draw log.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history *history.Store
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Defaults == nil {
		opts.Defaults = func() []string { return nil }
	}
	if opts.CookieName == "" {
		opts.CookieName = "bingo_session"
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Secret == "" {
		opts.Secret = "dev_secret_change_me"
	}
	if opts.NewRand == nil {
		opts.NewRand = bingo.NewRand
	}
	s := &Server{r: chi.NewRouter(), store: opts.Store, history: opts.History, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(traceRequests)                   // one span per request
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.With(jsonContentType).Get("/debug/stats", s.handleStats)

	// --- API (session scoped) ---
	s.r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"bingo-go","endpoints":["/health","GET /api/state","POST /api/board","POST /api/board/cells/{index}/toggle","POST /api/cards","POST /api/cards/bulk","DELETE /api/cards","DELETE /api/cards/{id}","DELETE /api/cards/at/{index}"]}`))
		})
		r.Group(func(r chi.Router) {
			r.Use(s.withSession)
			r.Get("/state", s.handleState)
			s.mountBoard(r)
			s.mountCards(r)
		})
		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
		})
	})

	// --- web page ---
	s.r.Handle("/*", http.FileServer(http.FS(assets.Web())))

	return s
}

// Handler exposes the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// HTTPServer returns an *http.Server serving this router on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", SessionHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.DebugLevel
	if status >= 500 {
		lvl = zerolog.WarnLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// traceRequests wraps each request in a server span named after its route.
func traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := telemetry.Tracer().Start(r.Context(), "HTTP "+r.Method,
			oteltrace.WithSpanKind(oteltrace.SpanKindServer),
			oteltrace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			))
		defer span.End()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
				span.SetAttributes(attribute.String("http.route", pattern))
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// ------------------------------ handlers -----------------------------------

// handleState returns the current board and card list.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// statsRes is returned by /debug/stats.
type statsRes struct {
	Sessions int            `json:"sessions"`
	Draws    *history.Stats `json:"draws,omitempty"`
}

// handleStats reports live sessions and, if enabled, the draw log summary.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	res := statsRes{Sessions: s.store.Len()}
	if s.history != nil {
		st, err := s.history.Stats(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("draw stats")
			http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
			return
		}
		res.Draws = &st
	}
	_ = json.NewEncoder(w).Encode(res)
}

// recordDraw writes a draw log row. Failures are logged, never returned.
func (s *Server) recordDraw(ctx context.Context, sessionID, reason string, poolSize int, b *bingo.Board) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, history.Draw{
		SessionID: sessionID,
		Reason:    reason,
		PoolSize:  poolSize,
		Filled:    b.Filled(),
	})
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Str("reason", reason).Msg("record draw")
	}
}
