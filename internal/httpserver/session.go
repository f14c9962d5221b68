package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/robalobadob/bingo/internal/bingo"
	"github.com/robalobadob/bingo/internal/history"
	"github.com/robalobadob/bingo/internal/telemetry"
)

// tokenLifetime bounds a session token. Idle sessions are swept from the
// store much earlier; an expired token simply yields a new session.
const tokenLifetime = 30 * 24 * time.Hour

// SessionHeader carries a freshly issued token for non-browser clients,
// which can send it back as "Authorization: Bearer <token>".
const SessionHeader = "X-Session-Token"

// ctxSessionKey is the context key type for storing the *bingo.Session.
type ctxSessionKey struct{}

// sessionFrom returns the session attached by withSession.
func sessionFrom(r *http.Request) *bingo.Session {
	s, _ := r.Context().Value(ctxSessionKey{}).(*bingo.Session)
	return s
}

// withSession attaches the caller's session, creating one when the token is
// missing, invalid, or names a session that no longer exists.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.lookupSession(r)
		if sess == nil {
			var err error
			sess, err = s.newSession(r.Context())
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("create session")
				http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
				return
			}
			tok, exp, err := s.signSession(sess.ID)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign session")
				http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
				return
			}
			s.setSessionCookie(w, tok, exp)
			w.Header().Set(SessionHeader, tok)
		}
		sess.Touch(time.Now())
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// lookupSession resolves the request token to a live session, or nil.
func (s *Server) lookupSession(r *http.Request) *bingo.Session {
	tok := bearerOrCookie(r, s.opts.CookieName)
	if tok == "" {
		return nil
	}
	id, err := s.parseSession(tok)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("discarding session token")
		return nil
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil
	}
	return sess
}

// newSession creates, seeds and stores a session, and draws its first board.
func (s *Server) newSession(ctx context.Context) (*bingo.Session, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "bingo.new_session")
	defer span.End()

	sess := bingo.NewSession(uuid.NewString(), s.opts.NewRand())
	sess.Seed(s.opts.Defaults())
	b, n := sess.NewBoard()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("bingo.session", sess.ID),
		attribute.Int("bingo.pool_size", n),
	)
	s.recordDraw(ctx, sess.ID, history.ReasonInit, n, b)
	return sess, nil
}

// ------------------------------ JWT & cookies ------------------------------

// signSession creates an HS256 JWT carrying the session ID.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(tokenLifetime)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseSession validates a token and returns its session ID.
func (s *Server) parseSession(tok string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	id, _ := claims["sid"].(string)
	if id == "" {
		return "", errors.New("token without session id")
	}
	return id, nil
}

// setSessionCookie writes the session token cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request, cookieName string) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
