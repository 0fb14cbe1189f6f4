package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/session"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

type contextKey string

const (
	ContextKeySessionID contextKey = "session_id"
	ContextKeySession   contextKey = "session"
)

// TokenIssuer assina e valida o ID de sessão guardado no cookie
type TokenIssuer interface {
	Issue(sessionID string) (string, error)
	Parse(token string) (string, error)
}

// SessionCookies concentra a leitura e escrita do cookie de sessão
type SessionCookies struct {
	Name   string
	TTL    time.Duration
	Issuer TokenIssuer
}

func (c SessionCookies) Set(w http.ResponseWriter, r *http.Request, sessionID string) error {
	token, err := c.Issuer.Issue(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read retorna o ID de sessão de um cookie válido
func (c SessionCookies) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	sessionID, err := c.Issuer.Parse(cookie.Value)
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Debug("session: cookie de sessão inválido ignorado")
		return "", false
	}
	return sessionID, true
}

// SessionMiddleware coloca no contexto o ID da sessão do cookie, quando houver.
// Enquanto a sessão existir no store, o cookie é reemitido com o prazo renovado.
func SessionMiddleware(cookies SessionCookies, store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := cookies.Read(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			r = r.WithContext(context.WithValue(r.Context(), ContextKeySessionID, sessionID))

			if _, active := store.Get(sessionID); active {
				if err := cookies.Set(w, r, sessionID); err != nil {
					log.ForContext(r.Context()).WithError(err).Warn("session: falha ao renovar o cookie de sessão")
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession restringe a rota a sessões com relatório carregado
func RequireSession(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := LookupSession(r, store)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrSessionNotFound, "Nenhum relatório carregado nesta sessão", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LookupSession busca no store a sessão referenciada pelo cookie da requisição
func LookupSession(r *http.Request, store session.Store) (session.Session, bool) {
	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok {
		return session.Session{}, false
	}
	return store.Get(sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(ContextKeySessionID).(string)
	return sessionID, ok && sessionID != ""
}

func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ContextKeySession).(session.Session)
	return sess, ok
}
