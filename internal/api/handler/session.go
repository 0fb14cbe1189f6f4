package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard/internal/session"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
)

func endSession(w http.ResponseWriter, r *http.Request, store session.Store, cookies middleware.SessionCookies) {
	if sessionID, ok := middleware.SessionIDFromContext(r.Context()); ok {
		store.Delete(sessionID)
		log.ForContext(r.Context()).WithField("session_id", sessionID).Info("session: sessão encerrada")
	}
	cookies.Clear(w)
}

// ClearSession descarta o relatório da sessão e volta para a tela de upload
func ClearSession(store session.Store, cookies middleware.SessionCookies) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endSession(w, r, store, cookies)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func DeleteSession(store session.Store, cookies middleware.SessionCookies) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endSession(w, r, store, cookies)
		w.WriteHeader(http.StatusNoContent)
	})
}
