package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
)

type optionsResponse struct {
	Labels  []domain.Option `json:"labels"`
	Periods []domain.Option `json:"periods"`
}

// GetReport retorna o dashboard completo para os filtros da query
func GetReport() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeInternalError(w, "Sessão ausente no contexto")
			return
		}

		filter, _ := filterFromQuery(r)
		writeJSON(w, r, http.StatusOK, reporting.BuildDashboard(sess.Table, filter))
	})
}

// GetMonthlyTrend retorna a série mensal do relatório inteiro
func GetMonthlyTrend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeInternalError(w, "Sessão ausente no contexto")
			return
		}

		writeJSON(w, r, http.StatusOK, reporting.MonthlyTrend(sess.Table))
	})
}

func GetOptions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeInternalError(w, "Sessão ausente no contexto")
			return
		}

		filter, _ := filterFromQuery(r)
		labels, periods := reporting.SelectorOptions(sess.Table, filter)
		writeJSON(w, r, http.StatusOK, optionsResponse{Labels: labels, Periods: periods})
	})
}
