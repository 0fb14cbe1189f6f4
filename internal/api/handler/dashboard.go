package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/session"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
)

// DashboardPage renderiza o dashboard da sessão. Sem relatório carregado, exibe apenas o formulário de upload.
func DashboardPage(store session.Store, renderer Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.LookupSession(r, store)
		if !ok {
			renderPage(w, r, renderer, http.StatusOK, pageView{})
			return
		}

		filter := sess.Filter
		if selected, changed := filterFromQuery(r); changed {
			filter = selected
			store.SetFilter(sess.ID, filter)
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"session_id": sess.ID,
			"table_id":   sess.Table.ID,
		}).Debug("dashboard: renderizando relatório")

		renderPage(w, r, renderer, http.StatusOK, newPageView(reporting.BuildDashboard(sess.Table, filter)))
	})
}

// filterFromQuery lê os seletores da query. changed é falso quando nenhum seletor foi enviado.
func filterFromQuery(r *http.Request) (filter domain.FilterSpec, changed bool) {
	query := r.URL.Query()
	_, hasLabel := query["label"]
	_, hasPeriod := query["period"]

	return domain.NewFilterSpec(query.Get("label"), query.Get("period")), hasLabel || hasPeriod
}
