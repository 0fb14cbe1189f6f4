// Package web embute os templates HTML do dashboard
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

//go:embed templates/*.html
var TemplatesFS embed.FS

type rankingTable struct {
	Title   string
	Entries []domain.RankedEntry
}

var funcs = template.FuncMap{
	"ranking": func(title string, entries []domain.RankedEntry) rankingTable {
		return rankingTable{Title: title, Entries: entries}
	},
	"currency": utils.FormatCurrency,
	"percent":  utils.FormatPercentage,
	"date": func(t time.Time) string {
		return t.Format(time.DateOnly)
	},
}

// Templates carrega e compila os templates embutidos
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(TemplatesFS, "templates/*.html")
}
