package handler

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

const (
	dashboardTemplate = "dashboard_page"

	trendWidth   = 800
	trendHeight  = 240
	trendPadding = 40
)

// Renderer é satisfeito por *template.Template
type Renderer interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

type barView struct {
	Label    string
	Amount   string
	Width    float64
	Negative bool
}

type trendMark struct {
	X, Y   float64
	Period string
	Amount string
}

type trendView struct {
	Width  int
	Height int
	AxisY  int
	Points string
	Marks  []trendMark
}

type pageView struct {
	HasTable    bool
	Error       string
	ErrorDetail string
	Dashboard   domain.Dashboard
	Bars        []barView
	Trend       trendView
}

func newPageView(dashboard domain.Dashboard) pageView {
	return pageView{
		HasTable:  true,
		Dashboard: dashboard,
		Bars:      barsFor(dashboard.SourceBreakdown),
		Trend:     trendFor(dashboard.MonthlyTrend),
	}
}

// barsFor dimensiona cada barra relativa ao maior valor absoluto
func barsFor(entries []domain.RankedEntry) []barView {
	maxAbs := decimal.Zero
	for _, entry := range entries {
		if abs := entry.Earnings.Abs(); abs.GreaterThan(maxAbs) {
			maxAbs = abs
		}
	}

	bars := make([]barView, 0, len(entries))
	for _, entry := range entries {
		width := 0.0
		if !maxAbs.IsZero() {
			width = entry.Earnings.Abs().Div(maxAbs).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
		}
		bars = append(bars, barView{
			Label:    entry.Key,
			Amount:   utils.FormatCurrency(entry.Earnings),
			Width:    width,
			Negative: entry.Earnings.IsNegative(),
		})
	}
	return bars
}

// trendFor projeta a série mensal no SVG do gráfico de linha
func trendFor(series domain.MonthlySeries) trendView {
	view := trendView{
		Width:  trendWidth,
		Height: trendHeight,
		AxisY:  trendHeight - trendPadding/4,
	}
	if len(series) == 0 {
		return view
	}

	low, high := math.Inf(1), math.Inf(-1)
	for _, point := range series {
		v := point.Earnings.InexactFloat64()
		low, high = math.Min(low, v), math.Max(high, v)
	}

	plotW := float64(trendWidth - 2*trendPadding)
	plotH := float64(trendHeight - 2*trendPadding)

	points := make([]string, 0, len(series))
	for i, point := range series {
		x := float64(trendWidth) / 2
		if len(series) > 1 {
			x = trendPadding + plotW*float64(i)/float64(len(series)-1)
		}

		y := float64(trendHeight) / 2
		if high > low {
			y = trendPadding + plotH*(high-point.Earnings.InexactFloat64())/(high-low)
		}

		x, y = math.Round(x*10)/10, math.Round(y*10)/10
		points = append(points, fmt.Sprintf("%g,%g", x, y))
		view.Marks = append(view.Marks, trendMark{
			X:      x,
			Y:      y,
			Period: point.Period,
			Amount: utils.FormatCurrency(point.Earnings),
		})
	}
	view.Points = strings.Join(points, " ")

	return view
}

// renderPage só escreve a resposta depois que o template foi executado por completo
func renderPage(w http.ResponseWriter, r *http.Request, renderer Renderer, status int, view pageView) {
	var buf bytes.Buffer
	if err := renderer.ExecuteTemplate(&buf, dashboardTemplate, view); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: erro ao renderizar o dashboard")
		http.Error(w, "Erro ao renderizar a página", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// describeDetails formata os detalhes de erro para exibição na página
func describeDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}

	parts := make([]string, 0, len(details))
	for _, key := range []string{"row", "column", "value", "error"} {
		if value, ok := details[key]; ok {
			parts = append(parts, fmt.Sprintf("%s: %v", key, value))
		}
	}
	return strings.Join(parts, ", ")
}
