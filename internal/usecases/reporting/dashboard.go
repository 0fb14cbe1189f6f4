package reporting

import (
	"sort"

	"github.com/vfg2006/sales-dashboard/internal/domain"
)

// BuildDashboard monta o conteúdo completo da página para a seleção atual
func BuildDashboard(table *domain.Table, filter domain.FilterSpec) domain.Dashboard {
	result := Aggregate(table, filter)

	dashboard := domain.Dashboard{
		Rows:            table.Len(),
		Filter:          filter,
		Result:          result,
		SourceBreakdown: Rank(result.BySource, result.Total),
		ArtistRanking:   Rank(result.ByArtist, result.Total),
		TitleRanking:    Rank(result.ByTitle, result.Total),
		MonthlyTrend:    MonthlyTrend(table),
		Details:         Details(table),
	}

	dashboard.LabelOptions, dashboard.PeriodOptions = SelectorOptions(table, filter)

	if table != nil {
		dashboard.TableID = table.ID
		dashboard.FileName = table.FileName
	}

	return dashboard
}

// Summarize resume a tabela recém carregada
func Summarize(table *domain.Table) domain.TableSummary {
	summary := domain.TableSummary{
		Rows:    table.Len(),
		Labels:  Labels(table),
		Periods: Periods(table),
	}
	if table != nil {
		summary.TableID = table.ID
		summary.FileName = table.FileName
	}
	return summary
}

// Details projeta a tabela nas colunas de exibição, da venda mais recente para a mais antiga.
// A tabela detalhada não é filtrada.
func Details(table *domain.Table) []domain.DetailRow {
	rows := make([]domain.DetailRow, 0, table.Len())
	if table == nil {
		return rows
	}

	for _, record := range table.Records {
		rows = append(rows, domain.DetailRow{
			SaleStartDate:  record.SaleStartDate,
			Source:         record.Source,
			ReportingLabel: record.ReportingLabel,
			AssetArtist:    record.AssetArtist,
			ProductTitle:   record.ProductTitle,
			Earnings:       record.Earnings,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SaleStartDate.After(rows[j].SaleStartDate)
	})

	return rows
}

// SelectorOptions retorna as opções dos seletores de label e período, com "All" no início
func SelectorOptions(table *domain.Table, filter domain.FilterSpec) (labels, periods []domain.Option) {
	return options(Labels(table), filter.Label), options(Periods(table), filter.Period)
}

// options prefixa a opção "All" e marca a seleção atual
func options(values []string, selected *string) []domain.Option {
	opts := make([]domain.Option, 0, len(values)+1)
	opts = append(opts, domain.Option{
		Value:    "",
		Label:    domain.AllOption,
		Selected: selected == nil,
	})

	for _, value := range values {
		opts = append(opts, domain.Option{
			Value:    value,
			Label:    value,
			Selected: selected != nil && *selected == value,
		})
	}
	return opts
}
