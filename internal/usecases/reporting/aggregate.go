// Package reporting calcula as agregações do relatório de vendas carregado.
// Todas as funções são puras: recebem a tabela e não guardam estado entre chamadas.
package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Aggregate aplica o filtro e soma os ganhos no total e por fonte, artista e título
func Aggregate(table *domain.Table, filter domain.FilterSpec) domain.AggregateResult {
	result := domain.AggregateResult{
		Total:    decimal.Zero,
		BySource: make(map[string]decimal.Decimal),
		ByArtist: make(map[string]decimal.Decimal),
		ByTitle:  make(map[string]decimal.Decimal),
	}

	if table == nil {
		return result
	}

	for _, record := range table.Records {
		if !filter.Matches(record) {
			continue
		}

		result.Total = result.Total.Add(record.Earnings)
		addTo(result.BySource, record.Source, record.Earnings)
		addTo(result.ByArtist, record.AssetArtist, record.Earnings)
		addTo(result.ByTitle, record.ProductTitle, record.Earnings)
	}

	return result
}

func addTo(sums map[string]decimal.Decimal, key string, amount decimal.Decimal) {
	sums[key] = sums[key].Add(amount)
}

// MonthlyTrend soma os ganhos por período sobre a tabela inteira, sem filtros
func MonthlyTrend(table *domain.Table) domain.MonthlySeries {
	series := domain.MonthlySeries{}
	if table == nil {
		return series
	}

	byPeriod := make(map[string]decimal.Decimal)
	for _, record := range table.Records {
		addTo(byPeriod, record.Period, record.Earnings)
	}

	for period, earnings := range byPeriod {
		series = append(series, domain.MonthlyPoint{Period: period, Earnings: earnings})
	}

	// YYYY-MM ordena lexicograficamente na mesma ordem cronológica
	sort.Slice(series, func(i, j int) bool {
		return series[i].Period < series[j].Period
	})

	return series
}

// Percentage retorna part / total * 100 com duas casas, empates arredondados para o par.
// Retorna zero quando o total é zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).RoundBank(2)
}

// Rank ordena as somas por ganhos decrescentes (empate pela chave) e calcula o percentual do total
func Rank(sums map[string]decimal.Decimal, total decimal.Decimal) []domain.RankedEntry {
	ranking := make([]domain.RankedEntry, 0, len(sums))
	for key, earnings := range sums {
		ranking = append(ranking, domain.RankedEntry{
			Key:        key,
			Earnings:   earnings,
			Percentage: Percentage(earnings, total),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if cmp := ranking[i].Earnings.Cmp(ranking[j].Earnings); cmp != 0 {
			return cmp > 0
		}
		return ranking[i].Key < ranking[j].Key
	})

	return ranking
}

// Labels retorna os labels distintos na ordem em que aparecem no arquivo
func Labels(table *domain.Table) []string {
	return distinct(table, func(r domain.Record) string { return r.ReportingLabel })
}

// Periods retorna os períodos distintos na ordem em que aparecem no arquivo
func Periods(table *domain.Table) []string {
	return distinct(table, func(r domain.Record) string { return r.Period })
}

func distinct(table *domain.Table, key func(domain.Record) string) []string {
	values := []string{}
	if table == nil {
		return values
	}

	seen := make(map[string]struct{})
	for _, record := range table.Records {
		value := key(record)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}
