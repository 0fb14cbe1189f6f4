package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateResult contém o total e as somas agrupadas por dimensão
type AggregateResult struct {
	Total    decimal.Decimal            `json:"total"`
	BySource map[string]decimal.Decimal `json:"by_source"`
	ByArtist map[string]decimal.Decimal `json:"by_artist"`
	ByTitle  map[string]decimal.Decimal `json:"by_title"`
}

// MonthlyPoint representa o total de um período
type MonthlyPoint struct {
	Period   string          `json:"period"`
	Earnings decimal.Decimal `json:"earnings"`
}

// MonthlySeries é a série mensal ordenada por período crescente
type MonthlySeries []MonthlyPoint

// RankedEntry é uma linha das tabelas de ranking
type RankedEntry struct {
	Key        string          `json:"key"`
	Earnings   decimal.Decimal `json:"earnings"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DetailRow é a projeção de um Record exibida na tabela detalhada
type DetailRow struct {
	SaleStartDate  time.Time       `json:"sale_start_date"`
	Source         string          `json:"source"`
	ReportingLabel string          `json:"reporting_label"`
	AssetArtist    string          `json:"asset_artist"`
	ProductTitle   string          `json:"product_title"`
	Earnings       decimal.Decimal `json:"earnings"`
}

// Option é uma opção de seletor. Value vazio representa "All".
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Dashboard reúne tudo que a camada de apresentação precisa para renderizar a página
type Dashboard struct {
	TableID         string          `json:"table_id"`
	FileName        string          `json:"file_name"`
	Rows            int             `json:"rows"`
	Filter          FilterSpec      `json:"filter"`
	LabelOptions    []Option        `json:"label_options"`
	PeriodOptions   []Option        `json:"period_options"`
	Result          AggregateResult `json:"result"`
	SourceBreakdown []RankedEntry   `json:"source_breakdown"`
	ArtistRanking   []RankedEntry   `json:"artist_ranking"`
	TitleRanking    []RankedEntry   `json:"title_ranking"`
	MonthlyTrend    MonthlySeries   `json:"monthly_trend"`
	Details         []DetailRow     `json:"details"`
}

// TableSummary é a resposta resumida após o upload de um arquivo
type TableSummary struct {
	TableID  string   `json:"table_id"`
	FileName string   `json:"file_name"`
	Rows     int      `json:"rows"`
	Labels   []string `json:"labels"`
	Periods  []string `json:"periods"`
}
