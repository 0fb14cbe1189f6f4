// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nomes das colunas obrigatórias no arquivo exportado pela distribuidora
const (
	ColumnSaleStartDate  = "Sale Start date"
	ColumnSaleEndDate    = "Sale End date"
	ColumnReportingLabel = "Reporting Label"
	ColumnSource         = "Source"
	ColumnAssetArtist    = "Asset Artist"
	ColumnProductTitle   = "Product Title"
	ColumnEarnings       = "Your Earnings"
)

// RequiredColumns lista as colunas na ordem em que são validadas
var RequiredColumns = []string{
	ColumnSaleStartDate,
	ColumnSaleEndDate,
	ColumnReportingLabel,
	ColumnSource,
	ColumnAssetArtist,
	ColumnProductTitle,
	ColumnEarnings,
}

// PeriodLayout é o formato do período mensal (YYYY-MM)
const PeriodLayout = "2006-01"

// Record representa uma linha do relatório de vendas
type Record struct {
	SaleStartDate  time.Time       `json:"sale_start_date"`
	SaleEndDate    time.Time       `json:"sale_end_date"`
	ReportingLabel string          `json:"reporting_label"`
	Source         string          `json:"source"`
	AssetArtist    string          `json:"asset_artist"`
	ProductTitle   string          `json:"product_title"`
	Earnings       decimal.Decimal `json:"earnings"`
	Period         string          `json:"period"`
}

// Table é o relatório carregado em memória, preservando a ordem original das linhas
type Table struct {
	ID       string    `json:"id"`
	FileName string    `json:"file_name"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  []Record  `json:"records"`
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
