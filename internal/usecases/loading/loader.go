// Package loading converte o CSV exportado pela distribuidora em uma domain.Table
package loading

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

const utf8BOM = "\ufeff"

// dateLayouts são os formatos aceitos para as colunas de data, em ordem de tentativa
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Loader carrega relatórios de vendas
type Loader interface {
	Load(r io.Reader, fileName string) (*domain.Table, error)
}

type CSVLoader struct {
	now func() time.Time
}

func NewCSVLoader() *CSVLoader {
	return &CSVLoader{now: time.Now}
}

// Load é um atalho para NewCSVLoader().Load sem nome de arquivo
func Load(r io.Reader) (*domain.Table, error) {
	return NewCSVLoader().Load(r, "")
}

// Load lê o CSV inteiro e retorna a tabela normalizada.
// Qualquer linha inválida interrompe o carregamento; nunca há tabela parcial.
func (l *CSVLoader) Load(r io.Reader, fileName string) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, errors.Wrap(err, "loader: failed to read header")
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0)
	row := 0
	for {
		line, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, errors.Wrapf(readErr, "loader: failed to read row %d", row+1)
		}
		row++

		record, err := parseRecord(row, line, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "loader: failed to generate table id")
	}

	table := &domain.Table{
		ID:       id,
		FileName: fileName,
		LoadedAt: l.now(),
		Records:  records,
	}

	log.L.WithFields(log.Fields{
		"table_id": table.ID,
		"file":     fileName,
		"rows":     len(records),
	}).Info("loader: relatório carregado com sucesso")

	return table, nil
}

// indexColumns mapeia cada coluna obrigatória para sua posição no cabeçalho
func indexColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, exists := positions[name]; !exists {
			positions[name] = i
		}
	}

	columns := make(map[string]int, len(domain.RequiredColumns))
	for _, name := range domain.RequiredColumns {
		idx, ok := positions[name]
		if !ok {
			return nil, &MissingColumnError{Column: name}
		}
		columns[name] = idx
	}
	return columns, nil
}

func parseRecord(row int, line []string, columns map[string]int) (domain.Record, error) {
	cell := func(column string) string {
		idx := columns[column]
		if idx < len(line) {
			return strings.TrimSpace(line[idx])
		}
		return ""
	}

	startDate, err := parseDate(row, domain.ColumnSaleStartDate, cell(domain.ColumnSaleStartDate))
	if err != nil {
		return domain.Record{}, err
	}

	endDate, err := parseDate(row, domain.ColumnSaleEndDate, cell(domain.ColumnSaleEndDate))
	if err != nil {
		return domain.Record{}, err
	}

	earnings, err := parseEarnings(row, cell(domain.ColumnEarnings))
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		SaleStartDate:  startDate,
		SaleEndDate:    endDate,
		ReportingLabel: cell(domain.ColumnReportingLabel),
		Source:         cell(domain.ColumnSource),
		AssetArtist:    cell(domain.ColumnAssetArtist),
		ProductTitle:   cell(domain.ColumnProductTitle),
		Earnings:       earnings,
		Period:         startDate.Format(domain.PeriodLayout),
	}, nil
}

func parseDate(row int, column, value string) (time.Time, error) {
	var lastErr error
	if value != "" {
		for _, layout := range dateLayouts {
			date, err := time.Parse(layout, value)
			if err == nil {
				return date, nil
			}
			lastErr = err
		}
	}

	return time.Time{}, &MalformedDateError{Row: row, Column: column, Value: value, Err: lastErr}
}

// parseEarnings trata célula vazia como zero, igual a uma soma que ignora valores ausentes
func parseEarnings(row int, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &MalformedNumberError{Row: row, Column: domain.ColumnEarnings, Value: value, Err: err}
	}
	return amount, nil
}
