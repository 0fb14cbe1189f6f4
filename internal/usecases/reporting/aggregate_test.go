package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(start, label, source, artist, title, earnings string) domain.Record {
	date, _ := time.Parse(time.DateOnly, start)
	return domain.Record{
		SaleStartDate:  date,
		SaleEndDate:    date,
		ReportingLabel: label,
		Source:         source,
		AssetArtist:    artist,
		ProductTitle:   title,
		Earnings:       dec(earnings),
		Period:         date.Format(domain.PeriodLayout),
	}
}

func sampleTable() *domain.Table {
	return &domain.Table{
		ID: "tbl001",
		Records: []domain.Record{
			record("2024-02-10", "L1", "Spotify", "A1", "Song1", "5.00"),
			record("2024-01-15", "L1", "Spotify", "A1", "Song2", "7.50"),
			record("2024-01-20", "L2", "Apple Music", "A2", "Song3", "3.25"),
			record("2024-03-01", "L2", "Deezer", "A2", "Song3", "-1.25"),
			record("2024-02-11", "All", "YouTube", "A3", "Song4", "0.00"),
		},
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "esperado %s, obtido %s", expected, actual)
}

func TestAggregate_SingleRecordRoundTrip(t *testing.T) {
	table := &domain.Table{Records: []domain.Record{
		record("2024-01-15", "L1", "Spotify", "A1", "Song1", "10.00"),
	}}

	result := Aggregate(table, domain.FilterSpec{})

	assertDecimal(t, "10.00", result.Total)
	require.Len(t, result.BySource, 1)
	require.Len(t, result.ByArtist, 1)
	require.Len(t, result.ByTitle, 1)
	assertDecimal(t, "10.00", result.BySource["Spotify"])
	assertDecimal(t, "10.00", result.ByArtist["A1"])
	assertDecimal(t, "10.00", result.ByTitle["Song1"])

	series := MonthlyTrend(table)
	require.Len(t, series, 1)
	assert.Equal(t, "2024-01", series[0].Period)
	assertDecimal(t, "10.00", series[0].Earnings)
}

func TestAggregate_SumsSameSource(t *testing.T) {
	table := &domain.Table{Records: []domain.Record{
		record("2024-01-15", "L1", "Spotify", "A1", "Song1", "5.00"),
		record("2024-01-16", "L1", "Spotify", "A2", "Song2", "7.50"),
	}}

	result := Aggregate(table, domain.FilterSpec{})

	require.Len(t, result.BySource, 1)
	assertDecimal(t, "12.50", result.BySource["Spotify"])
}

func TestAggregate_GroupSumsEqualTotal(t *testing.T) {
	table := sampleTable()
	result := Aggregate(table, domain.NewFilterSpec("", ""))

	expected := decimal.Zero
	for _, r := range table.Records {
		expected = expected.Add(r.Earnings)
	}
	assertDecimal(t, expected.String(), result.Total)

	for name, sums := range map[string]map[string]decimal.Decimal{
		"source": result.BySource,
		"artist": result.ByArtist,
		"title":  result.ByTitle,
	} {
		total := decimal.Zero
		for _, v := range sums {
			total = total.Add(v)
		}
		assert.True(t, total.Equal(result.Total), "soma por %s difere do total", name)
	}
}

func TestAggregate_Filters(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name     string
		filter   domain.FilterSpec
		total    string
		sources  []string
		validate func(t *testing.T, result domain.AggregateResult)
	}{
		{
			name:    "filtro por label",
			filter:  domain.NewFilterSpec("L2", ""),
			total:   "2.00",
			sources: []string{"Apple Music", "Deezer"},
		},
		{
			name:    "filtro por período",
			filter:  domain.NewFilterSpec("", "2024-01"),
			total:   "10.75",
			sources: []string{"Spotify", "Apple Music"},
		},
		{
			name:    "filtro por label e período",
			filter:  domain.NewFilterSpec("L1", "2024-02"),
			total:   "5.00",
			sources: []string{"Spotify"},
		},
		{
			name:    "label literalmente chamado All",
			filter:  domain.NewFilterSpec("All", ""),
			total:   "0",
			sources: []string{"YouTube"},
		},
		{
			name:    "grupo com soma negativa continua presente",
			filter:  domain.NewFilterSpec("", "2024-03"),
			total:   "-1.25",
			sources: []string{"Deezer"},
		},
		{
			name:    "período inexistente",
			filter:  domain.NewFilterSpec("", "1999-12"),
			total:   "0",
			sources: []string{},
			validate: func(t *testing.T, result domain.AggregateResult) {
				assert.Empty(t, result.ByArtist)
				assert.Empty(t, result.ByTitle)
				assert.NotNil(t, result.BySource)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Aggregate(table, tt.filter)

			assertDecimal(t, tt.total, result.Total)
			keys := make([]string, 0, len(result.BySource))
			for k := range result.BySource {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.sources, keys)

			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestAggregate_NilTable(t *testing.T) {
	result := Aggregate(nil, domain.FilterSpec{})

	assert.True(t, result.Total.IsZero())
	assert.NotNil(t, result.BySource)
	assert.Empty(t, result.BySource)
}

func TestMonthlyTrend(t *testing.T) {
	table := sampleTable()
	series := MonthlyTrend(table)

	require.Len(t, series, 3)
	assert.Equal(t, "2024-01", series[0].Period)
	assertDecimal(t, "10.75", series[0].Earnings)
	assert.Equal(t, "2024-02", series[1].Period)
	assertDecimal(t, "5.00", series[1].Earnings)
	assert.Equal(t, "2024-03", series[2].Period)
	assertDecimal(t, "-1.25", series[2].Earnings)

	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Period, series[i].Period)
	}
}

func TestMonthlyTrend_IgnoresFilter(t *testing.T) {
	table := sampleTable()
	expected := MonthlyTrend(table)

	for _, filter := range []domain.FilterSpec{
		domain.NewFilterSpec("L1", ""),
		domain.NewFilterSpec("", "2024-02"),
		domain.NewFilterSpec("L2", "2024-03"),
	} {
		dashboard := BuildDashboard(table, filter)
		assert.Equal(t, expected, dashboard.MonthlyTrend)
	}
}

func TestPercentage(t *testing.T) {
	assertDecimal(t, "33.33", Percentage(dec("1"), dec("3")))
	assertDecimal(t, "66.67", Percentage(dec("2"), dec("3")))
	assertDecimal(t, "100", Percentage(dec("12.5"), dec("12.5")))
	assertDecimal(t, "0", Percentage(dec("5"), decimal.Zero))
}

func TestPercentage_HalfRoundsToEven(t *testing.T) {
	assertDecimal(t, "0.12", Percentage(dec("1"), dec("800")))
	assertDecimal(t, "0.38", Percentage(dec("3"), dec("800")))
	assertDecimal(t, "-0.12", Percentage(dec("-1"), dec("800")))
	assertDecimal(t, "12.34", Percentage(dec("12.345"), dec("100")))
}

func TestRank(t *testing.T) {
	sums := map[string]decimal.Decimal{
		"B": dec("5"),
		"A": dec("5"),
		"C": dec("10"),
		"D": dec("-5"),
	}

	ranking := Rank(sums, dec("15"))

	require.Len(t, ranking, 4)
	assert.Equal(t, []string{"C", "A", "B", "D"}, []string{ranking[0].Key, ranking[1].Key, ranking[2].Key, ranking[3].Key})
	assertDecimal(t, "66.67", ranking[0].Percentage)
	assertDecimal(t, "33.33", ranking[1].Percentage)
	assertDecimal(t, "-33.33", ranking[3].Percentage)
}

func TestLabelsAndPeriods_FirstAppearanceOrder(t *testing.T) {
	table := sampleTable()

	assert.Equal(t, []string{"L1", "L2", "All"}, Labels(table))
	assert.Equal(t, []string{"2024-02", "2024-01", "2024-03"}, Periods(table))
	assert.Empty(t, Labels(nil))
}
