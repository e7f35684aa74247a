package dashboard

import (
	"testing"
	"time"

	"github.com/mauv0809/sdg-dashboard/internal/dataset"
	"github.com/mauv0809/sdg-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func day(s string) time.Time {
	t, _ := models.ParseDay(s)
	return t
}

func fixture() *dataset.Dataset {
	mk := func(company, date string, sts, lts float64) models.Observation {
		o := models.Observation{
			Company:   company,
			Sector:    "Information Technology",
			Ticker:    "AAPL",
			Timestamp: day(date),
			STS:       dec(sts),
			LTS:       dec(lts),
			SDGMean:   dec(sts / 2),
		}
		for i := range o.SDG {
			o.SDG[i] = dec(float64(i%3) - 1)
		}
		return o
	}
	return dataset.New([]models.Observation{
		mk("Apple Inc.", "2024-01-01", 0.123456, -1),
		mk("Apple Inc.", "2024-01-03", -0.5, -2),
		mk("Microsoft", "2024-01-02", 2, 2),
	})
}

func TestStats_Found(t *testing.T) {
	v := Stats(fixture(), "Apple Inc.", day("2024-01-01"))

	require.True(t, v.Found)
	assert.Empty(t, v.Message)
	require.NotNil(t, v.Info)
	assert.Equal(t, CompanyInfo{Name: "Apple Inc.", Sector: "Information Technology", Ticker: "AAPL", Date: "2024-01-01"}, *v.Info)
	assert.Equal(t, "0.1235", v.STS)
	assert.Equal(t, "-1.0000", v.LTS)

	require.Len(t, v.STSGauge.Data, 1)
	// mean over the company's history: (0.123456 - 0.5) / 2
	assert.InDelta(t, -0.188272, *v.STSGauge.Data[0].Value, 1e-9)
	assert.Equal(t, "red", v.STSGauge.Data[0].Gauge.Threshold.Line.Color)
	assert.InDelta(t, -1.5, *v.LTSGauge.Data[0].Value, 1e-9)
	assert.Len(t, v.SDGBar.Data, 1)
}

func TestStats_NoRow(t *testing.T) {
	v := Stats(fixture(), "Apple Inc.", day("2024-01-02"))

	assert.False(t, v.Found)
	assert.Equal(t, NoDataForDate, v.Message)
	assert.Nil(t, v.Info)
	assert.True(t, v.STSGauge.IsEmpty())
	assert.True(t, v.LTSGauge.IsEmpty())
	assert.True(t, v.SDGBar.IsEmpty())
}

func TestStats_MissingScoresGuardMeans(t *testing.T) {
	ds := dataset.New([]models.Observation{{Company: "Apple Inc.", Timestamp: day("2024-01-01")}})
	v := Stats(ds, "Apple Inc.", day("2024-01-01"))

	assert.True(t, v.Found)
	assert.Equal(t, "n/a", v.STS)
	assert.True(t, v.STSGauge.IsEmpty())
	assert.True(t, v.LTSGauge.IsEmpty())
}

func TestTimeSeries(t *testing.T) {
	v := TimeSeries(fixture(), "Apple Inc.", day("2023-12-01"), day("2024-01-31"))

	assert.Equal(t, 3, v.Days)
	assert.Equal(t, 1, v.Filled)
	assert.Equal(t, "2023-12-01", v.Start)
	require.Len(t, v.STSSeries.Data, 1)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03"}, v.STSSeries.Data[0].X)
	assert.Equal(t, "orange", v.SDGSeries.Data[0].Line.Color)

	empty := TimeSeries(fixture(), "Apple Inc.", day("2020-01-01"), day("2020-02-01"))
	assert.Equal(t, 0, empty.Days)
	assert.True(t, empty.STSSeries.IsEmpty())
}

func TestSelect(t *testing.T) {
	ds := fixture()

	assert.Equal(t, "Microsoft", SelectCompany(ds, "Microsoft"))
	assert.Equal(t, "Apple Inc.", SelectCompany(ds, "Nope"))
	assert.Equal(t, "Apple Inc.", SelectCompany(ds, ""))

	d, err := SelectDay(ds, "")
	require.NoError(t, err)
	assert.Equal(t, day("2024-01-03"), d)

	_, err = SelectDay(ds, "03/01/2024")
	assert.Error(t, err)

	from, to, err := SelectRange(ds, "", "")
	require.NoError(t, err)
	assert.Equal(t, day("2023-01-03"), from)
	assert.Equal(t, day("2024-01-03"), to)

	from, _, err = SelectRange(ds, "2023-06-01", "")
	require.NoError(t, err)
	assert.Equal(t, day("2023-06-01"), from)

	_, _, err = SelectRange(ds, "", "bad")
	assert.Error(t, err)
}
