package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metricRow struct {
	Key    string
	Metric float64
}

func metrics(t *testing.T, tbl *Table) []metricRow {
	t.Helper()
	out := make([]metricRow, 0, tbl.Len())
	for _, row := range tbl.Rows {
		require.Len(t, row, 2)
		f, ok := row[1].Float()
		require.True(t, ok, "metric %v is not numeric", row[1])
		out = append(out, metricRow{Key: row[0].String(), Metric: f})
	}
	return out
}

func TestCountBy(t *testing.T) {
	src := sampleTable(t)
	got, err := CountBy(src, "country")
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "Count"}, got.ColumnNames())
	assert.Equal(t, []metricRow{
		{"USA", 4}, {"Canada", 2}, {"UK", 2}, {"Germany", 1}, {"France", 1},
	}, metrics(t, got))
	assert.Less(t, got.Len(), src.Len())
}

func TestCountByNullKeyIsOwnGroup(t *testing.T) {
	src := NewTable("t", []Column{{Name: "k", Kind: KindText}}, [][]Cell{
		{TextCell("a")}, {NullCell}, {TextCell("a")}, {NullCell}, {NullCell}, {TextCell("b")},
	})
	got, err := CountBy(src, "k")
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.True(t, got.Rows[0][0].IsNull())
	assert.Equal(t, 3.0, got.Rows[0][1].Num)
	assert.Equal(t, "a", got.Rows[1][0].Text)
	assert.Equal(t, "b", got.Rows[2][0].Text)
}

func TestPivotNullKeyIsOwnGroup(t *testing.T) {
	src := NewTable("t", []Column{{Name: "k", Kind: KindText}, {Name: "v", Kind: KindNumber}}, [][]Cell{
		{TextCell("a"), NumberCell(1)},
		{NullCell, NumberCell(5)},
		{TextCell("b"), NumberCell(5)},
		{NullCell, NumberCell(2)},
		{TextCell("a"), NumberCell(3)},
	})
	got, err := Pivot(src, "k", "v", ReducerSum)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	// null (7) first, then b (5) and a (4)
	assert.True(t, got.Rows[0][0].IsNull())
	assert.Equal(t, 7.0, got.Rows[0][1].Num)
	assert.Equal(t, "b", got.Rows[1][0].Text)
	assert.Equal(t, "a", got.Rows[2][0].Text)

	// equal sums keep first-seen order, with the null group placed where it was first met
	cnt, err := Pivot(src, "k", "v", ReducerCount)
	require.NoError(t, err)
	require.Equal(t, 3, cnt.Len())
	assert.Equal(t, "a", cnt.Rows[0][0].Text)
	assert.True(t, cnt.Rows[1][0].IsNull())
	assert.Equal(t, "b", cnt.Rows[2][0].Text)
}

func TestNegativeZeroGroupsWithZero(t *testing.T) {
	src := NewTable("t", []Column{{Name: "k", Kind: KindNumber}}, [][]Cell{
		{NumberCell(0)}, {NumberCell(math.Copysign(0, -1))}, {NumberCell(0.0)},
	})
	got, err := CountBy(src, "k")
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 3.0, got.Rows[0][1].Num)

	uniq, err := Pivot(NewTable("t", []Column{{Name: "g", Kind: KindText}, src.Columns[0]}, [][]Cell{
		{TextCell("x"), NumberCell(0)}, {TextCell("x"), NumberCell(math.Copysign(0, -1))},
	}), "g", "k", ReducerUnique)
	require.NoError(t, err)
	assert.Equal(t, 1.0, uniq.Rows[0][1].Num)
}

func TestProjectKeepsEveryRow(t *testing.T) {
	src := sampleTable(t)
	got, err := Project(src, "country", "revenue")
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "revenue"}, got.ColumnNames())
	require.Equal(t, src.Len(), got.Len())
	m := metrics(t, got)
	assert.Equal(t, metricRow{"USA", 1100000}, m[0])
	assert.Equal(t, metricRow{"USA", 1000000}, m[1])
	assert.Equal(t, metricRow{"Germany", 400000}, m[len(m)-2])
	assert.Equal(t, metricRow{"Canada", 300000}, m[len(m)-1])
	for i := 1; i < len(m); i++ {
		assert.GreaterOrEqual(t, m[i-1].Metric, m[i].Metric)
	}
}

func TestProjectStableOnTies(t *testing.T) {
	src := NewTable("t", []Column{{Name: "k", Kind: KindText}, {Name: "v", Kind: KindNumber}}, [][]Cell{
		{TextCell("first"), NumberCell(1)},
		{TextCell("null"), NullCell},
		{TextCell("second"), NumberCell(1)},
		{TextCell("top"), NumberCell(2)},
	})
	got, err := Project(src, "k", "v")
	require.NoError(t, err)
	var keys []string
	for _, row := range got.Rows {
		keys = append(keys, row[0].Text)
	}
	assert.Equal(t, []string{"top", "first", "second", "null"}, keys)
}

func TestPivotReducers(t *testing.T) {
	src := sampleTable(t)
	tests := []struct {
		name   string
		target string
		agg    string
		column string
		want   []metricRow
	}{
		{"count", "org_name", "count", "org_name_count", []metricRow{
			{"USA", 4}, {"Canada", 2}, {"UK", 2}, {"Germany", 1}, {"France", 1},
		}},
		{"sum", "revenue", "sum", "revenue_sum", []metricRow{
			{"USA", 3450000}, {"UK", 1400000}, {"Canada", 900000}, {"France", 900000}, {"Germany", 400000},
		}},
		{"unique", "org_name", "unique", "org_name_unique", []metricRow{
			{"USA", 4}, {"Canada", 2}, {"UK", 2}, {"Germany", 1}, {"France", 1},
		}},
		{"unknown falls back to unique", "revenue", "bogus", "revenue_unique", []metricRow{
			{"USA", 4}, {"Canada", 2}, {"UK", 2}, {"Germany", 1}, {"France", 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pivot(src, "country", tt.target, ParseReducer(tt.agg))
			require.NoError(t, err)
			assert.Equal(t, []string{"country", tt.column}, got.ColumnNames())
			assert.Equal(t, tt.want, metrics(t, got))
		})
	}
}

func TestPivotMean(t *testing.T) {
	got, err := Pivot(sampleTable(t), "country", "products", ReducerMean)
	require.NoError(t, err)
	assert.Equal(t, "products_avg", got.Columns[1].Name)
	for _, m := range metrics(t, got) {
		if m.Key == "USA" {
			assert.InDelta(t, 5.75, m.Metric, 0.01)
			return
		}
	}
	t.Fatalf("USA group missing")
}

func TestPivotNullHandling(t *testing.T) {
	src := NewTable("t", []Column{{Name: "k", Kind: KindText}, {Name: "v", Kind: KindNumber}}, [][]Cell{
		{TextCell("a"), NumberCell(2)},
		{TextCell("a"), NullCell},
		{TextCell("b"), NullCell},
		{TextCell("a"), NumberCell(2)},
	})

	sum, err := Pivot(src, "k", "v", ReducerSum)
	require.NoError(t, err)
	assert.Equal(t, []metricRow{{"a", 4}, {"b", 0}}, metrics(t, sum))

	mean, err := Pivot(src, "k", "v", ReducerMean)
	require.NoError(t, err)
	assert.Equal(t, 2.0, mean.Rows[0][1].Num)
	assert.True(t, mean.Rows[1][1].IsNull(), "mean of an all-null group is null")

	count, err := Pivot(src, "k", "v", ReducerCount)
	require.NoError(t, err)
	assert.Equal(t, []metricRow{{"a", 2}, {"b", 0}}, metrics(t, count))

	uniq, err := Pivot(src, "k", "v", ReducerUnique)
	require.NoError(t, err)
	assert.Equal(t, []metricRow{{"a", 1}, {"b", 0}}, metrics(t, uniq))
}

func TestPivotNonNumericTarget(t *testing.T) {
	_, err := Pivot(sampleTable(t), "country", "org_name", ReducerSum)
	var nn *NonNumericColumnError
	require.ErrorAs(t, err, &nn)
	assert.Equal(t, "org_name", nn.Column)
}

func TestColumnNotFoundEitherPosition(t *testing.T) {
	src := sampleTable(t)
	cases := []struct {
		name    string
		run     func() error
		missing string
	}{
		{"count key", func() error { _, err := CountBy(src, "invalid_col"); return err }, "invalid_col"},
		{"project key", func() error { _, err := Project(src, "invalid_col", "revenue"); return err }, "invalid_col"},
		{"project target", func() error { _, err := Project(src, "country", "invalid_col"); return err }, "invalid_col"},
		{"pivot key", func() error { _, err := Pivot(src, "invalid_col", "revenue", ReducerSum); return err }, "invalid_col"},
		{"pivot target", func() error { _, err := Pivot(src, "country", "nope", ReducerSum); return err }, "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cnf *ColumnNotFoundError
			require.ErrorAs(t, tc.run(), &cnf)
			assert.Equal(t, tc.missing, cnf.Column)
		})
	}
}

func TestParseReducer(t *testing.T) {
	assert.Equal(t, ReducerCount, ParseReducer("count"))
	assert.Equal(t, ReducerSum, ParseReducer("sum"))
	assert.Equal(t, ReducerMean, ParseReducer("mean"))
	assert.Equal(t, ReducerUnique, ParseReducer("unique"))
	assert.Equal(t, ReducerUnique, ParseReducer("Sum"))
	assert.Equal(t, ReducerUnique, ParseReducer(""))
	assert.Equal(t, "revenue_avg", ReducerMean.MetricName("revenue"))
}
