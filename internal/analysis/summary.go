package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// ColumnSummary captures per-column statistics for the summary sheet.
type ColumnSummary struct {
	Name    string
	Kind    Kind
	NonNull int
	Missing int
	Unique  int
	// MostCommon is set for text columns only.
	MostCommon    string
	HasMostCommon bool
	// Numeric stats, set when HasStats is true.
	Mean, Min, Max float64
	HasStats       bool
}

// CategoryCount is a value and how often it occurs.
type CategoryCount struct {
	Value string
	Count int
}

// Summarize computes a ColumnSummary for every column of t, in column order.
func Summarize(t *Table) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(t.Columns))
	for j, col := range t.Columns {
		s := ColumnSummary{Name: col.Name, Kind: col.Kind}
		distinct := map[string]struct{}{}
		cats := map[string]int{}
		var nums []float64
		for _, row := range t.Rows {
			c := row[j]
			if c.IsNull() {
				s.Missing++
				continue
			}
			s.NonNull++
			distinct[c.key()] = struct{}{}
			switch col.Kind {
			case KindText:
				cats[c.Text]++
			case KindNumber:
				nums = append(nums, c.Num)
			}
		}
		s.Unique = len(distinct)
		if col.Kind == KindText {
			if tops := TopValues(cats, 1); len(tops) > 0 {
				s.MostCommon = tops[0].Value
				s.HasMostCommon = true
			}
		}
		if len(nums) > 0 {
			mean, err1 := stats.Mean(nums)
			lo, err2 := stats.Min(nums)
			hi, err3 := stats.Max(nums)
			if err1 == nil && err2 == nil && err3 == nil {
				s.Mean, s.Min, s.Max = mean, lo, hi
				s.HasStats = true
			}
		}
		out = append(out, s)
	}
	return out
}

// TopValues returns up to n values ordered by count descending, then value
// ascending. n <= 0 returns all of them.
func TopValues(cats map[string]int, n int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if n > 0 && len(tops) > n {
		tops = tops[:n]
	}
	return tops
}
