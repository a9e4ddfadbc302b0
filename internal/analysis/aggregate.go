package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Reducer selects the per-group metric of a pivot.
type Reducer int

const (
	// ReducerUnique counts distinct non-null values. It is also the reducer
	// chosen for any name ParseReducer does not recognize.
	ReducerUnique Reducer = iota
	// ReducerCount counts non-null values.
	ReducerCount
	// ReducerSum adds values.
	ReducerSum
	// ReducerMean averages values.
	ReducerMean
)

// ParseReducer maps an aggregation name to a Reducer. Unknown names yield
// ReducerUnique rather than an error.
func ParseReducer(name string) Reducer {
	switch name {
	case "count":
		return ReducerCount
	case "sum":
		return ReducerSum
	case "mean":
		return ReducerMean
	default:
		return ReducerUnique
	}
}

func (r Reducer) String() string {
	switch r {
	case ReducerCount:
		return "count"
	case ReducerSum:
		return "sum"
	case ReducerMean:
		return "mean"
	default:
		return "unique"
	}
}

// MetricName returns the derived column name for a reduced target.
func (r Reducer) MetricName(target string) string {
	switch r {
	case ReducerCount:
		return target + "_count"
	case ReducerSum:
		return target + "_sum"
	case ReducerMean:
		return target + "_avg"
	default:
		return target + "_unique"
	}
}

// CountColumn is the metric column name of CountBy.
const CountColumn = "Count"

type group struct {
	key  Cell
	rows []int
}

// groupRows partitions row indexes by the value in column col, keeping groups
// in first-seen order. Null keys form their own group.
func groupRows(t *Table, col int) []*group {
	byKey := make(map[string]*group)
	var order []*group
	for i, row := range t.Rows {
		c := row[col]
		k := c.key()
		g, ok := byKey[k]
		if !ok {
			g = &group{key: c}
			byKey[k] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, i)
	}
	return order
}

// CountBy returns one row per distinct groupKey value with the number of rows
// in that group, sorted by count descending.
func CountBy(t *Table, groupKey string) (*Table, error) {
	ki, err := t.Index(groupKey)
	if err != nil {
		return nil, err
	}
	groups := groupRows(t, ki)
	rows := make([][]Cell, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []Cell{g.key, NumberCell(float64(len(g.rows)))})
	}
	sortByMetric(rows)
	cols := []Column{{Name: t.Columns[ki].Name, Kind: t.Columns[ki].Kind}, {Name: CountColumn, Kind: KindNumber}}
	return NewTable(t.Name, cols, rows), nil
}

// Project returns the groupKey and target columns verbatim, one row per source
// row, sorted by target descending. Rows are not grouped.
func Project(t *Table, groupKey, target string) (*Table, error) {
	ki, err := t.Index(groupKey)
	if err != nil {
		return nil, err
	}
	ti, err := t.Index(target)
	if err != nil {
		return nil, err
	}
	rows := make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = []Cell{row[ki], row[ti]}
	}
	sortByMetric(rows)
	cols := []Column{t.Columns[ki], t.Columns[ti]}
	return NewTable(t.Name, cols, rows), nil
}

// Pivot groups by groupKey and reduces target within each group.
func Pivot(t *Table, groupKey, target string, r Reducer) (*Table, error) {
	ki, err := t.Index(groupKey)
	if err != nil {
		return nil, err
	}
	ti, err := t.Index(target)
	if err != nil {
		return nil, err
	}
	if (r == ReducerSum || r == ReducerMean) && t.Columns[ti].Kind == KindText {
		return nil, &NonNumericColumnError{Column: target, Reducer: r}
	}
	groups := groupRows(t, ki)
	rows := make([][]Cell, 0, len(groups))
	for _, g := range groups {
		vals := make([]Cell, 0, len(g.rows))
		for _, ri := range g.rows {
			vals = append(vals, t.Rows[ri][ti])
		}
		rows = append(rows, []Cell{g.key, reduce(vals, r)})
	}
	sortByMetric(rows)
	cols := []Column{
		{Name: t.Columns[ki].Name, Kind: t.Columns[ki].Kind},
		{Name: r.MetricName(target), Kind: KindNumber},
	}
	return NewTable(t.Name, cols, rows), nil
}

func reduce(vals []Cell, r Reducer) Cell {
	switch r {
	case ReducerCount:
		n := 0
		for _, c := range vals {
			if !c.IsNull() {
				n++
			}
		}
		return NumberCell(float64(n))
	case ReducerSum, ReducerMean:
		nums := make([]float64, 0, len(vals))
		for _, c := range vals {
			if f, ok := c.Float(); ok {
				nums = append(nums, f)
			}
		}
		if len(nums) == 0 {
			if r == ReducerSum {
				return NumberCell(0)
			}
			return NullCell
		}
		var (
			x   float64
			err error
		)
		if r == ReducerSum {
			x, err = stats.Sum(nums)
		} else {
			x, err = stats.Mean(nums)
		}
		if err != nil {
			return NullCell
		}
		return NumberCell(x)
	default:
		seen := make(map[string]struct{}, len(vals))
		for _, c := range vals {
			if !c.IsNull() {
				seen[c.key()] = struct{}{}
			}
		}
		return NumberCell(float64(len(seen)))
	}
}

// sortByMetric orders two-column rows by the second cell, descending. Equal
// metrics keep their input order and nulls go last.
func sortByMetric(rows [][]Cell) {
	sort.SliceStable(rows, func(i, j int) bool {
		return greater(rows[i][1], rows[j][1])
	})
}

func greater(a, b Cell) bool {
	if a.IsNull() {
		return false
	}
	if b.IsNull() {
		return true
	}
	af, aok := a.Float()
	bf, bok := b.Float()
	if aok && bok {
		return af > bf
	}
	return a.String() > b.String()
}
