package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	p := writeCSV(t, "people.csv", []string{
		"name,team,age,active",
		"Ann,red,30,true",
		"Bob,blue,,false",
		"Cid,blue,40,true",
		"Dee,red,20,",
	})
	tbl, err := ReadCSV(p, DefaultOptions())
	require.NoError(t, err)

	sums := Summarize(tbl)
	require.Len(t, sums, 4)

	team := sums[1]
	assert.Equal(t, "team", team.Name)
	assert.Equal(t, 4, team.NonNull)
	assert.Equal(t, 2, team.Unique)
	assert.True(t, team.HasMostCommon)
	assert.Equal(t, "blue", team.MostCommon, "ties resolve to the smallest value")
	assert.False(t, team.HasStats)

	age := sums[2]
	assert.Equal(t, KindNumber, age.Kind)
	assert.Equal(t, 3, age.NonNull)
	assert.Equal(t, 1, age.Missing)
	assert.True(t, age.HasStats)
	assert.InDelta(t, 30.0, age.Mean, 1e-9)
	assert.Equal(t, 20.0, age.Min)
	assert.Equal(t, 40.0, age.Max)
	assert.False(t, age.HasMostCommon)

	active := sums[3]
	assert.Equal(t, KindBool, active.Kind)
	assert.Equal(t, 2, active.Unique)
	assert.False(t, active.HasMostCommon)
}

func TestTopValues(t *testing.T) {
	tops := TopValues(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	assert.Equal(t, []CategoryCount{{"c", 5}, {"a", 2}, {"b", 2}}, tops)
	assert.Len(t, TopValues(map[string]int{"x": 1, "y": 1}, 0), 2)
}
