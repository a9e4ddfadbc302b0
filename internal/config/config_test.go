package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	c := Defaults()
	c.ChartAnchor = "H2"
	c.WidthCap = 40
	c.Delimiter = ";"
	require.NoError(t, Save(c, p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "H2", got.ChartAnchor)
	assert.Equal(t, 40.0, got.WidthCap)
	assert.Equal(t, ";", got.Delimiter)
	assert.Equal(t, 11, got.PivotChartStyle)
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, Save(Defaults(), ""))
	t.Setenv("SHEETLOOM_CHART_ANCHOR", "A20")
	t.Setenv("SHEETLOOM_MAX_ROWS", "7")

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "A20", got.ChartAnchor)
	assert.Equal(t, 7, got.MaxRows)
	assert.FileExists(t, filepath.Join(home, ".sheetloom", "config.yaml"))
}
