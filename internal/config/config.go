package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Source loading
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`

	// Workbook presentation
	WidthCap           float64 `mapstructure:"width_cap" yaml:"width_cap"`
	ChartAnchor        string  `mapstructure:"chart_anchor" yaml:"chart_anchor"`
	DataHeaderColor    string  `mapstructure:"data_header_color" yaml:"data_header_color"`
	SummaryHeaderColor string  `mapstructure:"summary_header_color" yaml:"summary_header_color"`
	HeaderFontColor    string  `mapstructure:"header_font_color" yaml:"header_font_color"`
	BarChartStyle      int     `mapstructure:"bar_chart_style" yaml:"bar_chart_style"`
	PivotChartStyle    int     `mapstructure:"pivot_chart_style" yaml:"pivot_chart_style"`
	Creator            string  `mapstructure:"creator" yaml:"creator"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".sheetloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sheetloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		WidthCap:           50,
		ChartAnchor:        "E5",
		DataHeaderColor:    "4472C4",
		SummaryHeaderColor: "70AD47",
		HeaderFontColor:    "FFFFFF",
		BarChartStyle:      10,
		PivotChartStyle:    11,
		Creator:            "sheetloom",
	}
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults. A .env file in
// the working directory, if present, is loaded into the environment first.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SHEETLOOM")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("width_cap", d.WidthCap)
	v.SetDefault("chart_anchor", d.ChartAnchor)
	v.SetDefault("data_header_color", d.DataHeaderColor)
	v.SetDefault("summary_header_color", d.SummaryHeaderColor)
	v.SetDefault("header_font_color", d.HeaderFontColor)
	v.SetDefault("bar_chart_style", d.BarChartStyle)
	v.SetDefault("pivot_chart_style", d.PivotChartStyle)
	v.SetDefault("creator", d.Creator)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
