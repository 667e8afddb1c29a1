package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockLens/internal/model"
)

const (
	ProviderYahoo = "yahoo"
	ProviderMock  = "mock"
)

// Config holds all application configuration.
type Config struct {
	Report struct {
		Symbol string `yaml:"symbol"`
		Start  string `yaml:"start"` // YYYY-MM-DD, inclusive
		End    string `yaml:"end"`   // YYYY-MM-DD, exclusive
	} `yaml:"report"`
	DataSource struct {
		Provider       string        `yaml:"provider"`
		BaseURL        string        `yaml:"base_url"`
		ExchangeSuffix string        `yaml:"exchange_suffix"`
		Timeout        time.Duration `yaml:"timeout"`
		Retries        int           `yaml:"retries"`
		RetryBackoff   time.Duration `yaml:"retry_backoff"`
	} `yaml:"data_source"`
	Display struct {
		HeadRows int `yaml:"head_rows"`
	} `yaml:"display"`
	Chart struct {
		Output          string `yaml:"output"`
		ServeAddr       string `yaml:"serve_addr"`
		IncreasingColor string `yaml:"increasing_color"`
		DecreasingColor string `yaml:"decreasing_color"`
	} `yaml:"chart"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present) and the YAML file, then applies environment overrides and defaults.
// A missing file of either kind is not an error.
func Load(path, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Display.HeadRows = -1

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("STOCK_SYMBOL"); v != "" {
		c.Report.Symbol = v
	}
	if v := os.Getenv("STOCK_START"); v != "" {
		c.Report.Start = v
	}
	if v := os.Getenv("STOCK_END"); v != "" {
		c.Report.End = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v, ok := os.LookupEnv("EXCHANGE_SUFFIX"); ok {
		c.DataSource.ExchangeSuffix = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT: %w", err)
		}
		c.DataSource.Timeout = d
	}
	if v := os.Getenv("FETCH_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FETCH_RETRIES: %w", err)
		}
		c.DataSource.Retries = n
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CHART_OUTPUT"); v != "" {
		c.Chart.Output = v
	}
	if v := os.Getenv("CHART_SERVE_ADDR"); v != "" {
		c.Chart.ServeAddr = v
	}
	if v := os.Getenv("SCHEDULE_CRON"); v != "" {
		c.Schedule.Cron = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Report.Symbol == "" {
		c.Report.Symbol = "RELIANCE"
	}
	if c.Report.Start == "" {
		c.Report.Start = "2020-01-01"
	}
	if c.Report.End == "" {
		c.Report.End = "2022-12-31"
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.DataSource.ExchangeSuffix == "" {
		if _, set := os.LookupEnv("EXCHANGE_SUFFIX"); !set {
			c.DataSource.ExchangeSuffix = ".NS"
		}
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.DataSource.RetryBackoff == 0 {
		c.DataSource.RetryBackoff = time.Second
	}
	if c.Display.HeadRows < 0 {
		c.Display.HeadRows = 5
	}
	if c.Chart.IncreasingColor == "" {
		c.Chart.IncreasingColor = "green"
	}
	if c.Chart.DecreasingColor == "" {
		c.Chart.DecreasingColor = "red"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Window parses the report dates.
func (c *Config) Window() (start, end time.Time, err error) {
	start, err = time.Parse(model.DateLayout, c.Report.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("report.start: %w", err)
	}
	end, err = time.Parse(model.DateLayout, c.Report.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("report.end: %w", err)
	}
	return start, end, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Report.Symbol) == "" {
		return fmt.Errorf("report.symbol is required")
	}
	start, end, err := c.Window()
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("report.start %s is after report.end %s", c.Report.Start, c.Report.End)
	}
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMock:
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.DataSource.Timeout <= 0 {
		return fmt.Errorf("data_source.timeout must be positive")
	}
	if c.DataSource.Retries < 0 {
		return fmt.Errorf("data_source.retries must not be negative")
	}
	if c.Display.HeadRows < 0 {
		return fmt.Errorf("display.head_rows must not be negative")
	}
	return nil
}
