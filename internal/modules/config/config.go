package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const configFilePathENV = "CONFIG_FILE"

// Режимы прогона: dual-EMA breadth или HH/LL по скользящему окну.
const (
	ModeEMA     = "ema"
	ModeExtrema = "extrema"
)

// Config — вся поверхность настройки одного прогона.
// База — yaml из configs/ (если задан CONFIG_FILE), поверх — переменные окружения.
type Config struct {
	// Вселенная и история
	QuoteAsset  string `yaml:"quote_asset"` // QUOTE_ASSET, напр. USDT
	Interval    string `yaml:"interval"`    // INTERVAL, дневки: 1d
	StartDate   string `yaml:"start_date"`  // START_DATE, YYYY-MM-DD
	KlinesLimit int    `yaml:"klines_limit"`
	Concurrency int    `yaml:"concurrency"`

	// Индикаторы
	Mode    string `yaml:"mode"` // ema | extrema
	EMAFast int    `yaml:"ema_fast"`
	EMASlow int    `yaml:"ema_slow"`
	Window  int    `yaml:"window"` // окно HH/LL для режима extrema

	OutDir   string `yaml:"out_dir"`
	LogLevel string `yaml:"log_level"`

	Binance struct {
		BaseURL     string        `yaml:"base_url"`
		Timeout     time.Duration `yaml:"-"` // HTTP_TIMEOUT, напр. 15s
		BypassProxy bool          `yaml:"bypass_proxy"`
	} `yaml:"binance"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Распарсенная start_date; в yaml не сериализуем.
	StartTime time.Time `yaml:"-"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		QuoteAsset:  "USDT",
		Interval:    "1d",
		StartDate:   "2021-01-01",
		KlinesLimit: 1000,
		Concurrency: 4,
		Mode:        ModeEMA,
		EMAFast:     50,
		EMASlow:     200,
		Window:      90,
		OutDir:      "out",
		LogLevel:    "info",
	}
	cfg.Binance.BaseURL = "https://api.binance.com"

	if name := os.Getenv(configFilePathENV); name != "" {
		file, err := os.Open("configs/" + name)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
	}

	// env поверх файла
	cfg.QuoteAsset = getenvDefault("QUOTE_ASSET", cfg.QuoteAsset)
	cfg.Interval = getenvDefault("INTERVAL", cfg.Interval)
	cfg.StartDate = getenvDefault("START_DATE", cfg.StartDate)
	cfg.KlinesLimit = intFromEnv("KLINES_LIMIT", cfg.KlinesLimit)
	cfg.Concurrency = intFromEnv("CONCURRENCY", cfg.Concurrency)
	cfg.Mode = getenvDefault("MODE", cfg.Mode)
	cfg.EMAFast = intFromEnv("EMA_FAST", cfg.EMAFast)
	cfg.EMASlow = intFromEnv("EMA_SLOW", cfg.EMASlow)
	cfg.Window = intFromEnv("EXTREMA_WINDOW", cfg.Window)
	cfg.OutDir = getenvDefault("OUT_DIR", cfg.OutDir)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)

	cfg.Binance.BaseURL = getenvDefault("BINANCE_BASE_URL", cfg.Binance.BaseURL)
	cfg.Binance.Timeout = durationFromEnv("HTTP_TIMEOUT", "15s")
	cfg.Binance.BypassProxy = boolFromEnv("BYPASS_PROXY", cfg.Binance.BypassProxy)

	cfg.Telegram.Token = getenvDefault("TELEGRAM_BOT_TOKEN", cfg.Telegram.Token)
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}

	cfg.Jaeger.Host = getenvDefault("JAEGER_HOST", cfg.Jaeger.Host)
	cfg.Jaeger.Port = intFromEnv("JAEGER_PORT", cfg.Jaeger.Port)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeEMA, ModeExtrema:
	default:
		return fmt.Errorf("MODE must be %q or %q, got %q", ModeEMA, ModeExtrema, c.Mode)
	}
	if c.EMAFast >= c.EMASlow {
		return fmt.Errorf("EMA_FAST must be < EMA_SLOW")
	}
	if c.Window <= 0 {
		return fmt.Errorf("EXTREMA_WINDOW must be positive")
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	// потолок одной страницы Binance
	if c.KlinesLimit <= 0 || c.KlinesLimit > 1000 {
		c.KlinesLimit = 1000
	}

	t, err := time.ParseInLocation("2006-01-02", c.StartDate, time.UTC)
	if err != nil {
		return fmt.Errorf("START_DATE parse: %w", err)
	}
	c.StartTime = t
	return nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
