package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	adminIDENV        = "ADMIN_ID"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token   string `yaml:"token"`
		AdminID int64  `yaml:"admin_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"`

	Sniffer struct {
		URL            string        `yaml:"url"`
		ReconnectDelay time.Duration `yaml:"-"` // env: SNIFFER_RECONNECT_DELAY
	} `yaml:"sniffer"`

	Chart struct {
		URL string `yaml:"url"` // бэкенд, отдающий отрендеренный график
		Dir string `yaml:"dir"` // куда складывать снимки
	} `yaml:"chart"`

	Signals struct {
		Interval      time.Duration `yaml:"-"`              // env: SIGNAL_INTERVAL
		CandleWindow  int           `yaml:"candle_window"`  // свечей за тик
		MinConfidence float64       `yaml:"min_confidence"` // порог уведомления
	} `yaml:"signals"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {
	config := Config{}
	config.Sniffer.URL = getenvDefault("SNIFFER_URL", "wss://try-demo-eu.po.market/socket.io/?EIO=4&transport=websocket")
	config.Sniffer.ReconnectDelay = durationFromEnv("SNIFFER_RECONNECT_DELAY", "5s")
	config.Chart.URL = os.Getenv("CHART_URL")
	config.Chart.Dir = getenvDefault("CHART_DIR", "screenshots")
	config.Signals.Interval = durationFromEnv("SIGNAL_INTERVAL", "30s")
	config.Signals.CandleWindow = intFromEnv("CANDLE_WINDOW", 4)
	config.Signals.MinConfidence = floatFromEnv("MIN_CONFIDENCE", 0.90)

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	if file, err := os.Open("configs/" + configFileName); err == nil {
		decoder := yaml.NewDecoder(file)
		err = decoder.Decode(&config)
		_ = file.Close()
		if err != nil {
			return nil, err
		}
	}
	// нет файла — работаем на дефолтах и переменных окружения

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if v := os.Getenv(adminIDENV); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.AdminID = id
		}
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		config.DB = dsn
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
