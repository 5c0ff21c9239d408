// Package config loads orchestrator configuration from config.yaml with
// environment variable overrides. A .env file, if present, is loaded first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Services ServicesConfig `yaml:"services"`
	Grid     GridConfig     `yaml:"grid"`
	Polling  PollingConfig  `yaml:"polling"`
	Limiter  LimiterConfig  `yaml:"limiter"`
}

type ServerConfig struct {
	Host                string   `yaml:"host"`
	Port                int      `yaml:"port"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
	CORSOrigins         []string `yaml:"cors_origins"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServicesConfig holds one base URL per AI backend plus the Layout Service,
// and the outbound timeouts. Image generation gets its own, longer timeout.
type ServicesConfig struct {
	ChartURL       string  `yaml:"chart_url"`
	DiagramURL     string  `yaml:"diagram_url"`
	TextTableURL   string  `yaml:"text_table_url"`
	ImageURL       string  `yaml:"image_url"`
	InfographicURL string  `yaml:"infographic_url"`
	LayoutURL      string  `yaml:"layout_url"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
	ImageTimeout   float64 `yaml:"image_timeout_seconds"`
}

type GridConfig struct {
	// Pixels per converted grid unit for the diagram backend's pixel
	// constraints.
	PxPerUnit int `yaml:"px_per_unit"`
}

type PollingConfig struct {
	TimeoutSeconds     float64 `yaml:"timeout_seconds"`
	IntervalSeconds    float64 `yaml:"interval_seconds"`
	MaxIntervalSeconds float64 `yaml:"max_interval_seconds"`
}

type LimiterConfig struct {
	GenerationPerMinute int `yaml:"generation_per_minute"`
	MetadataPerMinute   int `yaml:"metadata_per_minute"`
}

func Load() (*Config, error) {
	// Ignore absence: the .env file is a development convenience.
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnvOverrides(cfg), nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return applyEnvOverrides(cfg), nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8090,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
			CORSOrigins:         []string{"*"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Services: ServicesConfig{
			ChartURL:       "http://localhost:8001",
			DiagramURL:     "http://localhost:8080",
			TextTableURL:   "http://localhost:8000",
			ImageURL:       "http://localhost:8000",
			InfographicURL: "http://localhost:8000",
			LayoutURL:      "http://localhost:8504",
			TimeoutSeconds: 30.0,
			ImageTimeout:   60.0,
		},
		Grid: GridConfig{
			PxPerUnit: 60,
		},
		Polling: PollingConfig{
			TimeoutSeconds:     60.0,
			IntervalSeconds:    2.0,
			MaxIntervalSeconds: 8.0,
		},
		Limiter: LimiterConfig{
			GenerationPerMinute: 10,
			MetadataPerMinute:   60,
		},
	}
}

func applyEnvOverrides(cfg *Config) *Config {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CHART_SERVICE_URL"); v != "" {
		cfg.Services.ChartURL = v
	}
	if v := os.Getenv("DIAGRAM_SERVICE_URL"); v != "" {
		cfg.Services.DiagramURL = v
	}
	if v := os.Getenv("TEXT_TABLE_SERVICE_URL"); v != "" {
		cfg.Services.TextTableURL = v
	}
	if v := os.Getenv("IMAGE_SERVICE_URL"); v != "" {
		cfg.Services.ImageURL = v
	}
	if v := os.Getenv("INFOGRAPHIC_SERVICE_URL"); v != "" {
		cfg.Services.InfographicURL = v
	}
	if v := os.Getenv("LAYOUT_SERVICE_URL"); v != "" {
		cfg.Services.LayoutURL = v
	}
	if v := os.Getenv("SERVICE_TIMEOUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Services.TimeoutSeconds = f
		}
	}
	if v := os.Getenv("IMAGE_TIMEOUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Services.ImageTimeout = f
		}
	}
	if v := os.Getenv("DIAGRAM_POLL_TIMEOUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Polling.TimeoutSeconds = f
		}
	}
	if v := os.Getenv("PX_PER_UNIT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Grid.PxPerUnit = p
		}
	}
	return cfg
}
