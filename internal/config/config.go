package config

import (
	"os"
	"strconv"
	"strings"

	"doegen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	LHS    LHSConfig
	DOE    DOEConfig
	Output OutputConfig
	Log    LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	// CORSOrigins lists origins allowed to call the JSON API; empty disables CORS
	CORSOrigins []string
}

// LHSConfig holds sampling form defaults and sampler tuning
type LHSConfig struct {
	DefaultSamples int
	MinSamples     int
	SampleStep     int
	Seed           int64
	Sampler        string
	MDUScale       int
	MDUNeighbours  int
	MaxSamples     int
}

// DOEConfig holds full-factorial limits
type DOEConfig struct {
	MaxRows int
}

// OutputConfig holds export and preview settings
type OutputConfig struct {
	// Dir receives a dated copy of every LHS run when set
	Dir         string
	Palette     string
	AssetsHost  string
	PreviewRows int
	SheetName   string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: *loadServerConfig(),
		LHS:    *loadLHSConfig(),
		DOE:    *loadDOEConfig(),
		Output: *loadOutputConfig(),
		Log:    LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", GinMode: "debug"},
		LHS: LHSConfig{
			DefaultSamples: 200,
			MinSamples:     100,
			SampleStep:     10,
			Seed:           777,
			Sampler:        "lhsmdu",
			MDUScale:       5,
			MDUNeighbours:  2,
			MaxSamples:     2000,
		},
		DOE:    DOEConfig{MaxRows: 100000},
		Output: OutputConfig{Palette: "autumn", PreviewRows: 500, SheetName: "Sheet1"},
		Log:    LogConfig{Level: "INFO"},
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		GinMode:     getEnvOrDefault("GIN_MODE", "debug"),
		CORSOrigins: getEnvListOrDefault("API_CORS_ORIGINS", nil),
	}
}

func loadLHSConfig() *LHSConfig {
	d := Default().LHS
	return &LHSConfig{
		DefaultSamples: getEnvIntOrDefault("LHS_DEFAULT_SAMPLES", d.DefaultSamples),
		MinSamples:     getEnvIntOrDefault("LHS_MIN_SAMPLES", d.MinSamples),
		SampleStep:     getEnvIntOrDefault("LHS_SAMPLE_STEP", d.SampleStep),
		Seed:           getEnvInt64OrDefault("LHS_SEED", d.Seed),
		Sampler:        getEnvOrDefault("LHS_SAMPLER", d.Sampler),
		MDUScale:       getEnvIntOrDefault("LHSMDU_SCALE", d.MDUScale),
		MDUNeighbours:  getEnvIntOrDefault("LHSMDU_NEIGHBOURS", d.MDUNeighbours),
		MaxSamples:     getEnvIntOrDefault("LHS_MAX_SAMPLES", d.MaxSamples),
	}
}

func loadDOEConfig() *DOEConfig {
	return &DOEConfig{
		MaxRows: getEnvIntOrDefault("MAX_DOE_ROWS", Default().DOE.MaxRows),
	}
}

func loadOutputConfig() *OutputConfig {
	d := Default().Output
	return &OutputConfig{
		Dir:         getEnvOrDefault("OUTPUT_DIR", ""),
		Palette:     getEnvOrDefault("PLOT_PALETTE", d.Palette),
		AssetsHost:  getEnvOrDefault("ECHARTS_ASSETS_HOST", ""),
		PreviewRows: getEnvIntOrDefault("PREVIEW_ROWS", d.PreviewRows),
		SheetName:   getEnvOrDefault("XLSX_SHEET", d.SheetName),
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.LHS.MinSamples < 1 {
		return errors.ConfigInvalid("LHS_MIN_SAMPLES must be positive")
	}
	if config.LHS.DefaultSamples < config.LHS.MinSamples {
		return errors.ConfigInvalid("LHS_DEFAULT_SAMPLES must not be below LHS_MIN_SAMPLES")
	}
	if config.LHS.SampleStep < 1 {
		return errors.ConfigInvalid("LHS_SAMPLE_STEP must be positive")
	}
	if config.LHS.MaxSamples < config.LHS.DefaultSamples {
		return errors.ConfigInvalid("LHS_MAX_SAMPLES must not be below LHS_DEFAULT_SAMPLES")
	}
	if config.DOE.MaxRows < 1 {
		return errors.ConfigInvalid("MAX_DOE_ROWS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
