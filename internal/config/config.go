package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DataConfig contains file system locations for input and output data
type DataConfig struct {
	CSVDir    string `yaml:"csv_dir" envconfig:"CSV_DIR" validate:"required"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR"`
}

// EngineConfig contains the pricing rule thresholds and multipliers.
// Defaults reproduce the standard rule set; overrides let operators tune
// individual rules without a rebuild.
type EngineConfig struct {
	HighDemandScore    float64 `yaml:"high_demand_score" envconfig:"HIGH_DEMAND_SCORE" validate:"gt=0"`
	HighDemandMinStock float64 `yaml:"high_demand_min_stock" envconfig:"HIGH_DEMAND_MIN_STOCK" validate:"gte=0"`
	HighDemandRaise    float64 `yaml:"high_demand_raise" envconfig:"HIGH_DEMAND_RAISE" validate:"gt=1"`

	LowDemandScore    float64 `yaml:"low_demand_score" envconfig:"LOW_DEMAND_SCORE" validate:"gt=0"`
	LowDemandMinStock float64 `yaml:"low_demand_min_stock" envconfig:"LOW_DEMAND_MIN_STOCK" validate:"gte=0"`
	LowDemandCut      float64 `yaml:"low_demand_cut" envconfig:"LOW_DEMAND_CUT" validate:"gt=0,lt=1"`

	CompetitorTolerance float64 `yaml:"competitor_tolerance" envconfig:"COMPETITOR_TOLERANCE" validate:"gte=1"`
	CompetitorUndercut  float64 `yaml:"competitor_undercut" envconfig:"COMPETITOR_UNDERCUT" validate:"gt=0,lte=1"`

	LowStockDemandScore float64 `yaml:"low_stock_demand_score" envconfig:"LOW_STOCK_DEMAND_SCORE" validate:"gt=0"`
	LowStockRaise       float64 `yaml:"low_stock_raise" envconfig:"LOW_STOCK_RAISE" validate:"gt=1"`
}

// Load loads configuration from defaults, an optional YAML config file,
// and environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	cfg := *Default()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override file and default values
	if err := envconfig.Process("PRICING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration using struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			ve := verrs[0]
			return fmt.Errorf("invalid value for %s: failed %s", ve.Namespace(), ve.Tag())
		}
		return err
	}
	return nil
}

// findConfigFile returns the path to the config file, checking common locations
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: "logs/pricing.log",
		},
		Data: DataConfig{
			CSVDir:    "csv_data",
			ExportDir: "exports",
		},
		Engine: EngineConfig{
			HighDemandScore:     7.5,
			HighDemandMinStock:  50,
			HighDemandRaise:     1.05,
			LowDemandScore:      5,
			LowDemandMinStock:   100,
			LowDemandCut:        0.92,
			CompetitorTolerance: 1.05,
			CompetitorUndercut:  0.98,
			LowStockDemandScore: 6,
			LowStockRaise:       1.08,
		},
	}
}
