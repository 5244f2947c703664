package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "restock/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Inputs  InputsConfig  `yaml:"inputs" envconfig:"INPUTS"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// InputsConfig names the three source workbooks. Command-line flags take
// precedence over these values.
type InputsConfig struct {
	Sedona    string `yaml:"sedona" envconfig:"SEDONA"`
	Saga      string `yaml:"saga" envconfig:"SAGA"`
	Suppliers string `yaml:"furnizori" envconfig:"FURNIZORI" validate:"required"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Result string `yaml:"rezultat" envconfig:"REZULTAT" validate:"required"`
	CSVDir string `yaml:"csv_dir" envconfig:"CSV_DIR"`
}

// MetricsConfig controls the Prometheus textfile written after each run.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" envconfig:"ENABLED"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Inputs: InputsConfig{
			Suppliers: DefaultSuppliersFile,
		},
		Output: OutputConfig{
			Result: DefaultResultFile,
		},
	}
}

// Load builds the configuration. Sources in order of precedence:
//
//  1. environment variables (RESTOCK_*), including those from a .env file
//  2. the YAML file at path, or the first of configFileLocations that exists
//  3. Default()
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NewConfigError("failed to load .env file", err)
	}

	cfg := Default()

	configFile, err := resolveConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Fields carry no default tags, so only variables that are set override
	// the file and the defaults.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys absent from the file
// keep their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

func resolveConfigFile(path string) (string, error) {
	if path != "" {
		if !FileExists(path) {
			return "", apperrors.NewConfigError("config file not readable", nil).WithContext("file", path)
		}
		return path, nil
	}
	for _, location := range configFileLocations {
		if FileExists(location) {
			return location, nil
		}
	}
	return "", nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return apperrors.NewConfigError(
				fmt.Sprintf("invalid value %q for %s", fmt.Sprint(first.Value()), first.Namespace()), err)
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}
