package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	App       AppConfig       `yaml:"app" envconfig:"APP"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Sentry    SentryConfig    `yaml:"sentry" envconfig:"SENTRY"`
	OpenMeteo OpenMeteoConfig `yaml:"open_meteo" envconfig:"OPEN_METEO"`
	Breaker   BreakerConfig   `yaml:"breaker" envconfig:"BREAKER"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telegram  TelegramConfig  `yaml:"telegram" envconfig:"TELEGRAM"`
}

type AppConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Version string `yaml:"version" validate:"required"`
	Env     string `yaml:"env" validate:"required,oneof=development dev prod test"`
}

type ServerConfig struct {
	Port         string `yaml:"port" validate:"required,numeric"`
	ReadTimeout  int    `split_words:"true" yaml:"read_timeout" validate:"min=1"`
	WriteTimeout int    `split_words:"true" yaml:"write_timeout" validate:"min=1"`
	IdleTimeout  int    `split_words:"true" yaml:"idle_timeout" validate:"min=1"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

type OpenMeteoConfig struct {
	GeocodingURL string        `split_words:"true" yaml:"geocoding_url" validate:"required,url"`
	ArchiveURL   string        `split_words:"true" yaml:"archive_url" validate:"required,url"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	WindowDays   int           `split_words:"true" yaml:"window_days" validate:"min=1,max=92"`
}

type BreakerConfig struct {
	MaxFailures uint32        `split_words:"true" yaml:"max_failures" validate:"min=1"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
}

type ReportConfig struct {
	OutputDir string `split_words:"true" yaml:"output_dir" validate:"required"`
	GapPolicy string `split_words:"true" yaml:"gap_policy" validate:"oneof=tolerate strict drop"`
}

// TelegramConfig holds the delivery credentials. Leaving Token or ChatID
// empty disables delivery.
type TelegramConfig struct {
	Token   string        `yaml:"token"`
	ChatID  string        `split_words:"true" yaml:"chat_id"`
	BaseURL string        `split_words:"true" yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// ConfigProvider loads and validates a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads an optional YAML file and an optional .env file,
// then applies environment overrides on top of the defaults.
type FileConfigProvider struct {
	path     string
	envFiles []string
	validate *validator.Validate
}

func NewFileConfigProvider(path string, envFiles ...string) *FileConfigProvider {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	return &FileConfigProvider{
		path:     path,
		envFiles: envFiles,
		validate: v,
	}
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-report",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		OpenMeteo: OpenMeteoConfig{
			GeocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
			ArchiveURL:   "https://archive-api.open-meteo.com/v1/archive",
			Timeout:      30 * time.Second,
			WindowDays:   7,
		},
		Breaker: BreakerConfig{
			MaxFailures: 5,
			Timeout:     time.Minute,
		},
		Report: ReportConfig{
			OutputDir: "output",
			GapPolicy: "tolerate",
		},
		Telegram: TelegramConfig{
			BaseURL: "https://api.telegram.org",
			Timeout: 30 * time.Second,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Default()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := godotenv.Load(p.envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", p.path, err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	err := p.validate.Struct(config)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.app.name"; drop the root struct name
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}

		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
