// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for vacancy.
type Config struct {
	// Upstream completion API
	Model       string  `mapstructure:"model" yaml:"model"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	APIBaseURL  string  `mapstructure:"api_base_url" yaml:"api_base_url"`
	APIKey      string  `mapstructure:"api_key" yaml:"-"`
	MaxRetries  int     `mapstructure:"max_retries" yaml:"max_retries"`
	Completer   string  `mapstructure:"completer" yaml:"completer"`

	// Generation proxy
	ServerAddr     string        `mapstructure:"server_addr" yaml:"server_addr"`
	CORSOrigins    []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`

	// Wizard
	ProxyURL      string        `mapstructure:"proxy_url" yaml:"proxy_url"`
	CopyReset     time.Duration `mapstructure:"copy_reset" yaml:"copy_reset"`
	Locale        string        `mapstructure:"locale" yaml:"locale"`
	SpeechCommand string        `mapstructure:"speech_command" yaml:"speech_command"`
	SpeechTimeout time.Duration `mapstructure:"speech_timeout" yaml:"speech_timeout"`
	ExportDir     string        `mapstructure:"export_dir" yaml:"export_dir"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
}

// Built-in defaults.
const (
	DefaultModel       = "gpt-4.1"
	DefaultMaxTokens   = 900
	DefaultTemperature = 0.7
	DefaultAPIBaseURL  = "https://api.openai.com/v1"
	DefaultServerAddr  = ":8080"
	DefaultProxyURL    = "http://localhost:8080"
	DefaultLocale      = "ru-RU"
	DefaultCopyReset   = 1500 * time.Millisecond
)

// Completer backends.
const (
	CompleterOpenAI = "openai"
	CompleterEcho   = "echo"
)

// envBindings maps config keys to their environment variables.
// api_key is bound to the conventional OPENAI_API_KEY as well.
var envBindings = map[string][]string{
	"model":           {"VACANCY_MODEL"},
	"max_tokens":      {"VACANCY_MAX_TOKENS"},
	"temperature":     {"VACANCY_TEMPERATURE"},
	"api_base_url":    {"VACANCY_API_BASE_URL", "OPENAI_BASE_URL"},
	"api_key":         {"VACANCY_API_KEY", "OPENAI_API_KEY"},
	"max_retries":     {"VACANCY_MAX_RETRIES"},
	"completer":       {"VACANCY_COMPLETER"},
	"server_addr":     {"VACANCY_SERVER_ADDR"},
	"cors_origins":    {"VACANCY_CORS_ORIGINS"},
	"request_timeout": {"VACANCY_REQUEST_TIMEOUT"},
	"proxy_url":       {"VACANCY_PROXY_URL"},
	"copy_reset":      {"VACANCY_COPY_RESET"},
	"locale":          {"VACANCY_LOCALE"},
	"speech_command":  {"VACANCY_SPEECH_COMMAND"},
	"speech_timeout":  {"VACANCY_SPEECH_TIMEOUT"},
	"export_dir":      {"VACANCY_EXPORT_DIR"},
	"log_level":       {"VACANCY_LOG_LEVEL"},
	"log_file":        {"VACANCY_LOG_FILE"},
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars (.env included) > project config > XDG global config > defaults
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with an optional caller-prepared viper instance.
// Commands pass one with their flags bound so flag values win.
func LoadWith(v *viper.Viper) (*Config, error) {
	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if v == nil {
		v = viper.New()
	}
	v.SetConfigType("yaml")
	v.SetConfigName("vacancy")

	setDefaults(v)

	v.SetEnvPrefix("VACANCY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated env values may carry padding around each origin.
	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", DefaultModel)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("api_key", "")
	v.SetDefault("max_retries", 2)
	v.SetDefault("completer", CompleterOpenAI)
	v.SetDefault("server_addr", DefaultServerAddr)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("proxy_url", DefaultProxyURL)
	v.SetDefault("copy_reset", DefaultCopyReset)
	v.SetDefault("locale", DefaultLocale)
	v.SetDefault("speech_command", "")
	v.SetDefault("speech_timeout", 30*time.Second)
	v.SetDefault("export_dir", ".")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
}

// Defaults returns a Config populated only with default values.
func Defaults() *Config {
	return &Config{
		Model:          DefaultModel,
		MaxTokens:      DefaultMaxTokens,
		Temperature:    DefaultTemperature,
		APIBaseURL:     DefaultAPIBaseURL,
		MaxRetries:     2,
		Completer:      CompleterOpenAI,
		ServerAddr:     DefaultServerAddr,
		CORSOrigins:    []string{"*"},
		RequestTimeout: 60 * time.Second,
		ProxyURL:       DefaultProxyURL,
		CopyReset:      DefaultCopyReset,
		Locale:         DefaultLocale,
		SpeechTimeout:  30 * time.Second,
		ExportDir:      ".",
		LogLevel:       "info",
	}
}

// Validate checks values that would make the upstream request invalid.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.Completer != CompleterOpenAI && c.Completer != CompleterEcho {
		return fmt.Errorf("completer must be %q or %q, got %q", CompleterOpenAI, CompleterEcho, c.Completer)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/vacancy/vacancy.yml or $XDG_CONFIG_HOME/vacancy/vacancy.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vacancy", "vacancy.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vacancy", "vacancy.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "vacancy.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
