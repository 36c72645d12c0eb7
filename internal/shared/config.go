package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Curator     CuratorConfig     `toml:"curator"`
	Pacing      PacingConfig      `toml:"pacing"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// YouTubeConfig contains YouTube Music proxy settings.
type YouTubeConfig struct {
	ProxyURL    string `toml:"proxy_url"`
	HeadersPath string `toml:"headers_path"`
}

// GeminiConfig contains Gemini model settings. The API key is never stored
// in the config file; it is read from the environment (see [GeminiAPIKey]).
type GeminiConfig struct {
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

// CuratorConfig collects every tuning constant for the matching and mutation
// engines in one immutable value passed into constructors.
type CuratorConfig struct {
	BatchSize                int `toml:"batch_size"`
	MaxRetries               int `toml:"max_retries"`
	InitialRetryDelaySeconds int `toml:"initial_retry_delay_seconds"`
	RetryDelayMultiplier     int `toml:"retry_delay_multiplier"`
	MatchThreshold           int `toml:"match_threshold"`
	DescriptionMaxLength     int `toml:"description_max_length"`
}

// InitialRetryDelay returns the delay before the first retry as a [time.Duration].
func (c CuratorConfig) InitialRetryDelay() time.Duration {
	return time.Duration(c.InitialRetryDelaySeconds) * time.Second
}

// PacingConfig contains the human-behavior pacing windows between remote calls.
type PacingConfig struct {
	GeneralMinSeconds      float64 `toml:"general_min_seconds"`
	GeneralMaxSeconds      float64 `toml:"general_max_seconds"`
	BatchMinSeconds        float64 `toml:"batch_min_seconds"`
	BatchMaxSeconds        float64 `toml:"batch_max_seconds"`
	PostCreateDelaySeconds float64 `toml:"post_create_delay_seconds"`
	DetailFetchPerSecond   float64 `toml:"detail_fetch_per_second"`
}

// PostCreateDelay returns the wait after playlist creation as a [time.Duration].
func (p PacingConfig) PostCreateDelay() time.Duration {
	return time.Duration(p.PostCreateDelaySeconds * float64(time.Second))
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads a .env file from the working directory if one exists.
// A missing file is not an error; environment variables may already be set.
func LoadEnv() {
	_ = godotenv.Load()
}

// GeminiAPIKey returns the Gemini API key from the environment.
// GEMINI_API_KEY takes precedence over GOOGLE_API_KEY.
func GeminiAPIKey() (string, error) {
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: GEMINI_API_KEY not set", ErrMissingCredentials)
}
