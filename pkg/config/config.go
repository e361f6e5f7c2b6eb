package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variable overrides, e.g. DICTADO_SPEECH_API_KEY
		viper.SetEnvPrefix("DICTADO")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine, defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float64 config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if err := validateAPIKey(); err != nil {
		return err
	}

	// Auto-correct out-of-range polling policy
	if viper.GetDuration("transcription.poll_interval") <= 0 {
		viper.Set("transcription.poll_interval", 2*time.Second)
	}
	if viper.GetInt("transcription.max_attempts") <= 0 {
		viper.Set("transcription.max_attempts", 60)
	}

	fallback := viper.GetFloat64("transcription.fallback_confidence")
	if fallback < 0 || fallback > 100 {
		return fmt.Errorf("fallback confidence must be within 0-100, got %v", fallback)
	}

	return nil
}

// validateAPIKey checks that the speech API key is not a placeholder
func validateAPIKey() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	apiKey := viper.GetString("speech.api_key")
	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid speech API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: speech API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Transcription.PollInterval <= 0 {
		c.Transcription.PollInterval = 2 * time.Second
	}

	if c.Transcription.MaxAttempts <= 0 {
		c.Transcription.MaxAttempts = 60
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", 52428800)

	// Database defaults
	viper.SetDefault("database.path", "./data/dictado.db")
	viper.SetDefault("database.verbose", false)

	// Speech service defaults
	viper.SetDefault("speech.base_url", "https://api.speech.example.com/v2")
	viper.SetDefault("speech.timeout", 30*time.Second)
	viper.SetDefault("speech.user_agent", "DictadoAPI/1.0")

	// Transcription pipeline defaults
	viper.SetDefault("transcription.poll_interval", 2*time.Second)
	viper.SetDefault("transcription.max_attempts", 60)
	viper.SetDefault("transcription.language", "es")
	viper.SetDefault("transcription.fallback_confidence", 95.0)

	// Recording defaults
	viper.SetDefault("recording.dir", "./data/recordings")
	viper.SetDefault("recording.ffmpeg_path", "ffmpeg")
	viper.SetDefault("recording.device", "default")
	viper.SetDefault("recording.max_duration", 5*time.Minute)
}
