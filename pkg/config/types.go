package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Speech        SpeechConfig        `mapstructure:"speech"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Recording     RecordingConfig     `mapstructure:"recording"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// SpeechConfig contains external transcription service settings
type SpeechConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// TranscriptionConfig contains job pipeline settings
type TranscriptionConfig struct {
	PollInterval       time.Duration `mapstructure:"poll_interval"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	Language           string        `mapstructure:"language"`
	FallbackConfidence float64       `mapstructure:"fallback_confidence"`
}

// RecordingConfig contains audio capture settings
type RecordingConfig struct {
	Dir         string        `mapstructure:"dir"`
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	Device      string        `mapstructure:"device"`
	MaxDuration time.Duration `mapstructure:"max_duration"`
}
