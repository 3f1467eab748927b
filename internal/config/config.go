// Package config loads SpellBound settings from defaults, an optional
// config file, a .env file and SPELLBOUND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/spellbound/internal/llm"
	"github.com/abhisek/spellbound/internal/store"
)

// EnvPrefix namespaces every environment variable.
const EnvPrefix = "SPELLBOUND"

// Config holds all configuration for the application.
type Config struct {
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	LLM    llm.Config   `mapstructure:"llm"`
	Speech SpeechConfig `mapstructure:"speech"`
	Review ReviewConfig `mapstructure:"review"`
	Server ServerConfig `mapstructure:"server"`
}

// DBConfig locates the SQLite database.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// SpeechConfig selects the text-to-speech backends.
type SpeechConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	Voice    string        `mapstructure:"voice"`
	Fallback string        `mapstructure:"fallback"`
	Player   string        `mapstructure:"player"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// OpenAI holds settings for the OpenAI speech backend, used either as
	// the primary provider or as the fallback.
	OpenAI OpenAISpeechConfig `mapstructure:"openai"`
}

// OpenAISpeechConfig configures the OpenAI speech endpoint.
type OpenAISpeechConfig struct {
	Model string `mapstructure:"model"`
	Voice string `mapstructure:"voice"`
}

// ReviewConfig tunes how often glossary words are revisited.
type ReviewConfig struct {
	Probability float64 `mapstructure:"probability"`
}

// ServerConfig holds the JSON API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. A missing .env or config file is not an error.
// configFile, when non-empty, names an explicit config file.
func Load(configFile string) (*Config, error) {
	dataDir, err := store.DataDir()
	if err != nil {
		dataDir = "."
	}
	v := viper.New()
	setDefaults(v, dataDir)

	// .env only seeds the process environment; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(configHome(), "spellbound"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LLM.Discover()
	return &cfg, nil
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("db.path", filepath.Join(dataDir, "spellbound.db"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(dataDir, "spellbound.log"))

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("speech.provider", "gemini")
	v.SetDefault("speech.model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("speech.voice", "Kore")
	v.SetDefault("speech.fallback", "openai")
	v.SetDefault("speech.player", DefaultPlayer())
	v.SetDefault("speech.timeout", 30*time.Second)
	v.SetDefault("speech.openai.model", "gpt-4o-mini-tts")
	v.SetDefault("speech.openai.voice", "alloy")

	v.SetDefault("review.probability", 0.4)

	v.SetDefault("server.addr", "127.0.0.1:8080")
}

// DefaultPlayer returns the audio player command for this platform.
func DefaultPlayer() string {
	if runtime.GOOS == "darwin" {
		return "afplay"
	}
	return "aplay -q"
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}
