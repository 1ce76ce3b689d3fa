package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"alfredoptarigan/cv-analyzer/internal/secrets"
)

const (
	ProviderInvoke = "invoke"
	ProviderGemini = "gemini"

	DefaultInferenceURL = "https://intertest.woolf.engineering/invoke"
	DefaultGeminiModel  = "gemini-2.5-flash"
)

type Config struct {
	Server    ServerConfig
	Inference InferenceConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type InferenceConfig struct {
	Provider string
	URL      string
	APIKey   string
	Model    string
	BaseURL  string
	// Timeout bounds a single inference call. Zero means no timeout.
	Timeout time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"port":  "PORT",
	"debug": "LOG_DEBUG",
	"json":  "LOG_JSON",
}

// Load reads .env (if present), the environment and any changed flags in
// that order of increasing precedence. It is called once at startup.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag %q: %w", name, err)
			}
		}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "GEMINI_API_KEY",
		Value: v.GetString("GEMINI_API_KEY"),
		File:  v.GetString("GEMINI_API_KEY_FILE"),
	})
	if err != nil && !errors.Is(err, secrets.ErrNotConfigured) {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Inference: InferenceConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("INFERENCE_PROVIDER"))),
			URL:      v.GetString("INFERENCE_URL"),
			APIKey:   apiKey,
			Model:    v.GetString("GEMINI_MODEL"),
			BaseURL:  v.GetString("GEMINI_BASE_URL"),
			Timeout:  v.GetDuration("INFERENCE_TIMEOUT"),
		},
		Storage: StorageConfig{
			UploadPath:  v.GetString("UPLOAD_PATH"),
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
		},
		RateLimit: RateLimitConfig{
			Max:    v.GetInt("RATE_LIMIT_MAX"),
			Window: v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "4000")
	v.SetDefault("ENV", "development")
	v.SetDefault("INFERENCE_PROVIDER", ProviderInvoke)
	v.SetDefault("INFERENCE_URL", DefaultInferenceURL)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("INFERENCE_TIMEOUT", "0s")
	v.SetDefault("UPLOAD_PATH", "./uploads")
	v.SetDefault("MAX_FILE_SIZE", int64(10485760))
	v.SetDefault("RATE_LIMIT_MAX", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
}

func (c *Config) validate() error {
	switch c.Inference.Provider {
	case ProviderInvoke, ProviderGemini:
	default:
		return fmt.Errorf("unknown INFERENCE_PROVIDER %q", c.Inference.Provider)
	}

	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("PORT must not be empty")
	}

	if c.Inference.Timeout < 0 {
		return errors.New("INFERENCE_TIMEOUT must not be negative")
	}

	return nil
}

// HasAPIKey reports whether an inference credential was configured.
func (c *Config) HasAPIKey() bool {
	return c.Inference.APIKey != ""
}
