package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Supported LLM providers.
const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

type Config struct {
	Env       string
	Server    ServerConfig
	Logger    LoggerConfig
	LLM       LLMConfig
	Redis     RedisConfig
	CacheTTLs CacheTTLConfig
	RateLimit RateLimitConfig
	Quiz      QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Env   string
	Level string
	File  LogFileConfig
}

// LogFileConfig enables a rotating file sink next to stdout when Path is set.
type LogFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type LLMConfig struct {
	Provider          string
	Model             string
	ServerURL         string
	OpenAIAPIKey      string
	GoogleAPIKey      string
	Temperature       float64
	MaxTokens         int
	Timeout           time.Duration
	RequestsPerMinute int
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheTTLConfig holds TTLs as duration strings ("30m", "2h").
type CacheTTLConfig struct {
	Session    string
	Generation string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type QuizConfig struct {
	MinQuestions   int
	MaxQuestions   int
	MaxTopicLength int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("logger.level", "info")

	v.SetDefault("llm.provider", ProviderOllama)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 1500)
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.requests_per_minute", 0)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache_ttls.session", "2h")
	v.SetDefault("cache_ttls.generation", "0s")

	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", 60)

	v.SetDefault("quiz.min_questions", 1)
	v.SetDefault("quiz.max_questions", 100)
	v.SetDefault("quiz.max_topic_length", 200)
}

// LoadConfig reads config.yaml (when present), applies defaults and
// environment overrides. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := v.GetString("env")
	return &Config{
		Env: env,
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:  v.GetDuration("server.idle_timeout") * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Env:   env,
			Level: v.GetString("logger.level"),
			File: LogFileConfig{
				Path:       v.GetString("logger.file.path"),
				MaxSizeMB:  v.GetInt("logger.file.max_size_mb"),
				MaxBackups: v.GetInt("logger.file.max_backups"),
				MaxAgeDays: v.GetInt("logger.file.max_age_days"),
				Compress:   v.GetBool("logger.file.compress"),
			},
		},
		LLM: LLMConfig{
			Provider:          v.GetString("llm.provider"),
			Model:             v.GetString("llm.model"),
			ServerURL:         v.GetString("llm.server_url"),
			OpenAIAPIKey:      v.GetString("llm.openai_api_key"),
			GoogleAPIKey:      v.GetString("llm.google_api_key"),
			Temperature:       v.GetFloat64("llm.temperature"),
			MaxTokens:         v.GetInt("llm.max_tokens"),
			Timeout:           v.GetDuration("llm.timeout") * time.Second,
			RequestsPerMinute: v.GetInt("llm.requests_per_minute"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CacheTTLs: CacheTTLConfig{
			Session:    v.GetString("cache_ttls.session"),
			Generation: v.GetString("cache_ttls.generation"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("rate_limit.requests"),
			Window:   v.GetDuration("rate_limit.window") * time.Second,
		},
		Quiz: QuizConfig{
			MinQuestions:   v.GetInt("quiz.min_questions"),
			MaxQuestions:   v.GetInt("quiz.max_questions"),
			MaxTopicLength: v.GetInt("quiz.max_topic_length"),
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if env := os.Getenv("ENV"); env != "" {
		cfg.Env = env
		cfg.Logger.Env = env
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if serverURL := os.Getenv("OLLAMA_SERVER_URL"); serverURL != "" {
		cfg.LLM.ServerURL = serverURL
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		cfg.LLM.OpenAIAPIKey = openAIKey
	}
	if googleKey := os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"); googleKey != "" {
		cfg.LLM.GoogleAPIKey = googleKey
	}
}

// Validate checks settings that would otherwise fail late, on the first request.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for provider %q", c.LLM.Provider)
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("llm.openai_api_key is required for provider %q", c.LLM.Provider)
		}
	case ProviderGoogleAI:
		if c.LLM.GoogleAPIKey == "" {
			return fmt.Errorf("llm.google_api_key is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.Quiz.MinQuestions < 1 || c.Quiz.MaxQuestions < c.Quiz.MinQuestions {
		return fmt.Errorf("invalid quiz question bounds: %d-%d", c.Quiz.MinQuestions, c.Quiz.MaxQuestions)
	}
	return nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to
// defaultTTL when the string is empty or malformed.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	d, err := time.ParseDuration(ttlString)
	if err != nil {
		return defaultTTL
	}
	return d
}
