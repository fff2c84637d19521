package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"career-relay/pkg/models"
)

// ErrMissingAPIKey is returned by Validate when no completion service credential is configured
var ErrMissingAPIKey = errors.New("missing LLM API key: set GEMINI_API_KEY in .env or environment")

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
		MaxBodyBytes int64         `yaml:"max_body_bytes"`
	} `yaml:"server"`

	CORS struct {
		AllowedOrigins   []string `yaml:"allowed_origins"`
		AllowCredentials bool     `yaml:"allow_credentials"`
	} `yaml:"cors"`

	LLM struct {
		Provider string `yaml:"provider"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		// BaseURL overrides the provider endpoint, e.g. for a proxy
		BaseURL string `yaml:"base_url"`
	} `yaml:"llm"`

	// Generation holds the sampling parameters of each mode
	Generation struct {
		Recommendation models.GenerationParams `yaml:"recommendation"`
		Chat           models.GenerationParams `yaml:"chat"`
		MarketTrends   models.GenerationParams `yaml:"market_trends"`
	} `yaml:"generation"`

	Logging struct {
		Level    string          `yaml:"level"`
		Format   string          `yaml:"format"`
		Output   string          `yaml:"output"`
		Adapters []AdapterConfig `yaml:"adapters"`
	} `yaml:"logging"`
}

// AdapterConfig describes one logging adapter
type AdapterConfig struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR references, leaving unset ones untouched
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[1:]); val != "" {
			return val
		}
		return match
	})
}

// Default returns a configuration populated with built-in defaults only
func Default() *Config {
	config := &Config{}

	config.Server.Port = 8000
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 2 * time.Minute
	config.Server.IdleTimeout = 60 * time.Second
	config.Server.MaxBodyBytes = 1024 * 1024

	config.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	config.CORS.AllowCredentials = true

	config.LLM.Provider = "gemini"
	config.LLM.Model = "gemini-2.0-flash"

	config.Generation.Recommendation = models.GenerationParams{Temperature: 1.0, MaxOutputTokens: 4096, SearchAugmented: true}
	config.Generation.MarketTrends = models.GenerationParams{Temperature: 1.0, MaxOutputTokens: 4096, SearchAugmented: true}
	config.Generation.Chat = models.GenerationParams{Temperature: 0.7, MaxOutputTokens: 512}

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	return config
}

// LoadConfig loads configuration from defaults, the optional YAML file and the environment,
// in increasing order of precedence
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	// an unresolved ${VAR} is not a credential
	if bracedEnvVar.MatchString(config.LLM.APIKey) {
		config.LLM.APIKey = ""
	}

	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		var parsed []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				parsed = append(parsed, o)
			}
		}
		c.CORS.AllowedOrigins = parsed
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	// GEMINI_API_KEY wins over the generic name
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		c.LLM.BaseURL = baseURL
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}

// Validate reports configuration that would prevent the service from working
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// GenerationFor returns the sampling parameters configured for mode
func (c *Config) GenerationFor(mode models.Mode) (models.GenerationParams, error) {
	switch mode {
	case models.ModeRecommendation:
		return c.Generation.Recommendation, nil
	case models.ModeChat:
		return c.Generation.Chat, nil
	case models.ModeMarketTrends:
		return c.Generation.MarketTrends, nil
	default:
		return models.GenerationParams{}, fmt.Errorf("%w: %s", models.ErrUnknownMode, mode)
	}
}
