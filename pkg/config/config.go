package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string `env:"PORT" env-default:"8080"`
	Env                     string `env:"ENV" env-default:"development"`
	MetricsPort             string `env:"METRICS_PORT" env-default:"9090"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH" env-default:""`
	PostgresURL             string `env:"POSTGRES_CONN_STR" env-default:""`
	MongoURI                string `env:"MONGO_URI" env-default:""`
	MongoDatabase           string `env:"MONGO_DATABASE" env-default:"curious"`

	Auth   AuthConfig
	LLM    LLMConfig
	Search SearchConfig
	Cache  CacheConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" env-default:""`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"72h"`
}

// LLMConfig configures the primary model and the model used to repair
// malformed output. The repair pass goes to Anthropic when a key is set.
type LLMConfig struct {
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY" env-default:""`
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	OpenAIModel       string        `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIRepairModel string        `env:"OPENAI_REPAIR_MODEL" env-default:"gpt-4o"`
	Temperature       float64       `env:"LLM_TEMPERATURE" env-default:"0.4"`
	AnthropicAPIKey   string        `env:"ANTHROPIC_API_KEY" env-default:""`
	AnthropicBaseURL  string        `env:"ANTHROPIC_BASE_URL" env-default:""` // empty means the public endpoint
	AnthropicModel    string        `env:"ANTHROPIC_MODEL" env-default:"claude-3-5-haiku-latest"`
	Timeout           time.Duration `env:"LLM_TIMEOUT" env-default:"60s"`
}

type SearchConfig struct {
	APIKey          string        `env:"SEARCH_API_KEY" env-default:""`
	Endpoint        string        `env:"SEARCH_ENDPOINT" env-default:""` // empty means the public Google endpoint
	YoutubeEngineID string        `env:"YOUTUBE_SEARCH_ENGINE_ID" env-default:""`
	RedditEngineID  string        `env:"REDDIT_SEARCH_ENGINE_ID" env-default:""`
	TwitterEngineID string        `env:"TWITTER_SEARCH_ENGINE_ID" env-default:""`
	ResultsPerQuery int64         `env:"SEARCH_RESULTS_PER_SOURCE" env-default:"2"`
	Timeout         time.Duration `env:"SEARCH_TIMEOUT" env-default:"10s"`
}

type CacheConfig struct {
	Backend  string        `env:"CACHE_BACKEND" env-default:"memory"` // memory, redis or mongo
	RedisURL string        `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"0"` // zero keeps entries forever
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first missing setting the server cannot start without.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"POSTGRES_CONN_STR", c.PostgresURL},
		{"JWT_SECRET", c.Auth.JWTSecret},
		{"OPENAI_API_KEY", c.LLM.OpenAIAPIKey},
		{"SEARCH_API_KEY", c.Search.APIKey},
		{"YOUTUBE_SEARCH_ENGINE_ID", c.Search.YoutubeEngineID},
		{"REDDIT_SEARCH_ENGINE_ID", c.Search.RedditEngineID},
		{"TWITTER_SEARCH_ENGINE_ID", c.Search.TwitterEngineID},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s environment variable not set", r.name)
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"LLM_TIMEOUT", c.LLM.Timeout},
		{"SEARCH_TIMEOUT", c.Search.Timeout},
		{"TOKEN_TTL", c.Auth.TokenTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.Cache.TTL)
	}
	// Custom Search returns at most ten results per request
	if c.Search.ResultsPerQuery < 1 || c.Search.ResultsPerQuery > 10 {
		return fmt.Errorf("SEARCH_RESULTS_PER_SOURCE must be between 1 and 10, got %d", c.Search.ResultsPerQuery)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("CACHE_BACKEND=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	return nil
}
