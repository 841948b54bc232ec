package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Database struct {
		URL            string        `yaml:"url"`
		MaxConns       int32         `yaml:"max_conns" default:"10"`
		ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`
	} `yaml:"database"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Auth struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"auth"`

	Email struct {
		BaseURL    string        `yaml:"base_url" default:"https://api.mailrelay.dev"`
		APIKey     string        `yaml:"api_key"`
		From       string        `yaml:"from" default:"no-reply@talenthub.app"`
		Timeout    time.Duration `yaml:"timeout" default:"15s"`
		MaxRetries int           `yaml:"max_retries" default:"3"`
		RateLimit  int           `yaml:"rate_limit" default:"120"` // sends per minute
	} `yaml:"email"`

	OTP struct {
		TTL         time.Duration `yaml:"ttl" default:"10m"`
		MaxAttempts int           `yaml:"max_attempts" default:"5"`
	} `yaml:"otp"`

	Matching struct {
		RecommendLimit int `yaml:"recommend_limit" default:"20"`
		JobFetchLimit  int `yaml:"job_fetch_limit" default:"200"`
	} `yaml:"matching"`

	Outreach struct {
		PoolSize  int `yaml:"pool_size" default:"4"`
		QueueSize int `yaml:"queue_size" default:"256"`
		DefaultN  int `yaml:"default_n" default:"10"`
	} `yaml:"outreach"`

	LLM struct {
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model" default:"claude-3-haiku-20240307"`
		MaxTokens   int           `yaml:"max_tokens" default:"4096"`
		Temperature float32       `yaml:"temperature" default:"0.1"`
		Timeout     time.Duration `yaml:"timeout" default:"60s"`
	} `yaml:"llm"`

	Scheduler struct {
		Enabled     bool          `yaml:"enabled" default:"true"`
		DigestSpec  string        `yaml:"digest_spec" default:"0 8 * * *"`
		CleanupSpec string        `yaml:"cleanup_spec" default:"30 2 * * *"`
		JobMaxAge   time.Duration `yaml:"job_max_age" default:"2160h"` // 90 days
		DigestJobs  int           `yaml:"digest_jobs" default:"5"`
	} `yaml:"scheduler"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Database.MaxConns = 10
	config.Database.ConnectTimeout = 10 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Auth.Timeout = 10 * time.Second

	config.Email.BaseURL = "https://api.mailrelay.dev"
	config.Email.From = "no-reply@talenthub.app"
	config.Email.Timeout = 15 * time.Second
	config.Email.MaxRetries = 3
	config.Email.RateLimit = 120

	config.OTP.TTL = 10 * time.Minute
	config.OTP.MaxAttempts = 5

	config.Matching.RecommendLimit = 20
	config.Matching.JobFetchLimit = 200

	config.Outreach.PoolSize = 4
	config.Outreach.QueueSize = 256
	config.Outreach.DefaultN = 10

	config.LLM.Model = "claude-3-haiku-20240307"
	config.LLM.MaxTokens = 4096
	config.LLM.Temperature = 0.1
	config.LLM.Timeout = 60 * time.Second

	config.Scheduler.Enabled = true
	config.Scheduler.DigestSpec = "0 8 * * *"
	config.Scheduler.CleanupSpec = "30 2 * * *"
	config.Scheduler.JobMaxAge = 90 * 24 * time.Hour
	config.Scheduler.DigestJobs = 5

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
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

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}

	if maxConns := os.Getenv("DATABASE_MAX_CONNS"); maxConns != "" {
		if n, err := strconv.Atoi(maxConns); err == nil {
			c.Database.MaxConns = int32(n)
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if authURL := os.Getenv("AUTH_BASE_URL"); authURL != "" {
		c.Auth.BaseURL = authURL
	}

	if emailURL := os.Getenv("EMAIL_BASE_URL"); emailURL != "" {
		c.Email.BaseURL = emailURL
	}

	if emailKey := os.Getenv("EMAIL_API_KEY"); emailKey != "" {
		c.Email.APIKey = emailKey
	}

	if emailFrom := os.Getenv("EMAIL_FROM"); emailFrom != "" {
		c.Email.From = emailFrom
	}

	if llmKey := os.Getenv("LLM_API_KEY"); llmKey != "" {
		c.LLM.APIKey = llmKey
	}

	if llmModel := os.Getenv("LLM_MODEL"); llmModel != "" {
		c.LLM.Model = llmModel
	}

	if otpTTL := os.Getenv("OTP_TTL"); otpTTL != "" {
		if ttl, err := time.ParseDuration(otpTTL); err == nil {
			c.OTP.TTL = ttl
		}
	}

	if schedEnabled := os.Getenv("SCHEDULER_ENABLED"); schedEnabled != "" {
		c.Scheduler.Enabled = schedEnabled == "true" || schedEnabled == "1"
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
