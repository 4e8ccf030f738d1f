package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/loopital/ledger-backend/internal/secrets"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Policy   PolicyConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// UpstreamConfig holds the connection settings for the remote marketplace
// backend. Token is the decrypted bearer token; when LEDGER_FERNET_KEY is
// set, the UPSTREAM_API_TOKEN value is treated as a fernet-encrypted blob
// and decrypted at load time.
type UpstreamConfig struct {
	BaseURL string
	Token   string
}

// CacheConfig selects the derived-view cache backend. RedisAddr empty means
// the in-process memory cache is used.
type CacheConfig struct {
	RedisAddr string
}

// PolicyConfig holds the business policy constants that the withdrawal and
// refresh behavior depend on. Values come from an optional YAML policy file
// (LEDGER_POLICY_FILE) with environment variable overrides on top.
type PolicyConfig struct {
	FeeRate           float64 `yaml:"fee_rate"`           // platform fee as a fraction, default 0.02
	MinimumWithdrawal float64 `yaml:"minimum_withdrawal"` // 0 disables the minimum check
	PollSchedule      string  `yaml:"poll_schedule"`      // cron spec with seconds, default every 15s
	CacheTTLSeconds   int     `yaml:"cache_ttl_seconds"`  // derived-view cache TTL
}

// Load reads configuration from environment variables, an optional .env
// file, and an optional YAML policy file.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/loopital_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8080"),
			Token:   os.Getenv("UPSTREAM_API_TOKEN"),
		},
		Cache: CacheConfig{
			RedisAddr: os.Getenv("REDIS_ADDR"),
		},
		Policy: PolicyConfig{
			FeeRate:         0.02,
			PollSchedule:    "*/15 * * * * *",
			CacheTTLSeconds: 15,
		},
	}

	if policyFile := os.Getenv("LEDGER_POLICY_FILE"); policyFile != "" {
		if err := loadPolicyFile(policyFile, &config.Policy); err != nil {
			return nil, err
		}
	}
	applyPolicyEnvOverrides(&config.Policy)

	if key := os.Getenv("LEDGER_FERNET_KEY"); key != "" && config.Upstream.Token != "" {
		token, err := secrets.DecryptToken(config.Upstream.Token, key)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt upstream token: %w", err)
		}
		config.Upstream.Token = token
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// loadPolicyFile overlays policy constants from a YAML file.
func loadPolicyFile(path string, policy *PolicyConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read policy file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, policy); err != nil {
		return fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return nil
}

// applyPolicyEnvOverrides lets individual environment variables win over the
// policy file, which wins over the built-in defaults.
func applyPolicyEnvOverrides(policy *PolicyConfig) {
	if v := os.Getenv("PLATFORM_FEE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			policy.FeeRate = rate
		}
	}
	if v := os.Getenv("MINIMUM_WITHDRAWAL"); v != "" {
		if minimum, err := strconv.ParseFloat(v, 64); err == nil {
			policy.MinimumWithdrawal = minimum
		}
	}
	if v := os.Getenv("POLL_SCHEDULE"); v != "" {
		policy.PollSchedule = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			policy.CacheTTLSeconds = ttl
		}
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
