// Package config handles configuration for the speechauth server,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/common"
)

// DefaultTokenValidityDuration is how long an issued session token stays valid.
const DefaultTokenValidityDuration = 30 * 24 * time.Hour

// Config holds runtime settings for the speechauth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health service; empty disables it.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - TranslatorURL / TranslatorAPIKey: LibreTranslate-compatible upstream; empty URL disables translation.
//   - TranslatorTimeout / TranslatorMaxRetries: per-call timeout and retry budget for the upstream.
//   - TranslateRequiresAuth: require a valid Bearer token on /translate.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP      string
	EndpointAddrGRPC      string
	SecretKey             string
	TokenValidityDuration time.Duration
	TranslatorURL         string
	TranslatorAPIKey      string
	TranslatorTimeout     time.Duration
	TranslatorMaxRetries  int
	TranslateRequiresAuth bool
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// SecretKey is left empty on purpose; see EnsureSecretKey.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = ""
	c.TokenValidityDuration = DefaultTokenValidityDuration
	c.TranslatorURL = ""
	c.TranslatorAPIKey = ""
	c.TranslatorTimeout = 10 * time.Second
	c.TranslatorMaxRetries = 3
	c.TranslateRequiresAuth = false
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// EnsureSecretKey fills an empty SecretKey with a random per-process value.
// Tokens signed with a generated key do not survive a restart, same as the
// in-memory account store. It reports whether a key was generated.
func (c *Config) EnsureSecretKey() (bool, error) {
	if c.SecretKey != "" {
		return false, nil
	}
	key, err := common.MakeRandHexString(32)
	if err != nil {
		return false, fmt.Errorf("error generating secret key: %w", err)
	}
	c.SecretKey = key
	return true, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.EndpointAddrHTTP == "" {
		return fmt.Errorf("%w: http address is empty", common.ErrorInvalidInput)
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("%w: token validity must be positive, got %s", common.ErrorInvalidInput, c.TokenValidityDuration)
	}
	if c.TranslatorMaxRetries < 0 {
		return fmt.Errorf("%w: translator retries must not be negative", common.ErrorInvalidInput)
	}
	return nil
}
