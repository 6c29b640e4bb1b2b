package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables recognized by parseEnv.
const (
	EnvHTTPAddress           = "HTTP_ADDRESS"
	EnvGRPCAddress           = "GRPC_ADDRESS"
	EnvSecretKey             = "SECRET_KEY"
	EnvTokenValidity         = "TOKEN_VALIDITY"
	EnvTranslatorURL         = "TRANSLATOR_URL"
	EnvTranslatorAPIKey      = "TRANSLATOR_API_KEY"
	EnvTranslatorTimeout     = "TRANSLATOR_TIMEOUT"
	EnvTranslatorMaxRetries  = "TRANSLATOR_MAX_RETRIES"
	EnvTranslateRequiresAuth = "TRANSLATE_REQUIRES_AUTH"
	EnvLogLevel              = "LOG_LEVEL"
)

// parseEnv overlays values from the process environment. A set-but-empty
// GRPC_ADDRESS disables the gRPC listener; other empty values are ignored.
// Unparsable durations, integers or booleans panic.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(EnvHTTPAddress); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(EnvGRPCAddress); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := os.LookupEnv(EnvSecretKey); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvTokenValidity); ok && v != "" {
		config.TokenValidityDuration = mustDuration(EnvTokenValidity, v)
	}
	if v, ok := os.LookupEnv(EnvTranslatorURL); ok && v != "" {
		config.TranslatorURL = v
	}
	if v, ok := os.LookupEnv(EnvTranslatorAPIKey); ok && v != "" {
		config.TranslatorAPIKey = v
	}
	if v, ok := os.LookupEnv(EnvTranslatorTimeout); ok && v != "" {
		config.TranslatorTimeout = mustDuration(EnvTranslatorTimeout, v)
	}
	if v, ok := os.LookupEnv(EnvTranslatorMaxRetries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvTranslatorMaxRetries, err))
		}
		config.TranslatorMaxRetries = n
	}
	if v, ok := os.LookupEnv(EnvTranslateRequiresAuth); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvTranslateRequiresAuth, err))
		}
		config.TranslateRequiresAuth = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return d
}
