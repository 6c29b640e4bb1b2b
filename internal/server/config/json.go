package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/speechauth/internal/flagx"
	"github.com/dmitrijs2005/speechauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Interval fields
// use timex.Duration so both "720h" and integer nanoseconds are accepted.
// Absent fields leave the current value in place.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC      *string        `json:"endpoint_addr_grpc"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	TranslatorURL         string         `json:"translator_url"`
	TranslatorAPIKey      string         `json:"translator_api_key"`
	TranslatorTimeout     timex.Duration `json:"translator_timeout"`
	TranslatorMaxRetries  *int           `json:"translator_max_retries"`
	TranslateRequiresAuth *bool          `json:"translate_requires_auth"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Without the flag nothing is loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.TranslatorURL != "" {
		config.TranslatorURL = c.TranslatorURL
	}
	if c.TranslatorAPIKey != "" {
		config.TranslatorAPIKey = c.TranslatorAPIKey
	}
	if c.TranslatorTimeout.Duration != 0 {
		config.TranslatorTimeout = c.TranslatorTimeout.Duration
	}
	if c.TranslatorMaxRetries != nil {
		config.TranslatorMaxRetries = *c.TranslatorMaxRetries
	}
	if c.TranslateRequiresAuth != nil {
		config.TranslateRequiresAuth = *c.TranslateRequiresAuth
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
