package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address; empty disables it
//	-s string   session token HMAC secret key
//	-t int      session token validity, hours
//	-l string   translator base URL
//	-k string   translator API key
//	-v string   log level
//	-r          require a Bearer token on /translate
//
// Only these flags are taken from os.Args; -c/-config belongs to parseJson.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-s", "-t", "-l", "-k", "-v"}, "-r")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.StringVar(&config.TranslatorURL, "l", config.TranslatorURL, "translator base URL")
	fs.StringVar(&config.TranslatorAPIKey, "k", config.TranslatorAPIKey, "translator API key")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.BoolVar(&config.TranslateRequiresAuth, "r", config.TranslateRequiresAuth, "require auth on /translate")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only override when given, so sub-hour values from JSON or env survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Hour
		}
	})
}
