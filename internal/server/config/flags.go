package config

import (
	"flag"
	"os"
	"time"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token lifetime, minutes
//	-g string   user-directory gateway base URL
//	-k string   user-directory shared secret
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-g", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "secret key")

	tokenLifetime := fs.Int("t", int(config.TokenLifetime.Minutes()), "token lifetime (in minutes)")

	fs.StringVar(&config.DirectoryBaseURL, "g", config.DirectoryBaseURL, "user-directory gateway base URL")
	fs.StringVar(&config.DirectorySecret, "k", config.DirectorySecret, "user-directory shared secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// The -t flag carries whole minutes, so applying it unconditionally would
	// round away a finer-grained lifetime coming from the environment. Only
	// override when the flag was actually given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenLifetime = time.Duration(*tokenLifetime) * time.Minute
		}
	})
}
