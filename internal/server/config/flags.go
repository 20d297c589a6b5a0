package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   database DSN (postgres://... or sqlite://...)
//	-s string   token signing key
//	-t int      default access token validity, minutes
//	-l int      login token validity, minutes
//	-p string   password scheme (argon2id | sha256)
//	-v string   log level
//
// Only these flags are considered; -c/-config belongs to parseJson.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-l", "-p", "-v"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing key")

	accessMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	loginMinutes := fs.Int("l", int(config.LoginTokenValidityDuration.Minutes()), "login token validity (in minutes)")

	fs.StringVar(&config.PasswordScheme, "p", config.PasswordScheme, "password hashing scheme")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Minute flags only override when given, so sub-minute values from
	// earlier sources survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
		case "l":
			config.LoginTokenValidityDuration = time.Duration(*loginMinutes) * time.Minute
		}
	})
	return nil
}
