package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g., ":8000")
//	-d string        database DSN
//	-s string        token HMAC secret key
//	-t int           access token validity, minutes
//	-k int           bcrypt cost
//	-o string        comma-separated CORS origins
//	-l string        log level
//	-admin-auth      require a bearer token on /api/admin/users
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and unknown
// flags do not make the FlagSet fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-s", "-t", "-k", "-o", "-l", "-admin-auth"},
		"-admin-auth")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.AdminUsersRequireAuth, "admin-auth", config.AdminUsersRequireAuth, "require bearer token for admin user listing")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t and -o only override earlier layers when given explicitly, so a
	// sub-minute JSON duration is not rounded away.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "o":
			config.AllowedOrigins = splitOrigins(*origins)
		}
	})
}

func splitOrigins(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
