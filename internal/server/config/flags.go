package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-g string   gRPC bind address (e.g. ":50051")
//	-s string   storage driver: memory, sqlite, postgres
//	-d string   database DSN
//	-k string   session token HMAC secret
//	-t int      session validity, minutes
//	-b int      bcrypt cost
//	-x string   spell-check engine binary
//	-w string   wordlist passed to the engine
//	-l string   log level
//
// os.Args is filtered through flagx.FilterArgs first so -c/-config and
// foreign flags do not make parsing fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-s", "-d", "-k", "-t", "-b", "-x", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve HTTP")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC")
	fs.StringVar(&config.StorageDriver, "s", config.StorageDriver, "storage driver (memory, sqlite, postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.CheckerPath, "x", config.CheckerPath, "spell-check engine binary")
	fs.StringVar(&config.WordlistPath, "w", config.WordlistPath, "wordlist file")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only overwrite when given, so sub-minute values from the file survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		}
	})
}
