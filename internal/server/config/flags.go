package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/greeter/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN; empty keeps users in memory
//	-l string   log level (debug, info, warn, error)
//	-t int      read header timeout, seconds
//	-s int      shutdown timeout, seconds
//
// Args are filtered through flagx.FilterArgs first so -c/-config and any
// foreign flags do not reach this parser. Durations are only overwritten
// when their flag was given, so sub-second values from JSON survive.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	readHeaderTimeout := fs.Int("t", int(config.ReadHeaderTimeout.Seconds()), "read header timeout (in seconds)")
	shutdownTimeout := fs.Int("s", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.ReadHeaderTimeout = time.Duration(*readHeaderTimeout) * time.Second
		case "s":
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		}
	})
}
