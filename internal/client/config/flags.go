package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base URL
//	-d string   session database path
//	-t int      request timeout in seconds
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flag
// handled by parseFile does not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the Hack-or-Snooze API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (error, warn, info, debug)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout in seconds, 0 disables it")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
