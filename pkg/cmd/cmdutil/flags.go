package cmdutil

import (
	"time"

	"github.com/spf13/pflag"
)

// PersistentFlags defines the flags shared by every command.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug flag")
	flags.String("dotenv", ".env.local", "the dotenv file to load before running")
	flags.String("publitio-api-key", "", "publitio api key")
	flags.String("publitio-api-secret", "", "publitio api secret")
	flags.String("publitio-base-url", "", "override the publitio api base url")
	flags.Duration("http-timeout", 2*time.Minute, "http client timeout")
}
