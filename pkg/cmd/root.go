package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/publitio/publitio-go/pkg/cmd/cmdutil"
)

var RootCmd = &cobra.Command{
	Use:   "publitio",
	Short: "publitio api client",
	Long:  "command line client for the publitio media management api",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotenv(viper.GetString("dotenv")); err != nil {
			return err
		}

		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}

		return nil
	},
}

func init() {
	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

// loadDotenv loads the dotenv file when it exists. Variables already set in
// the environment win over the file.
func loadDotenv(dotenvFile string) error {
	if len(dotenvFile) == 0 {
		return nil
	}

	if _, err := os.Stat(dotenvFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(dotenvFile); err != nil {
		return errors.Wrapf(err, "unable to load dotenv file %s", dotenvFile)
	}

	log.Debugf("loaded dotenv file %s", dotenvFile)
	return nil
}

func Execute() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
