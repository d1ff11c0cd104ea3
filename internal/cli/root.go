package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X .../internal/cli.version=..."
var version = "v0.1.0"

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aidtrace",
	Short: "aidtrace - evidence-backed enrichment of donor aid records",
	Long: `aidtrace enriches terse donor aid records with evidence found in web
pages and PDFs: delivery status, evidence month, named items, source
category and monetary amount. When no amount is reported it estimates one
from item quantities and depreciates stockpile transfers.

Extraction is heuristic and best effort.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aidtrace %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.aidtrace/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.StringVar(&logFormat, "log-format", "", "console or json (overrides log.format)")
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return readConfig(viper.GetViper())
	}
	rootCmd.AddCommand(versionCmd)
}

// readConfig points v at the config file and env bindings and reads the
// file. A missing default file is not an error; a broken one is.
func readConfig(v *viper.Viper) error {
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(filepath.Join(home, configDirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return eris.Wrap(err, "read config")
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "config: %s\n", v.ConfigFileUsed())
	}
	return nil
}
