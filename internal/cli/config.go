package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/aidtrace/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage aidtrace configuration",
	Long: `Manage aidtrace configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (AID_*, OPENAI_API_KEY)
3. Config file (~/.aidtrace/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after defaults, config file and environment are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(yamlData)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.aidtrace/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath, err := WriteDefaultConfig(filepath.Join(home, configDirName))
		if err != nil {
			return err
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  aidtrace config show\n")
		return nil
	},
}

// WriteDefaultConfig writes the defaults to <dir>/config.yaml. An existing
// file is never overwritten.
func WriteDefaultConfig(dir string) (path string, err error) {
	path = filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s\nUse 'aidtrace config show' to view it, or delete it first to recreate", path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	header := "# aidtrace configuration\n" +
		"#\n" +
		"# Environment overrides (seconds for durations):\n" +
		"#   AID_REQ_TIMEOUT AID_GOOGLE_TIMEOUT AID_TOTAL_BUDGET_SEC\n" +
		"#   AID_SCRAPE_LIMIT AID_THREADS AID_SKIP_PDF AID_CACHE_DIR AID_LOG_LEVEL\n" +
		"#   OPENAI_API_KEY (translator)\n\n"
	if _, err := f.WriteString(header); err != nil {
		return "", fmt.Errorf("error writing config: %w", err)
	}
	if _, err := f.Write(yamlData); err != nil {
		return "", fmt.Errorf("error writing config: %w", err)
	}
	return path, nil
}

// loadRuntime returns the effective config and a logger built from it
func loadRuntime() (*model.Config, *zap.Logger, error) {
	cfg, err := LoadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
