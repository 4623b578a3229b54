// Package main is the entry point for the pdfxlsx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/pdfxlsx/internal/config"
	"github.com/tsawler/pdfxlsx/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdfxlsx CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfxlsx",
	Short: "Convert the tables in a PDF into one spreadsheet",
	Long: `pdfxlsx finds the tables on every page of a PDF, groups tables that share
a header row (ignoring case and surrounding whitespace), merges their rows,
and writes the result to an .xlsx workbook.

By default all groups land in a single sheet named Combined_Table. Use
--sheet-per-group to give each header group its own sheet.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfxlsx.yaml or ~/.config/pdfxlsx/pdfxlsx.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.Name)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", config.Name))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSettings returns the configuration held by v and a logger built from
// it.
func loadSettings(v *viper.Viper) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
