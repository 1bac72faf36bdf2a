// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperscan CLI.
// paperscan surveys academic search engines for papers on a topic, downloads
// the open-access PDFs, and extracts reported evaluation metrics into a
// plain-text report.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paperscan CLI.
var rootCmd = &cobra.Command{
	Use:   "paperscan",
	Short: "Survey academic papers and extract their evaluation metrics",
	Long: `paperscan searches academic engines for papers on a topic, resolves and
downloads open-access PDFs, and mines the text for reported evaluation
metrics (accuracy, F1, RMSE, BLEU and friends) plus dataset and model
mentions. Results are written to a plain-text report.

Each stage is also exposed as its own subcommand: search runs the result
collection only, extract re-mines already-downloaded PDFs, and survey runs
the full pipeline.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperscan.yaml or ~/.config/paperscan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paperscan"))
		}
	}

	viper.SetEnvPrefix("PAPERSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// viperDuration returns the configured duration for key, or fallback when unset.
func viperDuration(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return fallback
}

// viperString returns the configured string for key, or fallback when unset.
func viperString(key, fallback string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
