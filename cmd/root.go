package cmd

import (
	"os"

	"github.com/budgetgarden/budgetgarden/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "budgetgarden",
	Short:        "Personal budgeting backend",
	Long:         "Store per-user budget categories and spending, and ask a language model for summaries and advice.",
	Version:      Version,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultPath, "Path to the YAML configuration file")
}

func loadConfig() (config.Application, error) {
	return config.Load(flagConfig)
}
