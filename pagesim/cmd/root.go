// Package cmd provides the command-line interface for pagesim.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/config"
)

type app struct {
	configPath string
	envFile    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use: "pagesim",
		Short: "pagesim counts the page faults of FIFO, LRU and optimal " +
			"page replacement.",
		Long: `pagesim replays a page reference string against a fixed ` +
			`number of frames and counts the faults and hits of the FIFO, ` +
			`LRU and optimal (Belady) replacement policies. It can run once ` +
			`from the command line or serve the simulation over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(a.configPath, a.envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			a.cfg = cfg

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env",
		"file of environment variables to load, skipped if missing")

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
