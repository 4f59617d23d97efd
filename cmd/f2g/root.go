package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"folder2github/internal/config"
	"folder2github/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "f2g",
	Short: "Scaffold and verify GitHub repository metadata from a local folder",
	Long: "folder2github scans a folder's files to generate README and CI workflow\n" +
		"documents, and verifies published repository pages in a headless browser.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		logging.Init(c.Log.Level, c.Log.Format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ciCmd)
	rootCmd.AddCommand(readmeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

// exitError carries a process exit code through cobra's error path.
// The verify contract needs three codes, not cobra's usual two.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
