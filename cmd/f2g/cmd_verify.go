package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"folder2github/internal/format"
	"folder2github/internal/logging"
	"folder2github/internal/verify"
)

var verifyFlags struct {
	resultsPath    string
	screenshotPath string
}

var verifyCmd = &cobra.Command{
	Use:   "verify <repo_name>",
	Short: "Verify a published repository page in a headless browser",
	Long: `Opens the hosted repository page and runs the verification checklist:
title, README/LICENSE links, visible source files, description, commit count,
CI indicator, and page content. Each check records PASS, WARN, or FAIL; a
timestamped screenshot and JSON results file are written to the working
directory.

Exit codes: 0 = success (>=80% checks pass), 1 = partial (>=60%), 2 = failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyFlags.resultsPath, "results", "", "Results JSON path (default: verification_results_<unix>.json)")
	f.StringVar(&verifyFlags.screenshotPath, "screenshot", "", "Screenshot path (default: <repo>_verification_<unix>.png)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	repoName := args[0]
	log := logging.New("verify")

	now := time.Now().Unix()
	resultsPath := verifyFlags.resultsPath
	if resultsPath == "" {
		resultsPath = fmt.Sprintf("verification_results_%d.json", now)
	}
	screenshotPath := verifyFlags.screenshotPath
	if screenshotPath == "" {
		screenshotPath = fmt.Sprintf("%s_verification_%d.png", repoName, now)
	}

	width, height := cfg.WindowSize()
	results, runErr := verify.Run(cmd.Context(), repoName, cfg.RepositoryURL(repoName), verify.Options{
		Timeout:        cfg.Verify.Timeout,
		Headless:       cfg.Verify.Headless,
		Width:          width,
		Height:         height,
		ScreenshotPath: screenshotPath,
	})
	if runErr != nil {
		log.Error("browser session failed", "error", runErr)
	}

	// Partial results are still results: persist whatever was collected.
	if err := writeResults(resultsPath, results); err != nil {
		return err
	}

	tbl := format.NewTable(format.ASCII)
	tbl.Header("Check", "Status")
	for _, line := range results.Summary() {
		name, status, _ := cut(line)
		tbl.Row(name, status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())

	fmt.Fprintf(cmd.OutOrStdout(), "🎯 Final result: %s\n", results.OverallStatus)
	fmt.Fprintf(cmd.OutOrStdout(), "🔗 Repository: %s\n", results.RepositoryURL)
	fmt.Fprintf(cmd.OutOrStdout(), "⏰ Verified at: %s\n", results.Timestamp)
	fmt.Fprintf(cmd.OutOrStdout(), "📊 Results saved to: %s\n", resultsPath)
	if results.Screenshot != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "📸 Screenshot: %s\n", results.Screenshot)
	}

	if code := results.OverallStatus.ExitCode(); code != 0 {
		return &exitError{code: code, msg: fmt.Sprintf("verification %s", results.OverallStatus)}
	}
	return nil
}

func writeResults(path string, results *verify.Results) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// cut splits a "name: STATUS" summary line.
func cut(line string) (name, status string, ok bool) {
	for i := 0; i+1 < len(line); i++ {
		if line[i] == ':' && line[i+1] == ' ' {
			return line[:i], line[i+2:], true
		}
	}
	return line, "", false
}
