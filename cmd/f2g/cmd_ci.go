package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"folder2github/internal/analyze"
	"folder2github/internal/logging"
	"folder2github/internal/render"
)

var ciCmd = &cobra.Command{
	Use:   "ci <target_dir> <repo_name>",
	Short: "Generate a GitHub Actions CI workflow from a shallow directory scan",
	Long: `Scans the target directory's direct children and writes
<target_dir>/.github/workflows/ci.yml with validation jobs matching the file
types found. The workflow always carries the base validation job and a final
security check; Python, shell, Rust, and SystemD jobs are added when matching
top-level files exist.`,
	Args: cobra.ExactArgs(2),
	RunE: runCI,
}

func runCI(cmd *cobra.Command, args []string) error {
	targetDir, repoName := args[0], args[1]
	log := logging.New("ci")

	a, err := analyze.Scan(targetDir, analyze.ModeShallow)
	if err != nil {
		return err
	}

	doc, err := render.Workflow(render.Context{
		RepoName: repoName,
		Owner:    cfg.GitHub.Owner,
		Analysis: a,
	}, time.Now())
	if err != nil {
		return err
	}

	workflowsDir := filepath.Join(targetDir, ".github", "workflows")
	if err := os.MkdirAll(workflowsDir, 0755); err != nil {
		return fmt.Errorf("create workflows dir: %w", err)
	}
	ciPath := filepath.Join(workflowsDir, "ci.yml")
	if err := os.WriteFile(ciPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("write workflow: %w", err)
	}
	log.Info("workflow written", "path", ciPath, "jobs", len(render.WorkflowJobs(a)))

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated CI workflow for %s\n", repoName)
	fmt.Fprintf(cmd.OutOrStdout(), "🔧 Project type: %s\n", strings.Join(ciCategories(a), ", "))
	return nil
}

// ciCategories names the workflow-relevant categories the shallow scan found.
func ciCategories(a *analyze.Analysis) []string {
	var cats []string
	if a.HasLanguage(analyze.LanguagePython) {
		cats = append(cats, "python")
	}
	if a.HasLanguage(analyze.LanguageShell) {
		cats = append(cats, "shell")
	}
	if a.HasLanguage(analyze.LanguageRust) {
		cats = append(cats, "rust")
	}
	if len(a.Services) > 0 {
		cats = append(cats, "systemd")
	}
	if len(cats) == 0 {
		cats = append(cats, "none")
	}
	return cats
}
