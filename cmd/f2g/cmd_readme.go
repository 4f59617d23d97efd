package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"folder2github/internal/analyze"
	"folder2github/internal/format"
	"folder2github/internal/logging"
	"folder2github/internal/render"
)

var readmeCmd = &cobra.Command{
	Use:   "readme <target_dir> <repo_name> <description>",
	Short: "Generate a README.md from a deep directory scan",
	Long: `Walks the full target directory tree, classifies every file, resolves the
project type from script names, and writes <target_dir>/README.md assembled
from the matching template blocks.`,
	Args: cobra.ExactArgs(3),
	RunE: runReadme,
}

func runReadme(cmd *cobra.Command, args []string) error {
	targetDir, repoName, description := args[0], args[1], args[2]
	log := logging.New("readme")

	a, err := analyze.Scan(targetDir, analyze.ModeDeep)
	if err != nil {
		return err
	}
	for _, skipped := range a.Skipped {
		log.Warn("skipped unreadable entry", "entry", skipped)
	}

	doc, err := render.Readme(render.Context{
		RepoName:    repoName,
		Description: description,
		Owner:       cfg.GitHub.Owner,
		Analysis:    a,
	}, time.Now())
	if err != nil {
		return err
	}

	readmePath := filepath.Join(targetDir, "README.md")
	if err := os.WriteFile(readmePath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("write README: %w", err)
	}
	log.Info("README written", "path", readmePath, "type", a.Type)

	languages := strings.Join(a.LanguageNames(), ", ")
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated README.md for %s\n", repoName)
	fmt.Fprintf(cmd.OutOrStdout(), "📊 Repository type: %s\n", a.Type)
	fmt.Fprintf(cmd.OutOrStdout(), "🔧 Languages: %s\n", languages)

	tbl := format.NewTable(format.ASCII)
	tbl.Header("Category", "Files")
	tbl.Row("scripts", len(a.Scripts))
	tbl.Row("configs", len(a.Configs))
	tbl.Row("docs", len(a.Docs))
	tbl.Row("services", len(a.Services))
	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
	return nil
}
