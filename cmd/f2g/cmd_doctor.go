package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folder2github/internal/doctor"
	"folder2github/internal/format"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Check a folder2github shell installation",
	Long: `Verifies that the wrapper scripts and safety docs are present, that the
scripts are executable, and that the safe wrapper advertises its safety
options. Defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	results, ok := doctor.Run(cmd.Context(), dir, cfg.Verify.Timeout)

	tbl := format.NewTable(format.ASCII)
	tbl.Header("Check", "Status", "Detail")
	for _, r := range results {
		tbl.Row(r.Name, r.Status, r.Detail)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())

	if !ok {
		return &exitError{code: 1, msg: "installation checks failed"}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Installation looks healthy")
	return nil
}
