package render

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"folder2github/internal/analyze"
)

// ciJob binds one optional workflow job to the analysis flag that enables it.
// The base validate job and the final security job are unconditional.
type ciJob struct {
	fragment string
	enabled  func(*analyze.Analysis) bool
}

// Conditional jobs in their fixed emission order.
var ciJobs = []ciJob{
	{"ci/python.yml", func(a *analyze.Analysis) bool { return a.HasLanguage(analyze.LanguagePython) }},
	{"ci/shell.yml", func(a *analyze.Analysis) bool { return a.HasLanguage(analyze.LanguageShell) }},
	{"ci/rust.yml", func(a *analyze.Analysis) bool { return a.HasLanguage(analyze.LanguageRust) }},
	{"ci/systemd.yml", func(a *analyze.Analysis) bool { return len(a.Services) > 0 }},
}

// Workflow renders the CI workflow document for ctx. The analysis is expected
// to come from a shallow scan: CI jobs reason only about the target's direct
// children. The assembled document is parsed back with yaml.v3 before being
// returned, so callers never receive a workflow that does not parse.
func Workflow(ctx Context, ts time.Time) (string, error) {
	if err := ctx.validate(false); err != nil {
		return "", err
	}

	header, err := execTemplate("ci/header.yml.tmpl", map[string]string{
		"TitleName":   titleCase(ctx.RepoName),
		"RepoName":    ctx.RepoName,
		"GeneratedAt": generatedAt(ts),
	})
	if err != nil {
		return "", err
	}

	blocks := []string{header}
	for _, job := range ciJobs {
		if job.enabled(ctx.Analysis) {
			blocks = append(blocks, block(job.fragment))
		}
	}
	blocks = append(blocks, block("ci/security.yml"))

	doc := strings.Join(blocks, "")
	if err := checkWorkflow(doc); err != nil {
		return "", err
	}
	return doc, nil
}

// WorkflowJobs lists the job names Workflow would emit for a, in order.
func WorkflowJobs(a *analyze.Analysis) []string {
	names := []string{"validate"}
	fragmentNames := map[string]string{
		"ci/python.yml":  "python-validation",
		"ci/shell.yml":   "shell-validation",
		"ci/rust.yml":    "rust-validation",
		"ci/systemd.yml": "systemd-validation",
	}
	for _, job := range ciJobs {
		if job.enabled(a) {
			names = append(names, fragmentNames[job.fragment])
		}
	}
	return append(names, "security-check")
}

// checkWorkflow parses the assembled document and requires a non-empty jobs
// map. Anything else means a template fragment broke the YAML structure.
func checkWorkflow(doc string) error {
	var parsed struct {
		Name string         `yaml:"name"`
		Jobs map[string]any `yaml:"jobs"`
	}
	if err := yaml.Unmarshal([]byte(doc), &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedWorkflow, err)
	}
	if len(parsed.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs parsed", ErrMalformedWorkflow)
	}
	return nil
}
