package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"folder2github/internal/analyze"
)

func parseJobs(t *testing.T, doc string) map[string]any {
	t.Helper()
	var parsed struct {
		Jobs map[string]any `yaml:"jobs"`
	}
	if err := yaml.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("workflow does not parse: %v", err)
	}
	return parsed.Jobs
}

func TestWorkflow_EmptyDirHasExactlyTwoJobs(t *testing.T) {
	doc, err := Workflow(Context{RepoName: "bare-repo", Analysis: &analyze.Analysis{Type: analyze.TypeGeneral}}, fixedTS)
	if err != nil {
		t.Fatalf("Workflow: %v", err)
	}

	jobs := parseJobs(t, doc)
	if len(jobs) != 2 {
		t.Errorf("job count = %d, want 2 (validate + security-check): %v", len(jobs), jobs)
	}
	for _, name := range []string{"validate", "security-check"} {
		if _, ok := jobs[name]; !ok {
			t.Errorf("missing job %q", name)
		}
	}
}

func TestWorkflow_ShellOnlyScenario(t *testing.T) {
	// install.sh, config.yaml, README.md at top level.
	a := &analyze.Analysis{
		Type:      analyze.TypeGeneral,
		Languages: []analyze.Language{analyze.LanguageShell},
		Scripts:   []analyze.FileRecord{script("install.sh", analyze.LanguageShell)},
		Configs:   []analyze.FileRecord{{RelPath: "config.yaml", Category: analyze.CategoryConfig}},
		Docs:      []analyze.FileRecord{{RelPath: "README.md", Category: analyze.CategoryDoc}},
	}
	doc, err := Workflow(Context{RepoName: "installer", Analysis: a}, fixedTS)
	if err != nil {
		t.Fatalf("Workflow: %v", err)
	}

	jobs := parseJobs(t, doc)
	if len(jobs) != 3 {
		t.Errorf("job count = %d, want 3: %v", len(jobs), jobs)
	}
	for _, name := range []string{"validate", "shell-validation", "security-check"} {
		if _, ok := jobs[name]; !ok {
			t.Errorf("missing job %q", name)
		}
	}
	for _, name := range []string{"python-validation", "rust-validation", "systemd-validation"} {
		if _, ok := jobs[name]; ok {
			t.Errorf("unexpected job %q", name)
		}
	}
}

func TestWorkflow_AllJobsInFixedOrder(t *testing.T) {
	a := &analyze.Analysis{
		Type: analyze.TypeGeneral,
		Languages: []analyze.Language{
			analyze.LanguagePython, analyze.LanguageRust, analyze.LanguageShell,
		},
		Scripts: []analyze.FileRecord{
			script("a.py", analyze.LanguagePython),
			script("b.sh", analyze.LanguageShell),
			script("c.rs", analyze.LanguageRust),
		},
		Services: []analyze.FileRecord{{RelPath: "x.service", Category: analyze.CategoryService}},
	}
	doc, err := Workflow(Context{RepoName: "everything", Analysis: a}, fixedTS)
	if err != nil {
		t.Fatalf("Workflow: %v", err)
	}

	order := []string{
		"validate:",
		"python-validation:",
		"shell-validation:",
		"rust-validation:",
		"systemd-validation:",
		"security-check:",
	}
	last := -1
	for _, name := range order {
		idx := strings.Index(doc, "\n  "+name)
		if idx < 0 {
			t.Fatalf("job %q not found in workflow", name)
		}
		if idx < last {
			t.Errorf("job %q out of order", name)
		}
		last = idx
	}

	if len(parseJobs(t, doc)) != 6 {
		t.Errorf("expected 6 jobs")
	}
}

func TestWorkflowJobs(t *testing.T) {
	a := &analyze.Analysis{
		Type:      analyze.TypeGeneral,
		Languages: []analyze.Language{analyze.LanguagePython},
		Scripts:   []analyze.FileRecord{script("tool.py", analyze.LanguagePython)},
	}
	got := WorkflowJobs(a)
	want := []string{"validate", "python-validation", "security-check"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WorkflowJobs (-want +got):\n%s", diff)
	}
}

func TestWorkflow_Deterministic(t *testing.T) {
	ctx := Context{RepoName: "r", Analysis: &analyze.Analysis{Type: analyze.TypeGeneral}}
	first, err := Workflow(ctx, fixedTS)
	if err != nil {
		t.Fatalf("Workflow: %v", err)
	}
	second, err := Workflow(ctx, fixedTS)
	if err != nil {
		t.Fatalf("Workflow: %v", err)
	}
	if first != second {
		t.Error("two renders of the same context differ")
	}
}

func TestWorkflow_InvalidContext(t *testing.T) {
	_, err := Workflow(Context{Analysis: &analyze.Analysis{}}, fixedTS)
	if !errors.Is(err, ErrInvalidContext) {
		t.Errorf("want ErrInvalidContext, got %v", err)
	}
	_, err = Workflow(Context{RepoName: "r"}, fixedTS)
	if !errors.Is(err, ErrInvalidContext) {
		t.Errorf("want ErrInvalidContext for nil analysis, got %v", err)
	}
}

func TestWorkflow_TimestampHeaderLine(t *testing.T) {
	doc, err := Workflow(Context{RepoName: "r", Analysis: &analyze.Analysis{}}, fixedTS)
	if err != nil {
		t.Fatalf("Workflow: %v", err)
	}
	if got := strings.Count(doc, "Generated by folder2github"); got != 1 {
		t.Errorf("timestamp line count = %d, want 1", got)
	}
}
