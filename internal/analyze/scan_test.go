package analyze

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeTree creates files under dir, making parent directories as needed.
func writeTree(t *testing.T, dir string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relPaths(records []FileRecord) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.RelPath)
	}
	return out
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), ModeDeep)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want fs.ErrNotExist, got %v", err)
	}
}

func TestScan_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "plain.txt")
	_, err := Scan(filepath.Join(dir, "plain.txt"), ModeShallow)
	if err == nil {
		t.Fatal("want error for non-directory target")
	}
}

func TestScan_ShallowSeesOnlyTopLevel(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"install.sh",
		"config.yaml",
		"nested/deep_monitor.py",
	)

	a, err := Scan(dir, ModeShallow)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if diff := cmp.Diff([]string{"install.sh"}, relPaths(a.Scripts)); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
	if a.HasLanguage(LanguagePython) {
		t.Error("shallow scan must not see nested .py file")
	}
	if a.Type != TypeGeneral {
		t.Errorf("shallow scan resolves no project type, got %s", a.Type)
	}
}

func TestScan_DeepSeesFullTree(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"cleanup.sh",
		"nested/memory_monitor.py",
		"units/guardian.service",
		"units/guardian.timer",
		"docs/README.md",
		"conf/settings.conf",
		"image.png",
	)

	a, err := Scan(dir, ModeDeep)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := &Analysis{
		Type:      TypeMemoryManagement,
		Languages: []Language{LanguagePython, LanguageShell},
		Scripts: []FileRecord{
			{RelPath: "cleanup.sh", Category: CategoryScript, Language: LanguageShell},
			{RelPath: "nested/memory_monitor.py", Category: CategoryScript, Language: LanguagePython},
		},
		Configs: []FileRecord{
			{RelPath: "conf/settings.conf", Category: CategoryConfig},
		},
		Docs: []FileRecord{
			{RelPath: "docs/README.md", Category: CategoryDoc},
		},
		Services: []FileRecord{
			{RelPath: "units/guardian.service", Category: CategoryService},
			{RelPath: "units/guardian.timer", Category: CategoryService},
		},
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("analysis mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_LanguageOrderIsFixed(t *testing.T) {
	dir := t.TempDir()
	// Created in reverse of the enumeration order on purpose.
	writeTree(t, dir, "z_tool.sh", "m_perf.rs", "a_util.py")

	a, err := Scan(dir, ModeDeep)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []Language{LanguagePython, LanguageRust, LanguageShell}
	if diff := cmp.Diff(want, a.Languages); diff != "" {
		t.Errorf("language order (-want +got):\n%s", diff)
	}
}

func TestScan_DeepSkipsGitDir(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, ".git/hooks/post-update.sh", "real.sh")

	a, err := Scan(dir, ModeDeep)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if diff := cmp.Diff([]string{"real.sh"}, relPaths(a.Scripts)); diff != "" {
		t.Errorf("scripts (-want +got):\n%s", diff)
	}
}

func TestScan_DeepHonoursGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "keep.py", "build/generated.py", "scratch.sh")
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("build/\nscratch.sh\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := Scan(dir, ModeDeep)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if diff := cmp.Diff([]string{"keep.py"}, relPaths(a.Scripts)); diff != "" {
		t.Errorf("scripts (-want +got):\n%s", diff)
	}
	if a.HasLanguage(LanguageShell) {
		t.Error("ignored scratch.sh still detected")
	}
}

func TestScan_ShallowIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "api_server.py", "sub/other.py")

	a, err := Scan(dir, ModeShallow)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(a.Scripts) != 1 || a.Scripts[0].RelPath != "api_server.py" {
		t.Errorf("scripts = %v, want only api_server.py", relPaths(a.Scripts))
	}
}

func TestScriptPathContains(t *testing.T) {
	a := &Analysis{Scripts: []FileRecord{
		{RelPath: "srv/API_server.py"},
		{RelPath: "run.sh"},
	}}
	if !a.ScriptPathContains("api") {
		t.Error("expected case-insensitive match on 'api'")
	}
	if a.ScriptPathContains("test") {
		t.Error("unexpected match on 'test'")
	}
}
