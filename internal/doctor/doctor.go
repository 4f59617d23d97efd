// Package doctor checks a folder2github shell installation: the wrapper
// scripts and safety docs must exist, scripts must be executable, and the
// safe wrapper must advertise its safety options.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"folder2github/internal/verify"
)

// expected describes one required installation file.
type expected struct {
	Name        string
	Description string
	Executable  bool
}

// Expected is the fixed installation checklist.
var Expected = []expected{
	{"folder2github.sh", "Main script (safe by default)", true},
	{"folder2github_safe.sh", "Enhanced safe script", true},
	{"folder2github_unsafe.sh", "Original unsafe script", true},
	{"folder2github_wrapper.sh", "Safety wrapper script", true},
	{"README.md", "Documentation", false},
	{"SAFETY_GUIDE.md", "Safety guide", false},
}

// Result is one installation check outcome.
type Result struct {
	Name   string
	Status verify.Status
	Detail string
}

// Run checks the installation under dir. The final help probe runs the safe
// wrapper with a bounded timeout and requires the --backup option in its
// usage output. ok is true only when every check passes.
func Run(ctx context.Context, dir string, timeout time.Duration) (results []Result, ok bool) {
	ok = true
	for _, e := range Expected {
		r := checkFile(filepath.Join(dir, e.Name), e)
		if r.Status != verify.StatusPass {
			ok = false
		}
		results = append(results, r)
	}

	r := probeHelp(ctx, filepath.Join(dir, "folder2github_safe.sh"), timeout)
	if r.Status != verify.StatusPass {
		ok = false
	}
	return append(results, r), ok
}

func checkFile(path string, e expected) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{e.Name, verify.StatusFail, e.Description + " (missing)"}
	}
	if e.Executable && info.Mode().Perm()&0111 == 0 {
		return Result{e.Name, verify.StatusWarn, e.Description + " (not executable)"}
	}
	return Result{e.Name, verify.StatusPass, e.Description}
}

func probeHelp(ctx context.Context, script string, timeout time.Duration) Result {
	const name = "safety features"
	if _, err := os.Stat(script); err != nil {
		return Result{name, verify.StatusFail, "cannot probe: safe script missing"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(probeCtx, script, "--help").CombinedOutput()
	if err != nil {
		return Result{name, verify.StatusFail, fmt.Sprintf("help probe failed: %v", err)}
	}
	if !strings.Contains(string(out), "--backup") {
		return Result{name, verify.StatusFail, "help output does not mention --backup"}
	}
	return Result{name, verify.StatusPass, "help shows safety options"}
}
