package analyze

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"
)

// Mode selects how much of the target directory a scan sees.
type Mode int

const (
	// ModeShallow enumerates only the direct children of the target
	// directory. Used for CI workflow generation.
	ModeShallow Mode = iota
	// ModeDeep walks the full tree. Used for README content analysis.
	ModeDeep
)

// Scan analyzes the directory at dir and returns its Analysis.
// A missing directory fails with an error satisfying errors.Is(err,
// fs.ErrNotExist); an unreadable one with fs.ErrPermission. Individual
// unreadable entries are recorded in Analysis.Skipped and never abort the
// scan. Project type resolution runs in deep mode only.
func Scan(dir string, mode Mode) (*Analysis, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: %w", dir, fs.ErrInvalid)
	}

	a := &Analysis{Type: TypeGeneral}

	switch mode {
	case ModeShallow:
		err = scanShallow(dir, a)
	case ModeDeep:
		err = scanDeep(dir, a)
	default:
		return nil, fmt.Errorf("scan %s: unknown mode %d", dir, mode)
	}
	if err != nil {
		return nil, err
	}

	finalize(a, mode)
	return a, nil
}

func scanShallow(dir string, a *Analysis) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		record(a, entry.Name())
	}
	return nil
}

func scanDeep(dir string, a *Analysis) error {
	matcher := loadGitignore(dir)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("scan %s: %w", dir, err)
			}
			// Best-effort enumeration: log and move on.
			a.Skipped = append(a.Skipped, fmt.Sprintf("%s: %v", path, err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return fs.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		record(a, rel)
		return nil
	})
	return walkErr
}

// loadGitignore compiles the target's root .gitignore when present.
// A missing or malformed file just disables ignore handling.
func loadGitignore(dir string) *ignore.GitIgnore {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return matcher
}

func record(a *Analysis, relPath string) {
	relPath = filepath.ToSlash(relPath)
	class := classifyName(filepath.Base(relPath))
	rec := FileRecord{RelPath: relPath, Category: class.Category, Language: class.Language}

	switch class.Category {
	case CategoryScript:
		a.Scripts = append(a.Scripts, rec)
	case CategoryConfig:
		a.Configs = append(a.Configs, rec)
	case CategoryDoc:
		a.Docs = append(a.Docs, rec)
	case CategoryService:
		a.Services = append(a.Services, rec)
	}
}

// finalize sorts the category sequences, dedups languages into the fixed
// enumeration order, and resolves the project type for deep scans.
func finalize(a *Analysis, mode Mode) {
	for _, seq := range [][]FileRecord{a.Scripts, a.Configs, a.Docs, a.Services} {
		sort.Slice(seq, func(i, j int) bool { return seq[i].RelPath < seq[j].RelPath })
	}

	present := make(map[Language]bool, len(a.Scripts))
	for _, rec := range a.Scripts {
		if rec.Language != LanguageNone {
			present[rec.Language] = true
		}
	}
	a.Languages = a.Languages[:0]
	for _, l := range languageOrder {
		if present[l] {
			a.Languages = append(a.Languages, l)
		}
	}

	if mode == ModeDeep {
		a.Type = ResolveProjectType(scriptPaths(a.Scripts), len(a.Services) > 0)
	}
}
