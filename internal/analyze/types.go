package analyze

// Category is the coarse file class assigned by extension.
type Category string

const (
	CategoryScript  Category = "script"
	CategoryConfig  Category = "config"
	CategoryDoc     Category = "doc"
	CategoryService Category = "service"
	CategoryOther   Category = "other"
)

// Language is the implementation language detected for script files.
type Language string

const (
	LanguageNone   Language = ""
	LanguagePython Language = "Python"
	LanguageShell  Language = "Shell"
	LanguageRust   Language = "Rust"
)

// languageOrder is the fixed enumeration order used everywhere languages are
// listed, so output never depends on walk order.
var languageOrder = []Language{LanguagePython, LanguageRust, LanguageShell}

// ProjectType is the single coarse label assigned to a scanned directory.
type ProjectType string

const (
	TypeMemoryManagement ProjectType = "memory-management"
	TypeMonitoringAPI    ProjectType = "monitoring-api"
	TypeAutomation       ProjectType = "automation"
	TypeClipboard        ProjectType = "clipboard"
	TypeKDETools         ProjectType = "kde-tools"
	TypeSystemManagement ProjectType = "system-management"
	TypeGeneral          ProjectType = "general"
)

// FileRecord is one file found during a scan. Immutable once created.
type FileRecord struct {
	RelPath  string
	Category Category
	Language Language
}

// Analysis is the aggregate result of scanning a directory.
// Category sequences are sorted by relative path; Languages follow the fixed
// enumeration order. Skipped records per-file read errors that did not abort
// the scan.
type Analysis struct {
	Type      ProjectType
	Languages []Language
	Scripts   []FileRecord
	Configs   []FileRecord
	Docs      []FileRecord
	Services  []FileRecord
	Skipped   []string
}

// HasLanguage reports whether l was detected.
func (a *Analysis) HasLanguage(l Language) bool {
	for _, have := range a.Languages {
		if have == l {
			return true
		}
	}
	return false
}

// ScriptPathContains reports whether any script relative path contains sub,
// case-insensitively. Drives conditional README sub-blocks.
func (a *Analysis) ScriptPathContains(sub string) bool {
	return anyContains(scriptPaths(a.Scripts), sub)
}

// LanguageNames returns the detected languages as strings, in fixed order.
func (a *Analysis) LanguageNames() []string {
	names := make([]string, 0, len(a.Languages))
	for _, l := range a.Languages {
		names = append(names, string(l))
	}
	return names
}

func scriptPaths(scripts []FileRecord) []string {
	paths := make([]string, 0, len(scripts))
	for _, rec := range scripts {
		paths = append(paths, rec.RelPath)
	}
	return paths
}
