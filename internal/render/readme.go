package render

import (
	"fmt"
	"path"
	"strings"
	"text/template"
	"time"

	"folder2github/internal/analyze"
)

// typeStyle is the (emoji, title-phrase) pair selected per project type.
type typeStyle struct {
	Emoji string
	Title string
}

var typeStyles = map[analyze.ProjectType]typeStyle{
	analyze.TypeMemoryManagement: {"🧠", "Memory Management"},
	analyze.TypeMonitoringAPI:    {"📊", "Monitoring API"},
	analyze.TypeAutomation:       {"🧪", "Automation Framework"},
	analyze.TypeClipboard:        {"📋", "Clipboard Management"},
	analyze.TypeKDETools:         {"🖥️", "KDE Tools"},
	analyze.TypeSystemManagement: {"🛠️", "System Management"},
	analyze.TypeGeneral:          {"⚙️", "Development Tools"},
}

// StyleFor returns the emoji/title pair for a project type, falling back to
// the general pair for unknown labels.
func StyleFor(t analyze.ProjectType) (emoji, title string) {
	style, ok := typeStyles[t]
	if !ok {
		style = typeStyles[analyze.TypeGeneral]
	}
	return style.Emoji, style.Title
}

// structureCap is how many entries of each category the repository-structure
// diagram lists before collapsing into a "+N more" line.
const structureCap = 3

// Readme renders the README document for ctx. ts feeds the single
// generated-at line; everything else is a pure function of ctx.
func Readme(ctx Context, ts time.Time) (string, error) {
	if err := ctx.validate(true); err != nil {
		return "", err
	}
	a := ctx.Analysis
	emoji, typeTitle := StyleFor(a.Type)

	var blocks []string

	header, err := execTemplate("readme/header.md.tmpl", map[string]string{
		"Emoji":       emoji,
		"Title":       titleCase(ctx.RepoName),
		"Description": ctx.Description,
		"TypeTitle":   typeTitle,
	})
	if err != nil {
		return "", err
	}
	blocks = append(blocks, header)
	blocks = append(blocks, featuresBlock(a.Type))

	for _, lang := range []struct {
		lang analyze.Language
		name string
	}{
		{analyze.LanguagePython, "readme/lang_python.md"},
		{analyze.LanguageRust, "readme/lang_rust.md"},
		{analyze.LanguageShell, "readme/lang_shell.md"},
	} {
		if a.HasLanguage(lang.lang) {
			blocks = append(blocks, block(lang.name))
		}
	}

	blocks = append(blocks, structureSection(ctx.RepoName, a))

	blocks = append(blocks, block("readme/quickstart_open.md"))
	if a.HasLanguage(analyze.LanguagePython) {
		blocks = append(blocks, block("readme/prereq_python.md"))
	}
	if a.HasLanguage(analyze.LanguageRust) {
		blocks = append(blocks, block("readme/prereq_rust.md"))
	}
	blocks = append(blocks, block("readme/prereq_system.md"))

	install, err := execTemplate("readme/install.md.tmpl", map[string]string{
		"Owner":    ctx.owner(),
		"RepoName": ctx.RepoName,
	})
	if err != nil {
		return "", err
	}
	blocks = append(blocks, install)
	if len(a.Services) > 0 {
		blocks = append(blocks, block("readme/install_services.md"))
	}

	blocks = append(blocks, block("readme/usage_open.md"))
	if a.ScriptPathContains("test") {
		blocks = append(blocks, block("readme/usage_testing.md"))
	}
	if a.ScriptPathContains("api") {
		blocks = append(blocks, block("readme/usage_api.md"))
	}
	if len(a.Services) > 0 {
		blocks = append(blocks, block("readme/usage_services.md"))
	}

	blocks = append(blocks, block("readme/configuration.md"))
	blocks = append(blocks, block("readme/footer.md"))
	blocks = append(blocks, "\n---\n\n*"+generatedAt(ts)+"*\n")

	return strings.Join(blocks, ""), nil
}

func featuresBlock(t analyze.ProjectType) string {
	if _, ok := typeStyles[t]; !ok {
		t = analyze.TypeGeneral
	}
	return block("readme/features_" + string(t) + ".md")
}

// structureSection draws the repository tree diagram: up to structureCap
// entries per non-empty category, then a "+N more" line.
func structureSection(repoName string, a *analyze.Analysis) string {
	var b strings.Builder
	b.WriteString("\n## 📁 Repository Structure\n\n```\n")
	b.WriteString(repoName + "/\n")

	categories := []struct {
		dir     string
		label   string
		records []analyze.FileRecord
	}{
		{"scripts", "Core functionality", a.Scripts},
		{"services", "SystemD service", a.Services},
		{"config", "Configuration", a.Configs},
		{"docs", "Documentation", a.Docs},
	}
	for _, cat := range categories {
		if len(cat.records) == 0 {
			continue
		}
		b.WriteString("├── " + cat.dir + "/\n")
		for i, rec := range cat.records {
			if i == structureCap {
				break
			}
			b.WriteString(fmt.Sprintf("│   ├── %-30s # %s\n", path.Base(rec.RelPath), cat.label))
		}
		if extra := len(cat.records) - structureCap; extra > 0 {
			b.WriteString(fmt.Sprintf("│   └── ... +%d more\n", extra))
		}
	}

	b.WriteString(fmt.Sprintf("└── %-34s # This file\n", "README.md"))
	b.WriteString("```\n")
	return b.String()
}

func execTemplate(name string, data any) (string, error) {
	tmpl, err := template.New(path.Base(name)).Parse(block(name))
	if err != nil {
		return "", fmt.Errorf("parse fragment %s: %w", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render fragment %s: %w", name, err)
	}
	return b.String(), nil
}
