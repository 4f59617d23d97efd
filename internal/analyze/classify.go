package analyze

import "strings"

// extClass maps a file extension to its category and language.
type extClass struct {
	Category Category
	Language Language
}

var extClasses = map[string]extClass{
	".py":      {CategoryScript, LanguagePython},
	".sh":      {CategoryScript, LanguageShell},
	".rs":      {CategoryScript, LanguageRust},
	".service": {CategoryService, LanguageNone},
	".timer":   {CategoryService, LanguageNone},
	".conf":    {CategoryConfig, LanguageNone},
	".json":    {CategoryConfig, LanguageNone},
	".yaml":    {CategoryConfig, LanguageNone},
	".yml":     {CategoryConfig, LanguageNone},
	".md":      {CategoryDoc, LanguageNone},
	".txt":     {CategoryDoc, LanguageNone},
	".rst":     {CategoryDoc, LanguageNone},
}

// classifyName assigns a category and language from the file name's extension.
// Unknown extensions map to CategoryOther and are excluded from all sequences.
func classifyName(name string) extClass {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return extClass{CategoryOther, LanguageNone}
	}
	if c, ok := extClasses[name[dot:]]; ok {
		return c
	}
	return extClass{CategoryOther, LanguageNone}
}

// TypeRule is one (keywords, label) entry of the project-type resolution
// table. A rule matches when any keyword appears, case-insensitively, in any
// script relative path.
type TypeRule struct {
	Label    ProjectType
	Keywords []string
}

// TypeRules is the ordered resolution table. First match wins; rules are
// evaluated top to bottom, so ordering is part of the contract.
var TypeRules = []TypeRule{
	{TypeMemoryManagement, []string{"memory"}},
	{TypeMonitoringAPI, []string{"monitoring", "api"}},
	{TypeAutomation, []string{"automation", "test"}},
	{TypeClipboard, []string{"clipboard"}},
	{TypeKDETools, []string{"plasma", "kde"}},
}

// ResolveProjectType picks the project type from script relative paths.
// After the keyword rules, a non-empty service-unit sequence classifies as
// system-management; everything else is general. Pure: the result depends
// only on the path set, never on its order.
func ResolveProjectType(scriptRelPaths []string, hasServices bool) ProjectType {
	for _, rule := range TypeRules {
		for _, kw := range rule.Keywords {
			if anyContains(scriptRelPaths, kw) {
				return rule.Label
			}
		}
	}
	if hasServices {
		return TypeSystemManagement
	}
	return TypeGeneral
}

func anyContains(paths []string, sub string) bool {
	sub = strings.ToLower(sub)
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p), sub) {
			return true
		}
	}
	return false
}
