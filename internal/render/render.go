// Package render assembles README and CI workflow documents from a directory
// analysis. Both renderers are pure: identical context and timestamp produce
// byte-identical output. Fixed text blocks are embedded fragments selected by
// category flags and joined once.
package render

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"folder2github/internal/analyze"
)

//go:embed templates
var templates embed.FS

// ErrInvalidContext reports a renderer invoked with missing required fields.
var ErrInvalidContext = errors.New("invalid template context")

// ErrMalformedWorkflow reports that an assembled workflow failed YAML
// self-validation. This guards the tool's core promise: generated workflows
// parse.
var ErrMalformedWorkflow = errors.New("generated workflow is not valid YAML")

// Context is the renderer input. No mutation after construction.
type Context struct {
	RepoName    string
	Description string // README only
	Owner       string // GitHub account for clone URLs; empty means swipswaps
	Analysis    *analyze.Analysis
}

func (c Context) owner() string {
	if c.Owner == "" {
		return "swipswaps"
	}
	return c.Owner
}

func (c Context) validate(needDescription bool) error {
	if c.RepoName == "" {
		return fmt.Errorf("%w: repo name is empty", ErrInvalidContext)
	}
	if c.Analysis == nil {
		return fmt.Errorf("%w: analysis is nil", ErrInvalidContext)
	}
	if needDescription && c.Description == "" {
		return fmt.Errorf("%w: description is empty", ErrInvalidContext)
	}
	return nil
}

// block loads one embedded fragment. Fragments are compiled in, so a missing
// name is a programming error.
func block(name string) string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("render: missing embedded fragment %s: %v", name, err))
	}
	return string(data)
}

// titleCase turns "kde-memory-guardian" into "Kde Memory Guardian".
func titleCase(repoName string) string {
	words := strings.Split(strings.ReplaceAll(repoName, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// generatedAt is the single timestamp line allowed in generated documents.
func generatedAt(ts time.Time) string {
	return "Generated by folder2github on " + ts.UTC().Format(time.RFC3339)
}
