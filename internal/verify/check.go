// Package verify drives a browser against a hosted repository page and runs
// an independent pass/warn/fail checklist over it. Soft failures never abort
// the remaining checks; the weighted pass ratio classifies the outcome.
package verify

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Status is the tri-state result of one checklist item.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Outcome is the overall classification band.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomePartial Outcome = "PARTIAL"
	OutcomeFailed  Outcome = "FAILED"
)

// ExitCode maps the outcome to the process exit code contract.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeSuccess:
		return 0
	case OutcomePartial:
		return 1
	default:
		return 2
	}
}

// Check is one checklist item result. Details are flattened next to the
// status in the persisted JSON.
type Check struct {
	Status  Status
	Details map[string]any
}

// MarshalJSON flattens Details alongside the status field.
func (c Check) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Details)+1)
	for k, v := range c.Details {
		if k == "status" {
			continue
		}
		m[k] = v
	}
	m["status"] = c.Status
	return json.Marshal(m)
}

// UnmarshalJSON reverses MarshalJSON.
func (c *Check) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	status, _ := m["status"].(string)
	if status == "" {
		return fmt.Errorf("check is missing status field")
	}
	delete(m, "status")
	c.Status = Status(status)
	if len(m) > 0 {
		c.Details = m
	} else {
		c.Details = nil
	}
	return nil
}

// Results is the persisted verification record.
type Results struct {
	Timestamp     string           `json:"timestamp"`
	RepositoryURL string           `json:"repository_url"`
	Tests         map[string]Check `json:"tests"`
	OverallStatus Outcome          `json:"overall_status"`
	Screenshot    string           `json:"screenshot,omitempty"`
}

// Classify computes the outcome band from the checklist: the ratio of PASS
// checks to all checks, Success at 80%, Partial at 60%. Integer arithmetic
// keeps the band edges exact.
func Classify(tests map[string]Check) Outcome {
	total := len(tests)
	if total == 0 {
		return OutcomeFailed
	}
	passes := 0
	for _, c := range tests {
		if c.Status == StatusPass {
			passes++
		}
	}
	switch {
	case passes*5 >= total*4:
		return OutcomeSuccess
	case passes*5 >= total*3:
		return OutcomePartial
	default:
		return OutcomeFailed
	}
}

// Summary lists check names and statuses in stable name order.
func (r *Results) Summary() []string {
	names := make([]string, 0, len(r.Tests))
	for name := range r.Tests {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, r.Tests[name].Status))
	}
	return lines
}
