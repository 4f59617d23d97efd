package verify

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"folder2github/internal/logging"
)

// Options configures the browser verification session.
type Options struct {
	Timeout        time.Duration // per-check wait budget
	Headless       bool
	Width, Height  int
	ScreenshotPath string
}

// Run opens the repository page and executes the full checklist. The browser
// session is always released, whatever path exits. A Results value is
// returned even when the page could not be loaded; err is non-nil only for
// driver-level failures, which the caller still reports as Failed.
func Run(ctx context.Context, repoName, repoURL string, opts Options) (*Results, error) {
	log := logging.New("verifier")

	results := &Results{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		RepositoryURL: repoURL,
		Tests:         make(map[string]Check),
		OverallStatus: OutcomeFailed,
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	log.Info("opening repository page", "url", repoURL)
	if err := runBounded(browserCtx, 3*opts.Timeout, chromedp.Navigate(repoURL)); err != nil {
		results.Tests["critical_error"] = Check{
			Status:  StatusFail,
			Details: map[string]any{"error": err.Error()},
		}
		return results, fmt.Errorf("navigate %s: %w", repoURL, err)
	}

	s := &session{ctx: browserCtx, timeout: opts.Timeout, repoName: repoName}
	checklist := []struct {
		name string
		run  func() Check
	}{
		{"repository_exists", s.checkTitle},
		{"essential_files", s.checkEssentialFiles},
		{"project_files", s.checkProjectFiles},
		{"description", s.checkDescription},
		{"commits", s.checkCommits},
		{"ci_integration", s.checkCIIntegration},
		{"content_verification", s.checkContent},
	}
	for _, item := range checklist {
		check := item.run()
		results.Tests[item.name] = check
		log.Info("checklist item done", "check", item.name, "status", check.Status)
	}

	if opts.ScreenshotPath != "" {
		if err := s.screenshot(opts.ScreenshotPath); err != nil {
			log.Warn("screenshot failed", "error", err)
		} else {
			results.Screenshot = opts.ScreenshotPath
		}
	}

	results.OverallStatus = Classify(results.Tests)
	return results, nil
}

// session holds the live browser context for the checklist items. Every
// check is independent: it gets its own bounded wait and records WARN or
// FAIL on timeout instead of aborting the run.
type session struct {
	ctx      context.Context
	timeout  time.Duration
	repoName string
}

func runBounded(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	bounded, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(bounded, actions...)
}

func (s *session) run(actions ...chromedp.Action) error {
	return runBounded(s.ctx, s.timeout, actions...)
}

// checkTitle is the only hard check: no h1 means the repository page itself
// did not load.
func (s *session) checkTitle() Check {
	var title string
	if err := s.run(chromedp.Text("h1", &title, chromedp.ByQuery)); err != nil {
		return Check{Status: StatusFail, Details: map[string]any{"error": err.Error()}}
	}
	return Check{Status: StatusPass, Details: map[string]any{"title": strings.TrimSpace(title)}}
}

func (s *session) checkEssentialFiles() Check {
	files := map[string]any{}
	allFound := true
	for _, name := range []string{"README.md", "LICENSE"} {
		js := fmt.Sprintf(
			`Array.from(document.querySelectorAll("a")).some(a => a.textContent.trim() === %q)`, name)
		var found bool
		if err := s.run(chromedp.Evaluate(js, &found)); err != nil || !found {
			files[name] = "NOT_VISIBLE"
			allFound = false
			continue
		}
		files[name] = "FOUND"
	}
	status := StatusPass
	if !allFound {
		status = StatusWarn
	}
	return Check{Status: status, Details: map[string]any{"files": files}}
}

func (s *session) checkProjectFiles() Check {
	js := `Array.from(document.querySelectorAll(
		"a[title$='.py'], a[title$='.sh'], a[title$='.rs'], a[title$='.service']"))
		.slice(0, 5).map(a => a.getAttribute("title"))`
	var files []string
	if err := s.run(chromedp.Evaluate(js, &files)); err != nil {
		return Check{Status: StatusWarn, Details: map[string]any{"error": err.Error()}}
	}
	status := StatusPass
	if len(files) == 0 {
		status = StatusWarn
	}
	return Check{Status: status, Details: map[string]any{"count": len(files), "files": files}}
}

func (s *session) checkDescription() Check {
	js := `(() => {
		const el = document.querySelector("[data-pjax='#repo-content-pjax-container'] p")
			|| document.querySelector("p.f4");
		return el ? el.textContent.trim() : "";
	})()`
	var text string
	if err := s.run(chromedp.Evaluate(js, &text)); err != nil || text == "" {
		return Check{Status: StatusWarn, Details: map[string]any{"error": "description not found"}}
	}
	return Check{Status: StatusPass, Details: map[string]any{"text": text}}
}

func (s *session) checkCommits() Check {
	js := `(() => {
		const el = document.querySelector("a[href*='/commits/']");
		return el ? el.textContent.trim() : "";
	})()`
	var text string
	if err := s.run(chromedp.Evaluate(js, &text)); err != nil || text == "" {
		return Check{Status: StatusWarn, Details: map[string]any{"error": "commit count not found"}}
	}
	return Check{Status: StatusPass, Details: map[string]any{"text": text}}
}

func (s *session) checkCIIntegration() Check {
	js := `document.body.innerText.includes("Actions") || document.body.innerText.includes(".github")`
	var found bool
	if err := s.run(chromedp.Evaluate(js, &found)); err != nil {
		return Check{Status: StatusWarn, Details: map[string]any{"error": err.Error()}}
	}
	if !found {
		return Check{Status: StatusWarn, Details: map[string]any{"found": false}}
	}
	return Check{Status: StatusPass, Details: map[string]any{"found": true}}
}

func (s *session) checkContent() Check {
	var source string
	if err := s.run(chromedp.OuterHTML("html", &source, chromedp.ByQuery)); err != nil {
		return Check{Status: StatusWarn, Details: map[string]any{"error": err.Error()}}
	}
	contains := strings.Contains(strings.ToLower(source), strings.ToLower(s.repoName))
	status := StatusPass
	if !contains {
		status = StatusWarn
	}
	return Check{Status: status, Details: map[string]any{"contains_repo_name": contains}}
}

func (s *session) screenshot(path string) error {
	var buf []byte
	if err := s.run(chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
