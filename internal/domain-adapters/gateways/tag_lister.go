// Package gateways contains the impure adapters for the bootstrap domain:
// remote tag listing, installer download and execution, and toolchain
// component management.
package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ochairo/preflight/internal/domain/entities"
)

const defaultAPIBase = "https://api.github.com"

// maxTagPages bounds Link-header pagination; 10 pages of 100 tags is far
// beyond any release history a bootstrap run needs to sort.
const maxTagPages = 10

// RemoteTagLister lists tags for a source reference. Two source formats are
// supported, dispatched by prefix:
//
//	github:owner/repo  - GitHub tags API (JSON)
//	git:url            - git ls-remote --tags against any git remote
//
// Failures are not retried; the caller aborts the whole run.
type RemoteTagLister struct {
	httpClient *http.Client
}

// NewRemoteTagLister creates a tag lister. A non-positive timeout falls back
// to a 10 second default, which is plenty for a tag listing.
func NewRemoteTagLister(timeout time.Duration) *RemoteTagLister {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteTagLister{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListTags returns the raw tag names for a source, in remote order.
// An empty result is not an error here; selection decides that downstream.
func (l *RemoteTagLister) ListTags(ctx context.Context, source string) ([]string, error) {
	switch {
	case strings.HasPrefix(source, "github:"):
		return l.listGitHubTags(ctx, strings.TrimPrefix(source, "github:"))
	case strings.HasPrefix(source, "git:"):
		return l.listGitRefs(ctx, strings.TrimPrefix(source, "git:"))
	default:
		return nil, &entities.RemoteQueryError{
			Source: source,
			Err:    fmt.Errorf("unsupported tag source format"),
		}
	}
}

// apiBaseURL allows tests and GitHub Enterprise hosts to redirect API calls.
func apiBaseURL() string {
	base := strings.TrimSpace(os.Getenv("PREFLIGHT_API_BASE"))
	if base == "" {
		return defaultAPIBase
	}
	return strings.TrimRight(base, "/")
}

// githubTag represents a GitHub tag
type githubTag struct {
	Name string `json:"name"`
}

func (l *RemoteTagLister) listGitHubTags(ctx context.Context, repo string) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/tags?per_page=100", apiBaseURL(), repo)

	var names []string
	for page := 0; url != "" && page < maxTagPages; page++ {
		pageNames, next, err := l.fetchTagPage(ctx, repo, url)
		if err != nil {
			return nil, err
		}
		names = append(names, pageNames...)
		url = next
	}
	return names, nil
}

// fetchTagPage fetches one page of the tags listing and returns the URL of
// the next page from the Link header, or "" on the last page.
func (l *RemoteTagLister) fetchTagPage(ctx context.Context, repo, url string) ([]string, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", &entities.RemoteQueryError{Source: "github:" + repo, Err: err}
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	// Add GitHub token if available (required for higher rate limits)
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, "", &entities.RemoteQueryError{Source: "github:" + repo, Err: err}
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if readErr != nil {
			return nil, "", &entities.RemoteQueryError{
				Source: "github:" + repo,
				Err:    fmt.Errorf("GitHub API error %d (failed to read response)", resp.StatusCode),
			}
		}
		return nil, "", &entities.RemoteQueryError{
			Source: "github:" + repo,
			Err:    fmt.Errorf("GitHub API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var tags []githubTag
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, "", &entities.RemoteQueryError{
			Source: "github:" + repo,
			Err:    fmt.Errorf("failed to parse GitHub response: %w", err),
		}
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target from a GitHub Link header,
// e.g. `<https://api.github.com/...&page=2>; rel="next", <...>; rel="last"`.
// Returns "" when there is no next page.
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.TrimSpace(section[1]) != `rel="next"` {
			continue
		}
		target := strings.TrimSpace(section[0])
		return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
	}
	return ""
}

func (l *RemoteTagLister) listGitRefs(ctx context.Context, remote string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--tags", remote)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "git ls-remote failed"
		}
		return nil, &entities.RemoteQueryError{
			Source: "git:" + remote,
			Err:    fmt.Errorf("%s: %w", detail, err),
		}
	}

	return parseTagRefs(stdout.String()), nil
}

// parseTagRefs extracts tag names from git ls-remote output: one
// "<oid>\trefs/tags/<name>" line per tag. Peeled ^{} entries duplicate
// their annotated tag and are dropped.
func parseTagRefs(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		ref := fields[len(fields)-1]
		if !strings.HasPrefix(ref, "refs/tags/") {
			continue
		}

		name := strings.TrimPrefix(ref, "refs/tags/")
		if strings.HasSuffix(name, "^{}") {
			continue
		}
		names = append(names, name)
	}
	return names
}
