// Package github implements the DataSource port over the GitHub API.
// It searches issues and pull requests visible to the token.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DataSource = (*Source)(nil)

const (
	// defaultTimeout is the HTTP request timeout.
	defaultTimeout = 30 * time.Second

	// searchPerPage is the number of results requested per search.
	searchPerPage = 10

	// snippetLength caps the body excerpt carried in a result.
	snippetLength = 300
)

// relevanceKeywords make GitHub a candidate for code and issue queries.
var relevanceKeywords = []string{
	"issue", "pull request", "pr", "bug", "repo", "repository", "commit", "code", "github",
}

// Source is a GitHub data source searching issues and pull requests.
type Source struct {
	client *gh.Client

	connected bool
	login     string
}

// NewSource creates a GitHub source authenticated by the given token.
func NewSource(ctx context.Context, token string) *Source {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = defaultTimeout

	return &Source{client: gh.NewClient(tc)}
}

// NewSourceWithClient creates a source over an existing API client.
// Used in tests with a stub server.
func NewSourceWithClient(client *gh.Client) *Source {
	return &Source{client: client}
}

// Name returns the display name of the source.
func (s *Source) Name() string {
	return "GitHub"
}

// Connect verifies the token by fetching the authenticated user.
func (s *Source) Connect(ctx context.Context) error {
	user, _, err := s.client.Users.Get(ctx, "")
	if err != nil {
		return fmt.Errorf("%w: github: %v", domain.ErrSourceUnavailable, err)
	}

	s.connected = true
	s.login = user.GetLogin()
	logger.Info("GitHub connected (user: %s)", s.login)
	return nil
}

// Disconnect marks the source disconnected. The API client is stateless.
func (s *Source) Disconnect(_ context.Context) error {
	s.connected = false
	return nil
}

// IsRelevantFor reports whether the query sounds like it concerns code,
// issues, or repositories.
func (s *Source) IsRelevantFor(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range relevanceKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Search queries the issue search API. GitHub returns matches
// best-first, so scores decay by rank.
func (s *Source) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: searchPerPage},
	}

	res, _, err := s.client.Search.Issues(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("github search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(res.Issues))
	for i, issue := range res.Issues {
		kind := "Issue"
		if issue.IsPullRequest() {
			kind = "Pull request"
		}

		results = append(results, domain.SearchResult{
			Source:         s.Name(),
			Title:          fmt.Sprintf("%s #%d: %s", kind, issue.GetNumber(), issue.GetTitle()),
			Content:        snippet(issue.GetBody()),
			URL:            issue.GetHTMLURL(),
			RelevanceScore: 1.0 - float64(i)*0.08,
			Metadata: map[string]any{
				"state":  issue.GetState(),
				"author": issue.GetUser().GetLogin(),
				"kind":   strings.ToLower(kind),
			},
		})
	}

	return results, nil
}

// snippet trims an issue body to a short excerpt.
func snippet(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= snippetLength {
		return body
	}
	return body[:snippetLength] + "..."
}
