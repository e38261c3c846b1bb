// Package slack implements the DataSource port over the Slack Web API.
// It searches messages across the workspace the token belongs to.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DataSource = (*Source)(nil)

const (
	// defaultBaseURL is the Slack Web API endpoint.
	defaultBaseURL = "https://slack.com/api"

	// defaultTimeout is the HTTP request timeout.
	defaultTimeout = 30 * time.Second

	// searchCount is the number of matches requested per search.
	searchCount = 10

	// Slack Web API Tier 2 methods allow roughly 20 requests per minute.
	requestsPerSecond = 0.33
	burstSize         = 3
)

// relevanceKeywords make Slack a candidate for conversational queries.
var relevanceKeywords = []string{
	"said", "mentioned", "discussion", "conversation", "message", "chat", "slack",
}

// Source is a Slack data source searching workspace messages.
type Source struct {
	token   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter

	connected bool
}

// Option configures a Source.
type Option func(*Source)

// WithBaseURL overrides the Slack API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(s *Source) { s.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// NewSource creates a Slack source authenticated by the given token.
func NewSource(token string, opts ...Option) *Source {
	s := &Source{
		token:   token,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the display name of the source.
func (s *Source) Name() string {
	return "Slack"
}

// Connect verifies the token against auth.test.
func (s *Source) Connect(ctx context.Context) error {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
		Team  string `json:"team"`
	}
	if err := s.call(ctx, "auth.test", nil, &resp); err != nil {
		return fmt.Errorf("%w: slack: %v", domain.ErrSourceUnavailable, err)
	}
	if !resp.OK {
		return fmt.Errorf("%w: slack: %s", domain.ErrSourceUnavailable, resp.Error)
	}

	s.connected = true
	logger.Info("Slack connected (team: %s)", resp.Team)
	return nil
}

// Disconnect marks the source disconnected. Slack needs no teardown.
func (s *Source) Disconnect(_ context.Context) error {
	s.connected = false
	return nil
}

// IsRelevantFor reports whether the query sounds like it concerns
// conversations or messages.
func (s *Source) IsRelevantFor(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range relevanceKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// searchResponse is the subset of search.messages we consume.
type searchResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Messages struct {
		Matches []struct {
			Text      string `json:"text"`
			Permalink string `json:"permalink"`
			Username  string `json:"username"`
			Timestamp string `json:"ts"`
			Channel   struct {
				Name string `json:"name"`
			} `json:"channel"`
		} `json:"matches"`
	} `json:"messages"`
}

// Search queries search.messages and maps matches to SearchResults.
// Scores decay by rank since Slack returns matches best-first.
func (s *Source) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("count", strconv.Itoa(searchCount))

	var resp searchResponse
	if err := s.call(ctx, "search.messages", params, &resp); err != nil {
		return nil, fmt.Errorf("slack search: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("slack search: %s", resp.Error)
	}

	results := make([]domain.SearchResult, 0, len(resp.Messages.Matches))
	for i, msg := range resp.Messages.Matches {
		channel := msg.Channel.Name
		if channel == "" {
			channel = "unknown"
		}
		results = append(results, domain.SearchResult{
			Source:         s.Name(),
			Title:          fmt.Sprintf("Message in #%s", channel),
			Content:        msg.Text,
			URL:            msg.Permalink,
			RelevanceScore: 1.0 - float64(i)*0.1,
			Metadata: map[string]any{
				"user":      msg.Username,
				"timestamp": msg.Timestamp,
				"channel":   channel,
			},
		})
	}

	return results, nil
}

// call performs a rate-limited GET against a Slack Web API method and
// decodes the JSON envelope into out.
func (s *Source) call(ctx context.Context, method string, params url.Values, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := s.baseURL + "/" + method
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("calling %s: status %d: %s", method, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	return nil
}
