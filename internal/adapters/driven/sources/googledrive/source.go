// Package googledrive implements the DataSource port over the Google
// Drive API. It performs full-text search across the files the
// authenticated account can read.
package googledrive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DataSource = (*Source)(nil)

const (
	// searchPageSize is the number of files requested per search.
	searchPageSize = 10

	// Google allows 10 requests/sec/user on the Drive API; stay below.
	requestsPerSecond = 8.0
	burstSize         = 10
)

// relevanceKeywords make Drive a candidate for document queries.
var relevanceKeywords = []string{
	"doc", "document", "file", "drive", "spreadsheet", "sheet", "slide", "presentation",
}

// Source is a Google Drive data source.
type Source struct {
	service *drive.Service
	limiter *rate.Limiter

	connected bool
}

// NewSource creates a Drive source authenticated by the given OAuth token.
func NewSource(ctx context.Context, token string) (*Source, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	service, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return NewSourceWithService(service), nil
}

// NewSourceWithService creates a source over an existing Drive service.
// Used in tests with a stub endpoint.
func NewSourceWithService(service *drive.Service) *Source {
	return &Source{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// Name returns the display name of the source.
func (s *Source) Name() string {
	return "Google Drive"
}

// Connect verifies access by fetching account information.
func (s *Source) Connect(ctx context.Context) error {
	about, err := s.service.About.Get().Fields("user").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: google drive: %v", domain.ErrSourceUnavailable, err)
	}

	s.connected = true
	if about.User != nil {
		logger.Info("Google Drive connected (account: %s)", about.User.EmailAddress)
	}
	return nil
}

// Disconnect marks the source disconnected. The API client is stateless.
func (s *Source) Disconnect(_ context.Context) error {
	s.connected = false
	return nil
}

// IsRelevantFor reports whether the query sounds like it concerns
// documents or files.
func (s *Source) IsRelevantFor(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range relevanceKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Search performs a full-text file search. Drive returns files ordered
// by relevance when a fullText query is used, so scores decay by rank.
func (s *Source) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	q := fmt.Sprintf("fullText contains '%s' and trashed = false", escapeQuery(query))

	list, err := s.service.Files.List().
		Q(q).
		PageSize(searchPageSize).
		Fields("files(id, name, mimeType, description, webViewLink, modifiedTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(list.Files))
	for i, f := range list.Files {
		content := f.Description
		if content == "" {
			content = fmt.Sprintf("%s, modified %s", kindFor(f.MimeType), formatModified(f.ModifiedTime))
		}

		results = append(results, domain.SearchResult{
			Source:         s.Name(),
			Title:          f.Name,
			Content:        content,
			URL:            f.WebViewLink,
			RelevanceScore: 1.0 - float64(i)*0.08,
			Metadata: map[string]any{
				"fileId":   f.Id,
				"mimeType": f.MimeType,
			},
		})
	}

	return results, nil
}

// escapeQuery escapes quotes and backslashes for a Drive query string.
func escapeQuery(query string) string {
	query = strings.ReplaceAll(query, `\`, `\\`)
	return strings.ReplaceAll(query, `'`, `\'`)
}

// kindFor maps common Drive MIME types to display names.
func kindFor(mimeType string) string {
	switch mimeType {
	case "application/vnd.google-apps.document":
		return "Google Doc"
	case "application/vnd.google-apps.spreadsheet":
		return "Google Sheet"
	case "application/vnd.google-apps.presentation":
		return "Google Slides"
	case "application/vnd.google-apps.folder":
		return "Folder"
	default:
		return "File"
	}
}

// formatModified renders the RFC 3339 timestamp Drive returns.
func formatModified(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}
