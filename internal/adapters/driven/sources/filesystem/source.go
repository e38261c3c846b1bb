// Package filesystem implements the DataSource port over a local
// directory tree. It searches plain-text files for query terms and
// scores matches by term frequency. Useful for local notes without
// any external service.
package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DataSource = (*Source)(nil)

const (
	// maxResults caps how many files a single search returns.
	maxResults = 10

	// maxFileSize skips files too large to be notes.
	maxFileSize = 1 << 20 // 1 MiB

	// snippetLength limits the content excerpt per result.
	snippetLength = 200
)

// searchableExtensions lists the file types the source reads.
var searchableExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".rst": true,
	".org": true,
}

// relevanceKeywords make the filesystem a candidate for local-file queries.
var relevanceKeywords = []string{
	"file", "note", "notes", "local", "folder", "directory", "markdown",
}

// Source searches text files under a root directory.
type Source struct {
	root string
}

// NewSource creates a filesystem source rooted at the given directory.
func NewSource(root string) *Source {
	return &Source{root: root}
}

// Name returns the display name of the source.
func (s *Source) Name() string {
	return "Filesystem"
}

// Connect verifies the root directory exists and is readable.
func (s *Source) Connect(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("%w: filesystem root %q: %v", domain.ErrSourceUnavailable, s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: filesystem root %q is not a directory", domain.ErrSourceUnavailable, s.root)
	}
	return nil
}

// Disconnect is a no-op. There is no connection to tear down.
func (s *Source) Disconnect(_ context.Context) error {
	return nil
}

// IsRelevantFor reports whether the query sounds like it concerns
// local files or notes.
func (s *Source) IsRelevantFor(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range relevanceKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Search walks the root and matches files containing any query term.
// Score is the fraction of query terms present plus a small bonus per
// extra occurrence, so files mentioning every term rank first.
func (s *Source) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	var results []domain.SearchResult

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !searchableExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxFileSize {
			return nil
		}

		if result, ok := s.matchFile(path, terms); ok {
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// matchFile scores one file against the query terms. A file matches
// when at least one term occurs in its contents.
func (s *Source) matchFile(path string, terms []string) (domain.SearchResult, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SearchResult{}, false
	}

	content := strings.ToLower(string(data))

	matched := 0
	occurrences := 0
	for _, term := range terms {
		n := strings.Count(content, term)
		if n > 0 {
			matched++
			occurrences += n
		}
	}
	if matched == 0 {
		return domain.SearchResult{}, false
	}

	score := float64(matched) / float64(len(terms))
	score += 0.01 * float64(occurrences-matched)

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}

	return domain.SearchResult{
		Source:         s.Name(),
		Title:          rel,
		Content:        snippetAround(string(data), terms[0]),
		URL:            "file://" + path,
		RelevanceScore: score,
		Metadata: map[string]any{
			"path": path,
		},
	}, true
}

// snippetAround returns the first line containing the term, truncated.
func snippetAround(content, term string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxFileSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(strings.ToLower(line), term) {
			if len(line) > snippetLength {
				return line[:snippetLength] + "..."
			}
			return line
		}
	}

	// Term spans lines or only appears after a scan error. Fall back
	// to the head of the file.
	head := strings.TrimSpace(content)
	if len(head) > snippetLength {
		head = head[:snippetLength] + "..."
	}
	return head
}

// queryTerms lowercases and splits the query, dropping short noise words.
func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 3 {
			terms = append(terms, f)
		}
	}
	return terms
}
