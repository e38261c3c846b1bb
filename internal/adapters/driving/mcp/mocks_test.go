package mcp

import (
	"context"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driven"
	"github.com/queryspan-labs/queryspan-cli/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results   []domain.SearchResult
	progress  []domain.SearchProgress
	formatted string
	sources   []driven.DataSource
	err       error

	lastQuery  string
	lastSource string
}

func (m *mockQueryService) Search(
	_ context.Context,
	query string,
	_ domain.SearchOptions,
	onProgress driving.ProgressFunc,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	if onProgress != nil {
		for _, p := range m.progress {
			onProgress(p)
		}
	}
	return m.results, m.err
}

func (m *mockQueryService) SearchSource(
	_ context.Context,
	sourceName, query string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastSource = sourceName
	m.lastQuery = query
	return m.results, m.err
}

func (m *mockQueryService) FormatResults(_ []domain.SearchResult, _ int) string {
	return m.formatted
}

func (m *mockQueryService) Sources() []driven.DataSource {
	return m.sources
}

// mockUserService is a mock implementation of driving.UserService.
type mockUserService struct {
	users []domain.User
	user  *domain.User
	id    string
	err   error
}

func (m *mockUserService) List(_ context.Context) ([]domain.User, error) {
	return m.users, m.err
}

func (m *mockUserService) Get(_ context.Context, _ string) (*domain.User, error) {
	return m.user, m.err
}

func (m *mockUserService) Create(_ context.Context, _ domain.CreateUser) (string, error) {
	return m.id, m.err
}

func (m *mockUserService) Update(_ context.Context, _ string, _ domain.UserUpdate) error {
	return m.err
}

func (m *mockUserService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockDataSource is a minimal data source for the sources resource.
type mockDataSource struct {
	name string
}

func (m *mockDataSource) Name() string                          { return m.name }
func (m *mockDataSource) Connect(_ context.Context) error       { return nil }
func (m *mockDataSource) Disconnect(_ context.Context) error    { return nil }
func (m *mockDataSource) IsRelevantFor(_ string) bool           { return true }
func (m *mockDataSource) Search(_ context.Context, _ string) ([]domain.SearchResult, error) {
	return nil, nil
}
