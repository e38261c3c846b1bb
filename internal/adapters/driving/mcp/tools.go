package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/queryspan-labs/queryspan-cli/internal/core/domain"
)

// SearchAllInput is the input schema for the search-all-sources tool.
type SearchAllInput struct {
	Query      string `json:"query" jsonschema:"the search query"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchAllOutput is the output schema for the search-all-sources tool.
type SearchAllOutput struct {
	Report string `json:"report"`
	Count  int    `json:"count"`
}

// SearchSourceInput is the input schema for the search-source tool.
type SearchSourceInput struct {
	Source string `json:"source" jsonschema:"the data source to search, e.g. slack or github"`
	Query  string `json:"query" jsonschema:"the search query"`
}

// SearchSourceOutput is the output schema for the search-source tool.
type SearchSourceOutput struct {
	Report string `json:"report"`
	Count  int    `json:"count"`
}

// CreateUserInput is the input schema for the create-user tool.
type CreateUserInput struct {
	Name    string `json:"name" jsonschema:"full name"`
	Email   string `json:"email" jsonschema:"email address"`
	Address string `json:"address,omitempty" jsonschema:"postal address"`
	Phone   string `json:"phone,omitempty" jsonschema:"phone number"`
}

// CreateUserOutput is the output schema for the create-user tool.
type CreateUserOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UpdateUserInput is the input schema for the update-user tool.
// Absent fields are left unchanged.
type UpdateUserInput struct {
	ID      string  `json:"id" jsonschema:"user ID"`
	Name    *string `json:"name,omitempty" jsonschema:"new full name"`
	Email   *string `json:"email,omitempty" jsonschema:"new email address"`
	Address *string `json:"address,omitempty" jsonschema:"new postal address"`
	Phone   *string `json:"phone,omitempty" jsonschema:"new phone number"`
}

// DeleteUserInput is the input schema for the delete-user tool.
type DeleteUserInput struct {
	ID string `json:"id" jsonschema:"user ID"`
}

// UserOutput is the output schema for the update-user and delete-user tools.
type UserOutput struct {
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search-all-sources",
		Description: "Search across all connected data sources",
	}, s.handleSearchAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search-source",
		Description: "Search a specific data source",
	}, s.handleSearchSource)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create-user",
		Description: "Create a new user record",
	}, s.handleCreateUser)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update-user",
		Description: "Update an existing user's information",
	}, s.handleUpdateUser)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete-user",
		Description: "Delete a user record",
	}, s.handleDeleteUser)
}

// handleSearchAll fans the query out to every relevant source and returns
// a per-source progress transcript followed by the formatted results.
func (s *Server) handleSearchAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchAllInput,
) (*mcp.CallToolResult, SearchAllOutput, error) {
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}

	var transcript []string
	onProgress := func(p domain.SearchProgress) {
		transcript = append(transcript, progressLine(p))
	}

	opts := domain.SearchOptions{MaxResults: maxResults}
	results, err := s.ports.Query.Search(ctx, input.Query, opts, onProgress)
	if err != nil {
		return nil, SearchAllOutput{}, err
	}

	var b strings.Builder
	b.WriteString("Searching across multiple sources...\n\n")
	b.WriteString(strings.Join(transcript, "\n"))
	b.WriteString("\n\n")
	b.WriteString(s.ports.Query.FormatResults(results, maxResults))

	return nil, SearchAllOutput{Report: b.String(), Count: len(results)}, nil
}

// handleSearchSource runs the query against one named source.
func (s *Server) handleSearchSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchSourceInput,
) (*mcp.CallToolResult, SearchSourceOutput, error) {
	results, err := s.ports.Query.SearchSource(ctx, input.Source, input.Query, domain.SearchOptions{})
	if err != nil {
		return nil, SearchSourceOutput{}, err
	}

	report := s.ports.Query.FormatResults(results, domain.DefaultMaxResults)
	return nil, SearchSourceOutput{Report: report, Count: len(results)}, nil
}

// handleCreateUser creates a user record.
func (s *Server) handleCreateUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateUserInput,
) (*mcp.CallToolResult, CreateUserOutput, error) {
	if s.ports.User == nil {
		return nil, CreateUserOutput{}, errors.New("user service not configured")
	}

	id, err := s.ports.User.Create(ctx, domain.CreateUser{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
	})
	if err != nil {
		return nil, CreateUserOutput{}, err
	}

	return nil, CreateUserOutput{
		ID:      id,
		Message: fmt.Sprintf("User created successfully with ID: %s", id),
	}, nil
}

// handleUpdateUser applies a partial update to a user record.
func (s *Server) handleUpdateUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	if s.ports.User == nil {
		return nil, UserOutput{}, errors.New("user service not configured")
	}

	update := domain.UserUpdate{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		Phone:   input.Phone,
	}

	if err := s.ports.User.Update(ctx, input.ID, update); err != nil {
		return nil, UserOutput{}, err
	}

	return nil, UserOutput{Message: fmt.Sprintf("User %s updated successfully", input.ID)}, nil
}

// handleDeleteUser deletes a user record.
func (s *Server) handleDeleteUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	if s.ports.User == nil {
		return nil, UserOutput{}, errors.New("user service not configured")
	}

	if err := s.ports.User.Delete(ctx, input.ID); err != nil {
		return nil, UserOutput{}, err
	}

	return nil, UserOutput{Message: fmt.Sprintf("User %s deleted successfully", input.ID)}, nil
}

// progressLine renders one progress event for the search transcript.
func progressLine(p domain.SearchProgress) string {
	line := fmt.Sprintf("%s: %s", p.Source, p.Status)
	if p.ResultCount != nil {
		line += fmt.Sprintf(" (%d results)", *p.ResultCount)
	}
	return line
}
