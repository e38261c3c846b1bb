package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Queryspan resources.
	uriScheme = "queryspan://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "List of all connected data sources",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "users",
		Name:        "users",
		Description: "All stored user records",
		MIMEType:    "application/json",
	}, s.handleUsersResource)
}

// handleSourcesResource returns the configured data sources and the
// active user store backend.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sourceInfo struct {
		Name      string `json:"name"`
		Connected bool   `json:"connected"`
	}

	sources := s.ports.Query.Sources()

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		infos[i] = sourceInfo{Name: src.Name(), Connected: true}
	}

	payload := struct {
		Count       int          `json:"count"`
		Sources     []sourceInfo `json:"sources"`
		UserBackend string       `json:"userBackend,omitempty"`
	}{
		Count:       len(infos),
		Sources:     infos,
		UserBackend: s.ports.UserBackend,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleUsersResource returns all stored users as JSON.
func (s *Server) handleUsersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.User == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	users, err := s.ports.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	type userInfo struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address string `json:"address,omitempty"`
		Phone   string `json:"phone,omitempty"`
	}

	infos := make([]userInfo, len(users))
	for i, u := range users {
		infos[i] = userInfo{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Address: u.Address,
			Phone:   u.Phone,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling users: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
