package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/callsight-mcp/internal/mcp/tools"
)

// MimeJSON is the MIME type for JSON resource contents.
const MimeJSON = "application/json"

// Resource URI scheme: callsight://
// Supported URIs:
//   callsight://record/{id}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: "callsight://record/{id}",
		Name:        "Classified Call Record",
		Description: "Full classified record: raw input/output payloads plus both classification results. Tools already return summaries; fetch this only when the raw payloads are needed.",
		MIMEType:    MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceRecord)
}

func (s *Server) handleResourceRecord(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	id, err := parseRecordURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	cls, ok := s.deps.Store.Get(id)
	if !ok {
		return nil, tools.ErrNotFound("record", id)
	}
	return toResourceResult(req.Params.URI, cls)
}

// parseRecordURI extracts the record ID from a callsight://record/{id} URI.
func parseRecordURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "callsight://") {
		return "", tools.ErrInvalidInput("invalid URI scheme: expected callsight://")
	}

	path := strings.TrimPrefix(uri, "callsight://")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] != "record" || len(parts) < 2 || parts[1] == "" {
		return "", tools.ErrInvalidInput("record URI requires an ID: callsight://record/{id}")
	}
	return parts[1], nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
