package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/column"
	"github.com/aretw0/strata/pkg/domain"
)

// ColumnResponse is the structured result of the column tools.
type ColumnResponse struct {
	Layers      []domain.Interval   `json:"layers" jsonschema_description:"Layers and synthesized gaps ordered by depth"`
	Depths      []domain.LayerDepth `json:"depths" jsonschema_description:"Overlap diagnostics of the real layers"`
	Envelope    domain.Envelope     `json:"envelope" jsonschema_description:"Extent of the real layers"`
	HasOverlaps bool                `json:"has_overlaps" jsonschema_description:"Indicates if any layer bound is flagged"`
}

func newColumnResponse(c column.Column) ColumnResponse {
	return ColumnResponse{
		Layers:      c.Layers,
		Depths:      c.Depths,
		Envelope:    c.Envelope,
		HasOverlaps: c.HasOverlaps(),
	}
}

// Engine defines what the MCP server needs from the Strata engine.
type Engine interface {
	Boreholes(ctx context.Context) ([]string, error)
	Column(ctx context.Context, boreholeID string, kind domain.LayerKind) (*column.Column, error)
	CasingColumn(ctx context.Context, boreholeID string) (*column.Column, error)
}

var _ Engine = (*strata.Engine)(nil)

// Server wraps the Strata Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("strata-mcp", strings.TrimSpace(strata.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: complete_column
	completeTool := mcp.NewTool("complete_column",
		mcp.WithDescription("Sort depth intervals, flag overlaps and fill the holes with gap intervals."),
		mcp.WithString("intervals", mcp.Required(), mcp.Description(`JSON array of intervals, e.g. [{"id":"a","from":0,"to":10}]`)),
		mcp.WithString("start", mcp.Description("Start of the reference range (optional)")),
		mcp.WithString("end", mcp.Description("End of the reference range (optional)")),
		mcp.WithString("inheritance", mcp.Description("Gap attribute inheritance: preceding, following or none")),
		mcp.WithOutputSchema[ColumnResponse](),
	)
	s.mcpServer.AddTool(completeTool, mcp.NewStructuredToolHandler(s.handleCompleteColumn))

	// TOOL: borehole_column
	boreholeTool := mcp.NewTool("borehole_column",
		mcp.WithDescription("Get the completed column of one layer kind of a borehole."),
		mcp.WithString("borehole_id", mcp.Required(), mcp.Description("Borehole ID")),
		mcp.WithString("kind", mcp.Description("Layer kind (default: lithology)")),
		mcp.WithOutputSchema[ColumnResponse](),
	)
	s.mcpServer.AddTool(boreholeTool, mcp.NewStructuredToolHandler(s.handleBoreholeColumn))

	// TOOL: casing_envelope
	casingTool := mcp.NewTool("casing_envelope",
		mcp.WithDescription("Get the casings of a borehole as a column, each spanning the envelope of its elements."),
		mcp.WithString("borehole_id", mcp.Required(), mcp.Description("Borehole ID")),
		mcp.WithOutputSchema[ColumnResponse](),
	)
	s.mcpServer.AddTool(casingTool, mcp.NewStructuredToolHandler(s.handleCasingEnvelope))
}

// intervalArg is the wire form of an interval in tool arguments.
type intervalArg struct {
	ID             string   `json:"id"`
	From           *float64 `json:"from"`
	To             *float64 `json:"to"`
	Unconsolidated bool     `json:"unconsolidated"`
	Kind           string   `json:"kind"`
}

func (s *Server) handleCompleteColumn(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ColumnResponse, error) {
	raw, _ := args["intervals"].(string)
	var in []intervalArg
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return ColumnResponse{}, fmt.Errorf("invalid intervals: %w", err)
	}

	intervals := make([]domain.Interval, len(in))
	for i, a := range in {
		intervals[i] = domain.Interval{
			ID:        a.ID,
			FromDepth: a.From,
			ToDepth:   a.To,
			Hints:     domain.RenderHints{Unconsolidated: a.Unconsolidated, Kind: a.Kind},
		}
	}

	opts, err := rangeOptions(args)
	if err != nil {
		return ColumnResponse{}, err
	}
	if p, ok := args["inheritance"].(string); ok && p != "" {
		policy, err := column.ParseInheritance(p)
		if err != nil {
			return ColumnResponse{}, err
		}
		opts = append(opts, column.WithInheritance(policy))
	}

	return newColumnResponse(column.Complete(intervals, opts...)), nil
}

func rangeOptions(args map[string]interface{}) ([]column.Option, error) {
	bound := func(key string) (*float64, error) {
		s, _ := args[key].(string)
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", key, s, domain.ErrUnparsable)
		}
		return &v, nil
	}
	start, err := bound("start")
	if err != nil {
		return nil, err
	}
	end, err := bound("end")
	if err != nil {
		return nil, err
	}
	return []column.Option{column.WithDepthRange(domain.DepthRange{Start: start, End: end})}, nil
}

func (s *Server) handleBoreholeColumn(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ColumnResponse, error) {
	id, _ := args["borehole_id"].(string)
	kind := domain.KindLithology
	if k, ok := args["kind"].(string); ok && k != "" {
		parsed, err := domain.ParseLayerKind(k)
		if err != nil {
			return ColumnResponse{}, err
		}
		kind = parsed
	}

	col, err := s.engine.Column(ctx, id, kind)
	if err != nil {
		slog.Warn("MCP borehole_column failed", "borehole_id", id, "error", err)
		return ColumnResponse{}, fmt.Errorf("column failed: %w", err)
	}
	return newColumnResponse(*col), nil
}

func (s *Server) handleCasingEnvelope(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ColumnResponse, error) {
	id, _ := args["borehole_id"].(string)
	col, err := s.engine.CasingColumn(ctx, id)
	if err != nil {
		slog.Warn("MCP casing_envelope failed", "borehole_id", id, "error", err)
		return ColumnResponse{}, fmt.Errorf("casing column failed: %w", err)
	}
	return newColumnResponse(*col), nil
}

func (s *Server) registerResources() {
	// EXPOSE: strata://boreholes
	s.mcpServer.AddResource(mcp.NewResource("strata://boreholes", "Boreholes of the dataset",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.Boreholes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list boreholes: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "strata://boreholes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
