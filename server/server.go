// Package server binds the tools catalog to the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/logger"
	"github.com/GravityKit/drip-mcp-server/tools"
)

const (
	Name    = "drip-mcp-server"
	Version = "1.0.0"
)

type Server struct {
	mcp        *mcp.Server
	dispatcher *tools.Dispatcher
	schemas    map[string]*jsonschema.Schema
	logger     logger.Logger
}

type Option func(s *Server)

func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		s.logger = log
	}
}

// New registers every operation of the dispatcher as an MCP tool.
// It fails when a tool schema does not compile.
func New(dispatcher *tools.Dispatcher, opts ...Option) (*Server, error) {
	s := &Server{
		dispatcher: dispatcher,
		logger:     logger.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}

	schemas, err := compileSchemas(dispatcher.Tools())
	if err != nil {
		return nil, err
	}
	s.schemas = schemas

	s.mcp = mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil)
	for _, t := range dispatcher.Tools() {
		s.mcp.AddTool(&t.Tool, s.handler(t.Name))
	}
	return s, nil
}

// MCP exposes the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Infof("server: serving %d tools", len(s.dispatcher.Tools()))
	return s.mcp.Run(ctx, transport)
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		return s.Call(ctx, name, raw), nil
	}
}

// Call decodes and checks the arguments, then dispatches. Failures are
// reported as error results carrying a single message.
func (s *Server) Call(ctx context.Context, name string, raw json.RawMessage) *mcp.CallToolResult {
	args := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return errorResult(errors.Invalid("arguments", "Arguments must be a JSON object"))
		}
	}

	if schema, ok := s.schemas[name]; ok {
		if err := schema.Validate(args); err != nil {
			return errorResult(errors.Invalid(
				"arguments", "Invalid arguments for %s: %s", name, describeSchemaError(err),
			))
		}
	}

	res, err := s.dispatcher.Invoke(ctx, name, args)
	if err != nil {
		return errorResult(err)
	}

	text, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		s.logger.Errorf("server: %s result encode failed: %v", name, err)
		return errorResult(fmt.Errorf("failed to encode result: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(text)}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
