// Package mcpserver exposes the tool registry over MCP on stdio.
//
// Framing is newline-delimited JSON-RPC 2.0: one message per line on
// stdin, one response per line on stdout. Tool failures stay inside the
// tools/call result as isError content; only malformed traffic and
// unknown methods produce JSON-RPC error objects.
package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/petal-labs/tripflow"
	"github.com/petal-labs/tripflow/guide"
)

// Config configures a Server.
type Config struct {
	Registry   *tripflow.Registry
	Dispatcher *tripflow.Dispatcher
	Info       ServerInfo
	Logger     *slog.Logger

	// In and Out default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

// Server reads JSON-RPC requests from In and answers on Out.
type Server struct {
	registry   *tripflow.Registry
	dispatcher *tripflow.Dispatcher
	info       ServerInfo
	logger     *slog.Logger
	in         io.Reader

	mu  sync.Mutex
	out *bufio.Writer
}

// NewServer builds a stdio MCP server over the given registry and dispatcher.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("mcpserver: registry is nil")
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("mcpserver: dispatcher is nil")
	}
	if cfg.Info.Name == "" {
		cfg.Info.Name = "tripflow"
	}
	if cfg.Info.Version == "" {
		cfg.Info.Version = "dev"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	in := cfg.In
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	return &Server{
		registry:   cfg.Registry,
		dispatcher: cfg.Dispatcher,
		info:       cfg.Info,
		logger:     logger,
		in:         in,
		out:        bufio.NewWriter(out),
	}, nil
}

// Serve processes requests until In reaches EOF or ctx is canceled.
// A malformed line gets a parse-error response and the loop continues.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var request Message
		if err := json.Unmarshal(line, &request); err != nil {
			s.logger.Warn("malformed request", "error", err)
			if werr := s.write(*errorMessage(nil, codeParseError, "parse error")); werr != nil {
				return werr
			}
			continue
		}

		response := s.handle(ctx, request)
		if response == nil {
			continue
		}
		if err := s.write(*response); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("mcpserver: read requests: %w", err)
	}
	return nil
}

// handle routes one message. A nil return means no response is owed,
// which is the case for every notification.
func (s *Server) handle(ctx context.Context, request Message) *Message {
	if request.JSONRPC != "" && request.JSONRPC != jsonRPCVersion {
		if request.isNotification() {
			return nil
		}
		return errorMessage(request.ID, codeInvalidRequest,
			fmt.Sprintf("unsupported jsonrpc version %q", request.JSONRPC))
	}

	switch request.Method {
	case "initialize":
		return s.resultMessage(request.ID, InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: map[string]any{
				"tools":     map[string]any{},
				"resources": map[string]any{},
			},
			ServerInfo: s.info,
		})
	case "notifications/initialized", "close":
		return nil
	case "tools/list":
		return s.resultMessage(request.ID, s.listTools())
	case "tools/call":
		return s.callTool(ctx, request)
	case "resources/list":
		return s.resultMessage(request.ID, listResources())
	case "resources/read":
		return s.readResource(request)
	default:
		if request.isNotification() {
			return nil
		}
		return errorMessage(request.ID, codeMethodNotFound,
			fmt.Sprintf("method not found: %s", request.Method))
	}
}

func (s *Server) listTools() ToolsListResult {
	tools := s.registry.All()
	out := ToolsListResult{Tools: make([]ToolDescriptor, 0, len(tools))}
	for _, tool := range tools {
		schema := tool.Schema()
		out.Tools = append(out.Tools, ToolDescriptor{
			Name:        tool.Name(),
			Description: schema.Description,
			InputSchema: schema.InputSchema(),
		})
	}
	return out
}

func (s *Server) callTool(ctx context.Context, request Message) *Message {
	var params ToolsCallParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return errorMessage(request.ID, codeInvalidParams, "invalid tools/call params")
	}
	if params.Name == "" {
		return errorMessage(request.ID, codeInvalidParams, "tool name is required")
	}

	reply := s.dispatcher.Dispatch(ctx, params.Name, tripflow.Args(params.Arguments))

	payload, err := json.MarshalIndent(reply.Payload(), "", "  ")
	if err != nil {
		return errorMessage(request.ID, codeInternalError, "encode tool result")
	}
	return s.resultMessage(request.ID, ToolsCallResult{
		Content: []ContentBlock{{Type: "text", Text: string(payload)}},
		IsError: reply.Failed(),
	})
}

func listResources() ResourcesListResult {
	guides := guide.Resources()
	out := ResourcesListResult{Resources: make([]ResourceDescriptor, 0, len(guides))}
	for _, res := range guides {
		out.Resources = append(out.Resources, ResourceDescriptor{
			URI:         res.URI,
			Name:        res.Name,
			Description: res.Description,
			MIMEType:    res.MIMEType,
		})
	}
	return out
}

func (s *Server) readResource(request Message) *Message {
	var params ResourcesReadParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return errorMessage(request.ID, codeInvalidParams, "invalid resources/read params")
	}

	content, err := guide.ReadResource(params.URI)
	if err != nil {
		return errorMessage(request.ID, codeInvalidParams, err.Error())
	}
	return s.resultMessage(request.ID, ResourcesReadResult{
		Contents: []ResourceContents{{
			URI:      params.URI,
			MIMEType: "application/json",
			Text:     content,
		}},
	})
}

func (s *Server) resultMessage(id json.RawMessage, result any) *Message {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("encode response", "error", err)
		return errorMessage(id, codeInternalError, "encode response")
	}
	return &Message{JSONRPC: jsonRPCVersion, ID: id, Result: raw}
}

func errorMessage(id json.RawMessage, code int, message string) *Message {
	return &Message{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
}

func (s *Server) write(message Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("mcpserver: encode response: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("mcpserver: write response: %w", err)
	}
	return s.out.Flush()
}
