package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/petal-labs/tripflow"
)

func newTestRegistry(t *testing.T) *tripflow.Registry {
	t.Helper()

	echoSchema := tripflow.NewSchema("echoCity", "Echo the requested city back").
		Param("city", tripflow.TypeString, "City name", true).
		Build()
	echo := tripflow.NewTool("echoCity", echoSchema, tripflow.Binding{
		Map: func(args tripflow.Args) (tripflow.Criteria, error) {
			city, ok := args.String("city")
			if !ok {
				return nil, &tripflow.MissingFieldError{Field: "city"}
			}
			return cityCriteria{city: city}, nil
		},
		Search: func(ctx context.Context, criteria tripflow.Criteria) tripflow.Result {
			c := criteria.(cityCriteria)
			return tripflow.Success(map[string]any{"city": c.city}, "Echo")
		},
	})

	registry, err := tripflow.NewBuilder().Add(echo).Build()
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return registry
}

type cityCriteria struct{ city string }

func (c cityCriteria) Fields() map[string]string {
	return map[string]string{"city": c.city}
}

// runServer feeds newline-delimited requests through a server and decodes
// every response line.
func runServer(t *testing.T, input string) []Message {
	t.Helper()

	registry := newTestRegistry(t)
	logger := slog.New(slog.DiscardHandler)
	dispatcher, err := tripflow.NewDispatcher(tripflow.DispatcherConfig{
		Registry: registry,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}

	var out bytes.Buffer
	server, err := NewServer(Config{
		Registry:   registry,
		Dispatcher: dispatcher,
		Info:       ServerInfo{Name: "tripflow", Version: "test"},
		Logger:     logger,
		In:         strings.NewReader(input),
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := server.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}

	var responses []Message
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("decode response line %q: %v", line, err)
		}
		responses = append(responses, msg)
	}
	return responses
}

func decodeResult(t *testing.T, msg Message, out any) {
	t.Helper()
	if msg.Error != nil {
		t.Fatalf("unexpected rpc error: %d %s", msg.Error.Code, msg.Error.Message)
	}
	if err := json.Unmarshal(msg.Result, out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func TestServeInitialize(t *testing.T) {
	responses := runServer(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`+"\n")
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}

	var result InitializeResult
	decodeResult(t, responses[0], &result)
	if result.ProtocolVersion != protocolVersion {
		t.Errorf("protocolVersion = %q, want %q", result.ProtocolVersion, protocolVersion)
	}
	if result.ServerInfo.Name != "tripflow" {
		t.Errorf("serverInfo.name = %q, want %q", result.ServerInfo.Name, "tripflow")
	}
	if _, ok := result.Capabilities["tools"]; !ok {
		t.Error("capabilities missing tools")
	}
	if _, ok := result.Capabilities["resources"]; !ok {
		t.Error("capabilities missing resources")
	}
	if string(responses[0].ID) != "1" {
		t.Errorf("response id = %s, want 1", responses[0].ID)
	}
}

func TestServeInitializedNotificationGetsNoResponse(t *testing.T) {
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"
	responses := runServer(t, input)
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want only the tools/list reply", len(responses))
	}
	if string(responses[0].ID) != "2" {
		t.Errorf("response id = %s, want 2", responses[0].ID)
	}
}

func TestServeToolsList(t *testing.T) {
	responses := runServer(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n")

	var result ToolsListResult
	decodeResult(t, responses[0], &result)
	if len(result.Tools) != 1 {
		t.Fatalf("got %d tools, want 1", len(result.Tools))
	}
	tool := result.Tools[0]
	if tool.Name != "echoCity" {
		t.Errorf("tool name = %q, want %q", tool.Name, "echoCity")
	}
	if tool.InputSchema["type"] != "object" {
		t.Errorf("inputSchema type = %v, want object", tool.InputSchema["type"])
	}
}

func TestServeToolsCallSuccess(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"echoCity","arguments":{"city":"Austin"}}}` + "\n"
	responses := runServer(t, input)

	var result ToolsCallResult
	decodeResult(t, responses[0], &result)
	if result.IsError {
		t.Fatal("isError = true, want false")
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("content = %+v, want one text block", result.Content)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].Text), &payload); err != nil {
		t.Fatalf("content text is not JSON: %v", err)
	}
	if payload["city"] != "Austin" {
		t.Errorf("payload city = %v, want Austin", payload["city"])
	}
	if payload["source"] != "Echo" {
		t.Errorf("payload source = %v, want Echo", payload["source"])
	}
	if payload["searchTimestamp"] == nil {
		t.Error("payload missing searchTimestamp")
	}
}

func TestServeToolsCallUnknownToolIsToolError(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"noSuchTool"}}` + "\n"
	responses := runServer(t, input)

	// An unknown tool is a tool-level failure, not a protocol fault.
	if responses[0].Error != nil {
		t.Fatalf("got rpc error %v, want isError result", responses[0].Error)
	}
	var result ToolsCallResult
	decodeResult(t, responses[0], &result)
	if !result.IsError {
		t.Fatal("isError = false, want true")
	}
	if !strings.Contains(result.Content[0].Text, "noSuchTool") {
		t.Errorf("content = %q, want mention of the tool name", result.Content[0].Text)
	}
}

func TestServeToolsCallMissingName(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{}}` + "\n"
	responses := runServer(t, input)

	if responses[0].Error == nil || responses[0].Error.Code != codeInvalidParams {
		t.Fatalf("error = %+v, want code %d", responses[0].Error, codeInvalidParams)
	}
}

func TestServeResourcesListAndRead(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"resources/list"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"file://resources/travel_guides/austin.json"}}` + "\n"
	responses := runServer(t, input)
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}

	var list ResourcesListResult
	decodeResult(t, responses[0], &list)
	if len(list.Resources) != 3 {
		t.Fatalf("got %d resources, want 3", len(list.Resources))
	}
	for _, res := range list.Resources {
		if res.MIMEType != "application/json" {
			t.Errorf("resource %q mimeType = %q, want application/json", res.Name, res.MIMEType)
		}
	}

	var read ResourcesReadResult
	decodeResult(t, responses[1], &read)
	if len(read.Contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(read.Contents))
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(read.Contents[0].Text), &doc); err != nil {
		t.Fatalf("resource text is not JSON: %v", err)
	}
	if doc["city"] != "Austin" {
		t.Errorf("resource city = %v, want Austin", doc["city"])
	}
}

func TestServeResourcesReadUnknownURI(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":5,"method":"resources/read","params":{"uri":"file://resources/travel_guides/nowhere.json"}}` + "\n"
	responses := runServer(t, input)

	if responses[0].Error == nil || responses[0].Error.Code != codeInvalidParams {
		t.Fatalf("error = %+v, want code %d", responses[0].Error, codeInvalidParams)
	}
}

func TestServeUnknownMethod(t *testing.T) {
	responses := runServer(t, `{"jsonrpc":"2.0","id":9,"method":"prompts/list"}`+"\n")

	if responses[0].Error == nil || responses[0].Error.Code != codeMethodNotFound {
		t.Fatalf("error = %+v, want code %d", responses[0].Error, codeMethodNotFound)
	}
	if !strings.Contains(responses[0].Error.Message, "prompts/list") {
		t.Errorf("message = %q, want method name", responses[0].Error.Message)
	}
}

func TestServeMalformedLineRecovers(t *testing.T) {
	input := "{not json\n" +
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"
	responses := runServer(t, input)
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want parse error plus reply", len(responses))
	}
	if responses[0].Error == nil || responses[0].Error.Code != codeParseError {
		t.Fatalf("first error = %+v, want code %d", responses[0].Error, codeParseError)
	}
	if responses[1].Error != nil {
		t.Fatalf("second response errored: %+v", responses[1].Error)
	}
}

func TestNewServerValidation(t *testing.T) {
	if _, err := NewServer(Config{}); err == nil {
		t.Error("expected error for missing registry")
	}

	registry := newTestRegistry(t)
	if _, err := NewServer(Config{Registry: registry}); err == nil {
		t.Error("expected error for missing dispatcher")
	}
}
