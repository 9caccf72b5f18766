// Package mcp exposes the kernel as an MCP server, so agent hosts can
// launch navigators and execute registered workflows as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/kestrel"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LaunchResponse aligns with the HTTP adapter's schema so both surfaces
// report launches the same way.
type LaunchResponse struct {
	Valid bool `json:"valid" jsonschema_description:"Final validity of the workflow memory"`
}

// ExecuteResponse carries the final memory of a workflow execution.
type ExecuteResponse struct {
	Valid  bool           `json:"valid" jsonschema_description:"Final validity of the workflow memory"`
	Memory map[string]any `json:"memory" jsonschema_description:"Final memory after execution"`
}

// Kernel defines the interface required by the MCP server.
type Kernel interface {
	Launch(ctx context.Context, navigator string, escaped bool, seed domain.Memory) (bool, error)
	Execute(ctx context.Context, wf domain.Workflow, mem domain.Memory) (domain.Memory, error)
	Workflow(name string) (domain.Workflow, bool)
	Navigators() []string
}

// Server wraps the kernel and exposes it as an MCP Server.
type Server struct {
	kernel    Kernel
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(kernel Kernel) *Server {
	s := &Server{
		kernel:    kernel,
		mcpServer: server.NewMCPServer("kestrel-mcp", strings.TrimSpace(kestrel.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	launchTool := mcp.NewTool("launch",
		mcp.WithDescription("Resolve a navigator string and run the matching workflow. Returns the final validity flag."),
		mcp.WithString("navigator", mcp.Required(), mcp.Description("Colon- or path-dialect navigator string, e.g. '#greet:name=ada'")),
		mcp.WithBoolean("escaped", mcp.Description("Whether the navigator uses the identifier-safe encoding ('_' for '#', '.' for '=')")),
		mcp.WithString("memory", mcp.Description("JSON object merged into the initial memory (optional)")),
		mcp.WithOutputSchema[LaunchResponse](),
	)
	s.mcpServer.AddTool(launchTool, mcp.NewStructuredToolHandler(s.handleLaunch))

	executeTool := mcp.NewTool("execute_workflow",
		mcp.WithDescription("Execute a registered workflow by name against a fresh memory."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("Registry key of the workflow")),
		mcp.WithString("memory", mcp.Description("JSON object used as the initial memory (optional)")),
		mcp.WithOutputSchema[ExecuteResponse](),
	)
	s.mcpServer.AddTool(executeTool, mcp.NewStructuredToolHandler(s.handleExecute))

	s.mcpServer.AddTool(mcp.NewTool("list_navigators",
		mcp.WithDescription("List the registered navigator roots."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.kernel.Navigators())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleLaunch(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LaunchResponse, error) {
	navigator, _ := args["navigator"].(string)
	if navigator == "" {
		return LaunchResponse{}, fmt.Errorf("navigator is required")
	}
	escaped, _ := args["escaped"].(bool)

	seed := domain.Memory{}
	if memStr, ok := args["memory"].(string); ok && memStr != "" {
		if err := json.Unmarshal([]byte(memStr), &seed); err != nil {
			return LaunchResponse{}, fmt.Errorf("invalid memory payload: %w", err)
		}
	}

	valid, err := s.kernel.Launch(ctx, navigator, escaped, seed)
	if err != nil {
		slog.Error("MCP Launch failed", "err", err)
		return LaunchResponse{Valid: valid}, nil
	}
	return LaunchResponse{Valid: valid}, nil
}

func (s *Server) handleExecute(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExecuteResponse, error) {
	name, _ := args["workflow"].(string)
	wf, ok := s.kernel.Workflow(name)
	if !ok {
		return ExecuteResponse{}, fmt.Errorf("unknown workflow: %s", name)
	}

	mem := domain.Memory{}
	if memStr, ok := args["memory"].(string); ok && memStr != "" {
		if err := json.Unmarshal([]byte(memStr), &mem); err != nil {
			return ExecuteResponse{}, fmt.Errorf("invalid memory payload: %w", err)
		}
	}

	mem, err := s.kernel.Execute(ctx, wf, mem)
	if err != nil {
		slog.Error("MCP Execute failed", "err", err)
	}
	return ExecuteResponse{Valid: mem.Valid(), Memory: mem}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("kestrel://navigators", "Registered Navigator Roots",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.kernel.Navigators())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal navigators: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "kestrel://navigators",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
