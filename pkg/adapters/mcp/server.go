package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// DocumentsURI is the resource listing the vault's notes.
const DocumentsURI = "scribe://documents"

// ExpandResponse is the structured result of the expansion tools.
type ExpandResponse struct {
	Path   string `json:"path,omitempty" jsonschema_description:"The document the text was expanded as"`
	Mode   string `json:"mode" jsonschema_description:"The context mode used for the expansion"`
	Output string `json:"output" jsonschema_description:"The expanded text"`
}

// Engine defines the interface required by the MCP server to interact with Scribe.
type Engine interface {
	ports.Expander
	ports.Catalog
}

// Server wraps the Scribe Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("scribe-mcp", strings.TrimSpace(scribe.Version)),
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
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
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

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: expand_document
	documentTool := mcp.NewTool("expand_document",
		mcp.WithDescription("Expand the <% %> directives of a vault document and return the result."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path or link name of the document")),
		mcp.WithString("mode", mcp.Description("Context mode: top_level (default), user_internal or internal")),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(documentTool, mcp.NewStructuredToolHandler(s.handleExpandDocument))

	// TOOL: expand_text
	textTool := mcp.NewTool("expand_text",
		mcp.WithDescription("Expand template text as if it were the content of a vault document."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Template text to expand")),
		mcp.WithString("path", mcp.Description("Document the text is bound to (optional)")),
		mcp.WithString("mode", mcp.Description("Context mode: top_level (default), user_internal or internal")),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(textTool, mcp.NewStructuredToolHandler(s.handleExpandText))
}

// Handler methods for structured tools

func (s *Server) handleExpandDocument(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return ExpandResponse{}, fmt.Errorf("path is required")
	}
	mode, err := modeArg(args)
	if err != nil {
		return ExpandResponse{}, err
	}

	out, err := s.engine.Expand(ctx, path, mode)
	if err != nil {
		slog.Warn("MCP expand_document failed", "path", path, "error", err)
		return ExpandResponse{}, fmt.Errorf("expand failed: %w", err)
	}
	return ExpandResponse{Path: path, Mode: mode.String(), Output: out}, nil
}

func (s *Server) handleExpandText(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	text, ok := args["text"].(string)
	if !ok {
		return ExpandResponse{}, fmt.Errorf("text is required")
	}
	path, _ := args["path"].(string)
	mode, err := modeArg(args)
	if err != nil {
		return ExpandResponse{}, err
	}

	out, err := s.engine.ExpandText(ctx, text, path, mode)
	if err != nil {
		slog.Warn("MCP expand_text failed", "path", path, "error", err)
		return ExpandResponse{}, fmt.Errorf("expand failed: %w", err)
	}
	return ExpandResponse{Path: path, Mode: mode.String(), Output: out}, nil
}

func modeArg(args map[string]interface{}) (domain.ContextMode, error) {
	raw, _ := args["mode"].(string)
	return domain.ParseContextMode(raw)
}

func (s *Server) registerResources() {
	// EXPOSE: scribe://documents
	s.mcpServer.AddResource(mcp.NewResource(DocumentsURI, "Vault Documents",
		mcp.WithMIMEType("application/json"),
	), s.handleDocuments)
}

func (s *Server) handleDocuments(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	notes, err := s.engine.Notes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	jsonBytes, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocumentsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
