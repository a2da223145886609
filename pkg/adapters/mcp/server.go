package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/internal/service"
	"github.com/aretw0/ndtm/internal/validator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ProgramsURI lists stored program names.
const ProgramsURI = "ndtm://programs"

// ValidateResponse is the structured result of validate_program.
type ValidateResponse struct {
	Findings []validator.Finding `json:"findings" jsonschema_description:"Static problems found in the program"`
}

// FormatResponse is the structured result of format_program.
type FormatResponse struct {
	Program string `json:"program" jsonschema_description:"Canonical program text"`
}

// GraphResponse is the structured result of program_graph.
type GraphResponse struct {
	Mermaid string `json:"mermaid" jsonschema_description:"Mermaid flowchart of the transition table"`
}

// Server exposes the simulator as an MCP Server.
type Server struct {
	svc       *service.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(svc *service.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		svc:       svc,
		logger:    logger,
		mcpServer: server.NewMCPServer("ndtm-mcp", ndtm.Version),
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
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run a non-deterministic multi-tape Turing machine and list every branch that reached a terminal state (yes, no or halt) with its final tapes and head positions."),
		mcp.WithString("program", mcp.Description("Program text: the input on the first line, then one 'STATE; (READ); (NEXT, WRITE, DIR, ...)' transition per line")),
		mcp.WithString("name", mcp.Description("Name of a stored program (used when program is omitted)")),
		mcp.WithString("input", mcp.Description("Input overriding the program's first line (optional)")),
		mcp.WithBoolean("optimize", mcp.Description("Skip configurations already visited during the run")),
		mcp.WithOutputSchema[ndtm.Report](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: format_program
	formatTool := mcp.NewTool("format_program",
		mcp.WithDescription("Parse a program and return it in canonical form."),
		mcp.WithString("program", mcp.Required(), mcp.Description("Program text")),
		mcp.WithOutputSchema[FormatResponse](),
	)
	s.mcpServer.AddTool(formatTool, mcp.NewStructuredToolHandler(s.handleFormat))

	// TOOL: program_graph
	graphTool := mcp.NewTool("program_graph",
		mcp.WithDescription("Render the transition table of a program as a Mermaid flowchart."),
		mcp.WithString("program", mcp.Description("Program text")),
		mcp.WithString("name", mcp.Description("Name of a stored program (used when program is omitted)")),
		mcp.WithOutputSchema[GraphResponse](),
	)
	s.mcpServer.AddTool(graphTool, mcp.NewStructuredToolHandler(s.handleGraph))

	// TOOL: validate_program
	validateTool := mcp.NewTool("validate_program",
		mcp.WithDescription("Report states that are unreachable or that lead to certain undefined transitions."),
		mcp.WithString("program", mcp.Description("Program text")),
		mcp.WithString("name", mcp.Description("Name of a stored program (used when program is omitted)")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

// Handler methods for structured tools

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ndtm.Report, error) {
	req := service.SimulateRequest{}
	req.Program, _ = args["program"].(string)
	req.Name, _ = args["name"].(string)
	req.Optimize, _ = args["optimize"].(bool)
	if input, ok := args["input"].(string); ok {
		req.Input = &input
	}

	rep, err := s.svc.Simulate(ctx, req)
	if err != nil {
		s.logger.Warn("MCP simulate failed", "err", err)
		return ndtm.Report{}, fmt.Errorf("simulate failed: %w", err)
	}
	return *rep, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	program, _ := args["program"].(string)
	name, _ := args["name"].(string)

	findings, err := s.svc.Validate(ctx, name, program)
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("validate failed: %w", err)
	}
	if findings == nil {
		findings = []validator.Finding{}
	}
	return ValidateResponse{Findings: findings}, nil
}

func (s *Server) handleFormat(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FormatResponse, error) {
	program, ok := args["program"].(string)
	if !ok {
		return FormatResponse{}, fmt.Errorf("program is required")
	}
	text, err := s.svc.Format(program)
	if err != nil {
		return FormatResponse{}, fmt.Errorf("format failed: %w", err)
	}
	return FormatResponse{Program: text}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphResponse, error) {
	program, _ := args["program"].(string)
	name, _ := args["name"].(string)

	diagram, err := s.svc.Graph(ctx, name, program)
	if err != nil {
		return GraphResponse{}, fmt.Errorf("graph failed: %w", err)
	}
	return GraphResponse{Mermaid: diagram}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: ndtm://programs
	s.mcpServer.AddResource(mcp.NewResource(ProgramsURI, "Stored Programs",
		mcp.WithMIMEType("application/json"),
	), s.readPrograms)
}

func (s *Server) readPrograms(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	jsonBytes, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ProgramsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
