// Package mcp exposes the inquiry board to AI agents over the Model Context
// Protocol.
//
// Capability is fixed at server construction: the process is launched either
// as an operator console or as a visitor surface, and every tool call runs
// under that capability. Password gates are satisfied through tool
// arguments, confirmation gates through the explicitness of the tool call
// itself.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

// Board is the workflow surface exposed as MCP tools.
type Board interface {
	List(ctx context.Context) ([]domain.Inquiry, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Inquiry, error)
	Open(ctx context.Context, cap domain.Capability, id string) (*domain.Inquiry, error)
	Reply(ctx context.Context, cap domain.Capability, id, text string) (*domain.Inquiry, error)
	ClearReply(ctx context.Context, cap domain.Capability, id string) (*domain.Inquiry, error)
	Delete(ctx context.Context, cap domain.Capability, id string) error
}

// Server wraps the board and exposes it as an MCP server.
type Server struct {
	board     Board
	cap       domain.Capability
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server bound to the given capability.
func NewServer(board Board, cap domain.Capability, version string) *Server {
	s := &Server{
		board: board,
		cap:   cap,
		mcpServer: server.NewMCPServer("askdesk", version,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, true),
			server.WithInstructions("askdesk is a support inquiry board. Secret inquiries need their password unless the server runs as operator."),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio runs the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE runs the server over Server-Sent Events on the given port until
// the context is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
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
	s.mcpServer.AddTool(mcp.NewTool("list_inquiries",
		mcp.WithDescription("List all inquiries newest first. Secret inquiries are redacted unless the server runs as operator."),
	), s.handleList)

	s.mcpServer.AddTool(mcp.NewTool("create_inquiry",
		mcp.WithDescription("Post a new inquiry to the board."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Inquiry title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Inquiry body")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Author display name")),
		mcp.WithString("password", mcp.Description("Password protecting deletion, required when secret is true")),
		mcp.WithBoolean("secret", mcp.Description("Hide the content behind the password")),
	), s.handleCreate)

	s.mcpServer.AddTool(mcp.NewTool("open_inquiry",
		mcp.WithDescription("Open an inquiry's full detail. Secret inquiries require the password unless the server runs as operator."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Inquiry ID")),
		mcp.WithString("password", mcp.Description("Password for a secret inquiry")),
	), s.handleOpen)

	s.mcpServer.AddTool(mcp.NewTool("reply_inquiry",
		mcp.WithDescription("Publish an operator reply. Requires operator capability."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Inquiry ID")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Reply text")),
	), s.handleReply)

	s.mcpServer.AddTool(mcp.NewTool("clear_reply",
		mcp.WithDescription("Remove an operator reply, reverting the inquiry to pending. Requires operator capability."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Inquiry ID")),
	), s.handleClearReply)

	s.mcpServer.AddTool(mcp.NewTool("delete_inquiry",
		mcp.WithDescription("Delete an inquiry. Operators delete directly; visitors must supply the record's password."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Inquiry ID")),
		mcp.WithString("password", mcp.Description("Record password, required without operator capability")),
	), s.handleDelete)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("askdesk://inquiries", "Inquiry Board",
		mcp.WithResourceDescription("All inquiries as JSON, redacted per the server's capability"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		listed, err := s.board.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list failed: %w", err)
		}
		out := make([]domain.Inquiry, len(listed))
		for i := range listed {
			out[i] = listed[i].Redacted(s.cap)
		}
		jsonBytes, _ := json.Marshal(out)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "askdesk://inquiries",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listed, err := s.board.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}

	out := make([]domain.Inquiry, len(listed))
	for i := range listed {
		out[i] = listed[i].Redacted(s.cap)
	}
	jsonBytes, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil
	}

	created, err := s.board.Create(ctx, domain.Draft{
		Title:    title,
		Content:  content,
		Author:   author,
		Password: req.GetString("password", ""),
		IsSecret: req.GetBool("secret", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create failed: %v", err)), nil
	}
	return s.inquiryResult(created)
}

func (s *Server) handleOpen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	if password := req.GetString("password", ""); password != "" {
		ctx = dialog.WithPromptAnswer(ctx, password)
	}

	opened, err := s.board.Open(ctx, s.cap, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("open failed: %v", err)), nil
	}
	return s.inquiryResult(opened)
}

func (s *Server) handleReply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}

	updated, err := s.board.Reply(ctx, s.cap, id, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reply failed: %v", err)), nil
	}
	return s.inquiryResult(updated)
}

func (s *Server) handleClearReply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	// The tool call is the confirmation.
	updated, err := s.board.ClearReply(dialog.WithConfirm(ctx, true), s.cap, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("clear failed: %v", err)), nil
	}
	return s.inquiryResult(updated)
}

func (s *Server) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	ctx = dialog.WithConfirm(ctx, true)
	if password := req.GetString("password", ""); password != "" {
		ctx = dialog.WithPromptAnswer(ctx, password)
	}

	if err := s.board.Delete(ctx, s.cap, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted inquiry %s", id)), nil
}

// inquiryResult renders a record the caller has already gained access to.
// Unlike list redaction, the content stays visible; only the stored password
// is withheld from non-operators.
func (s *Server) inquiryResult(inq *domain.Inquiry) (*mcp.CallToolResult, error) {
	out := *inq.Clone()
	if !s.cap.Operator {
		out.Password = ""
	}
	jsonBytes, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
