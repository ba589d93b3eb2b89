// Package mcpserver exposes vacancy generation as MCP tools so agents can
// draft postings without going through the wizard.
package mcpserver

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/vacancy/internal/generation"
	"github.com/mark3labs/vacancy/internal/logger"
)

// Version is reported to MCP clients during initialization.
var Version = "1.0.0"

// Server wraps an MCP server with the vacancy tools registered.
type Server struct {
	gen       *generation.Service
	mcpServer *server.MCPServer
}

// New creates the MCP server and registers its tools.
func New(gen *generation.Service) *Server {
	s := &Server{
		gen: gen,
		mcpServer: server.NewMCPServer(
			"vacancy",
			Version,
			server.WithToolCapabilities(true),
		),
	}
	s.registerTools()
	logger.Debug("MCP tools registered")
	return s
}

// Handler returns a stateless streamable-HTTP handler for mounting at /mcp.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
}
