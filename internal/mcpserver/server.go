// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package mcpserver exposes a shell session as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marcelocantos/fsh/internal/logger"
	"github.com/marcelocantos/fsh/internal/pipeline"
)

// Server serves one session. Tool calls are serialised because the session
// holds a single working directory and output sink.
type Server struct {
	mu     sync.Mutex
	engine *pipeline.Engine
	log    logger.Logger
	mcp    *server.MCPServer
}

// New builds a server around engine. The engine's console should discard
// output; results are returned to the client instead.
func New(engine *pipeline.Engine, log logger.Logger, version string) *Server {
	s := &Server{
		engine: engine,
		log:    log.WithComponent("mcp"),
		mcp:    server.NewMCPServer("fsh", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool("run",
		mcp.WithDescription("Run an fsh command line. Verbs: "+s.verbList()+
			". Stages are joined with |; > and >> redirect output to a file."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The command line, e.g. `cat notes.txt | sort`"),
		),
	), s.handleRun)

	s.mcp.AddTool(mcp.NewTool("pwd",
		mcp.WithDescription("Report the session's working directory."),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handlePwd)

	return s
}

// Serve blocks serving MCP on stdin and stdout.
func (s *Server) Serve() error {
	s.log.Info("serving MCP on stdio")
	return server.ServeStdio(s.mcp)
}

func (s *Server) verbList() string {
	var names []string
	for _, c := range s.engine.Registry().All() {
		names = append(names, c.Name())
	}
	return strings.Join(names, ", ")
}

func (s *Server) handleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	line, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.engine.Run(ctx, line)
	switch {
	case errors.Is(err, pipeline.ErrExit):
		return mcp.NewToolResultError("exit is not available to MCP clients"), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.render(res), nil
}

// render turns a result into tool output. Output that went to a redirect
// target is reported by path rather than echoed.
func (s *Server) render(res *pipeline.Result) *mcp.CallToolResult {
	var b strings.Builder
	if target := s.engine.Buffer().Target(); target != "" {
		if res.Output.Set {
			fmt.Fprintf(&b, "output written to %s\n", target)
		}
	} else if res.Output.Set {
		b.WriteString(res.Output.Value)
		b.WriteString("\n")
	}
	for _, d := range res.Diagnostics {
		b.WriteString(d)
		b.WriteString("\n")
	}
	text := strings.TrimRight(b.String(), "\n")

	if len(res.Diagnostics) > 0 && !res.Output.Set {
		return mcp.NewToolResultError(text)
	}
	return mcp.NewToolResultText(text)
}

func (s *Server) handlePwd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mcp.NewToolResultText(s.engine.Env().Session.Pwd()), nil
}
