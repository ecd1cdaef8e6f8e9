package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/jonathan/job-hunter/internal/tools"
)

// ServerInfo identifies the server in the initialize response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DefaultServerInfo is the identity reported by the host.
var DefaultServerInfo = ServerInfo{Name: "job-hunter-mcp", Version: "0.1.0"}

// Server accepts loopback connections and dispatches tool calls. Connections
// are handled concurrently; within one connection requests are processed
// strictly in order, one at a time.
type Server struct {
	registry *tools.Registry
	info     ServerInfo
	log      *slog.Logger
	lis      net.Listener
}

// NewServer creates a server over the given tool registry.
func NewServer(registry *tools.Registry, logger *slog.Logger) *Server {
	return &Server{
		registry: registry,
		info:     DefaultServerInfo,
		log:      logger,
	}
}

// Listen binds an ephemeral loopback port chosen by the OS.
func (s *Server) Listen() error {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to bind rpc listener: %w", err)
	}
	s.lis = lis
	return nil
}

// Port reports the bound port for distribution to workers.
func (s *Server) Port() int {
	return s.lis.Addr().(*net.TCPAddr).Port
}

// Serve accepts connections until ctx is canceled. Each connection runs its
// own read-dispatch-write loop; per-message errors are answered with error
// envelopes and never terminate the server.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = s.lis.Close() })
	defer stop()

	for {
		conn, err := s.lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("rpc accept failed: %w", err)
		}

		go func() {
			defer func() { _ = conn.Close() }()
			if err := s.handleConn(ctx, conn); err != nil {
				s.log.Error("rpc client error", "remote", conn.RemoteAddr().String(), "error", err)
			}
		}()
	}
}

// handleConn runs the per-connection request loop until the peer closes or a
// transport error occurs.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) error {
	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line == "" {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("rpc read: %w", err)
		}

		resp := s.dispatch(ctx, []byte(line))
		out, err := EncodeResponse(resp)
		if err != nil {
			out, _ = EncodeResponse(errorResponse(resp.ID, fmt.Sprintf("encode response: %v", err)))
		}
		if _, err := conn.Write(out); err != nil {
			return fmt.Errorf("rpc write: %w", err)
		}
	}
}

// callToolParams is the params shape of the call_tool method.
type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// dispatch turns one request line into one response envelope. All failures
// are reported as error envelopes.
func (s *Server) dispatch(ctx context.Context, line []byte) Response {
	req, err := DecodeRequest(line)
	if err != nil {
		return errorResponse(nullValue, err.Error())
	}

	switch req.Method {
	case "initialize":
		resp, err := resultResponse(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"serverInfo":      s.info,
		})
		if err != nil {
			return errorResponse(req.ID, err.Error())
		}
		return resp

	case "list_tools":
		resp, err := resultResponse(req.ID, map[string]any{
			"tools": s.registry.Definitions(),
		})
		if err != nil {
			return errorResponse(req.ID, err.Error())
		}
		return resp

	case "call_tool":
		var params callToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, fmt.Sprintf("invalid call_tool params: %v", err))
		}
		result, err := s.registry.Call(ctx, params.Name, params.Arguments)
		if err != nil {
			return errorResponse(req.ID, err.Error())
		}
		resp, err := resultResponse(req.ID, result)
		if err != nil {
			return errorResponse(req.ID, err.Error())
		}
		return resp

	default:
		return errorResponse(req.ID, (&UnknownMethodError{Method: req.Method}).Error())
	}
}
