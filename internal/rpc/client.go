package rpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Socket deadlines applied by the client per round trip. The server applies
// no per-request timeout of its own.
const (
	ReadTimeout  = 20 * time.Second
	WriteTimeout = 10 * time.Second
)

// Client is one connection to the RPC server. Calls are strictly sequential:
// each request waits for its matched response before the next is sent.
// Request ids come from a counter owned by the client, not global state.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	nextID uint64
}

// Dial connects to the server on the loopback interface.
func Dial(port int) (*Client, error) {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), WriteTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc server: %w", err)
	}
	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
		nextID: 1,
	}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Call performs one synchronous round trip. A response error envelope is
// returned as a *ServerError; transport failures and timeouts are fatal to
// the connection.
func (c *Client) Call(method string, params any) (json.RawMessage, error) {
	id := c.nextID
	c.nextID++

	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	idValue, _ := json.Marshal(strconv.FormatUint(id, 10))

	out, err := EncodeRequest(Request{ID: idValue, Method: method, Params: rawParams})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := c.conn.Write(out); err != nil {
		return nil, fmt.Errorf("rpc write: %w", err)
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(ReadTimeout)); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("rpc read: %w", err)
	}

	resp, err := DecodeResponse([]byte(line))
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &ServerError{Message: resp.Error.Message}
	}
	if len(resp.Result) == 0 {
		return nullValue, nil
	}
	return resp.Result, nil
}

// CallTool invokes a named tool through the call_tool method.
func (c *Client) CallTool(name string, arguments any) (json.RawMessage, error) {
	return c.Call("call_tool", map[string]any{
		"name":      name,
		"arguments": arguments,
	})
}
