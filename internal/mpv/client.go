package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"time"
)

// DefaultTimeout bounds a single command round trip.
const DefaultTimeout = 2 * time.Second

// ErrClosed is returned when mpv hangs up.
var ErrClosed = errors.New("mpv connection closed")

// Client communicates with mpv over a Unix socket. After a failed read the
// connection is dropped and the next command dials the socket again.
type Client struct {
	path    string
	conn    net.Conn
	scanner *bufio.Scanner
	mu      sync.Mutex
	closed  bool
	nextID  int64
	timeout time.Duration
}

// Connect dials the mpv IPC socket.
func Connect(socketPath string) (*Client, error) {
	c := &Client{path: socketPath, timeout: DefaultTimeout}
	if err := c.dial(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) dial() error {
	conn, err := net.Dial("unix", c.path)
	if err != nil {
		return fmt.Errorf("connect to mpv: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	c.conn = conn
	c.scanner = scanner
	return nil
}

// drop discards the connection. A scanner never recovers from a read error,
// and a late reply would desynchronise the stream.
func (c *Client) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.scanner = nil
}

// Close shuts down the connection. mpv keeps running.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.scanner = nil
	return err
}

// Command sends args as an mpv command and waits for its reply. Event lines
// and replies to other requests are skipped. A reply whose error is not
// "success" is returned as an error.
func (c *Client) Command(args ...any) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Response{}, ErrClosed
	}
	if c.conn == nil {
		if err := c.dial(); err != nil {
			return Response{}, err
		}
	}

	c.nextID++
	req := Request{Command: args, RequestID: c.nextID}
	data, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("marshal command: %w", err)
	}

	conn := c.conn
	if c.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.timeout))
		defer conn.SetDeadline(time.Time{})
	}

	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		c.drop()
		return Response{}, fmt.Errorf("write command: %w", err)
	}

	scanner := c.scanner
	for {
		if !scanner.Scan() {
			err := scanner.Err()
			c.drop()
			if err != nil {
				return Response{}, fmt.Errorf("read response: %w", err)
			}
			return Response{}, ErrClosed
		}

		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return Response{}, fmt.Errorf("unmarshal response: %w", err)
		}
		if resp.Event != "" || resp.RequestID != req.RequestID {
			continue
		}
		if !resp.OK() {
			return resp, fmt.Errorf("mpv %v: %s", args[0], resp.Error)
		}
		return resp, nil
	}
}

// LoadFile replaces the current file with path.
func (c *Client) LoadFile(path string) error {
	_, err := c.Command("loadfile", path, "replace")
	return err
}

// SetPause pauses or resumes playback.
func (c *Client) SetPause(paused bool) error {
	_, err := c.Command("set_property", "pause", paused)
	return err
}

// Seek jumps to an absolute position in seconds.
func (c *Client) Seek(seconds float64) error {
	_, err := c.Command("seek", seconds, "absolute")
	return err
}

// Progress returns the playback position as a fraction in [0, 1].
func (c *Client) Progress() (float64, error) {
	resp, err := c.Command("get_property", "percent-pos")
	if err != nil {
		return 0, err
	}
	pct, err := resp.Float()
	if err != nil {
		return 0, fmt.Errorf("decode percent-pos: %w", err)
	}
	switch {
	case math.IsNaN(pct) || pct < 0:
		return 0, nil
	case pct > 100:
		return 1, nil
	}
	return pct / 100, nil
}

// Duration returns the length of the loaded file.
func (c *Client) Duration() (time.Duration, error) {
	resp, err := c.Command("get_property", "duration")
	if err != nil {
		return 0, err
	}
	secs, err := resp.Float()
	if err != nil {
		return 0, fmt.Errorf("decode duration: %w", err)
	}
	if secs < 0 {
		secs = 0
	}
	return time.Duration(secs * float64(time.Second)), nil
}
