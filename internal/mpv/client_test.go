package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// startMockMPV accepts connections and answers every request with the
// lines reply returns for it.
func startMockMPV(t *testing.T, reply func(Request) []string) (string, <-chan Request) {
	t.Helper()

	sockPath := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	seen := make(chan Request, 16)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveMockConn(conn, seen, reply)
		}
	}()

	return sockPath, seen
}

func serveMockConn(conn net.Conn, seen chan<- Request, reply func(Request) []string) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			return
		}
		seen <- req
		for _, line := range reply(req) {
			if _, err := conn.Write([]byte(line + "\n")); err != nil {
				return
			}
		}
	}
}

func reply(id int64, data string) string {
	resp := map[string]any{"error": "success", "request_id": id}
	if data != "" {
		resp["data"] = json.RawMessage(data)
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func connect(t *testing.T, sockPath string) *Client {
	t.Helper()
	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClientCommand(t *testing.T) {
	sockPath, seen := startMockMPV(t, func(req Request) []string {
		return []string{reply(req.RequestID, "")}
	})
	client := connect(t, sockPath)

	if err := client.LoadFile("/music/song.mp3"); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	req := <-seen
	if len(req.Command) != 3 || req.Command[0] != "loadfile" || req.Command[1] != "/music/song.mp3" {
		t.Errorf("command = %v", req.Command)
	}
	if req.RequestID != 1 {
		t.Errorf("request_id = %d, want 1", req.RequestID)
	}
}

func TestClientSkipsEventsAndStaleReplies(t *testing.T) {
	sockPath, _ := startMockMPV(t, func(req Request) []string {
		return []string{
			`{"event":"playback-restart"}`,
			reply(req.RequestID+100, "99"),
			reply(req.RequestID, "42.5"),
		}
	})
	client := connect(t, sockPath)

	got, err := client.Progress()
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if got != 0.425 {
		t.Errorf("progress = %v, want 0.425", got)
	}
}

func TestClientProgressClamps(t *testing.T) {
	tests := []struct {
		data string
		want float64
	}{
		{"0", 0},
		{"-3", 0},
		{"100", 1},
		{"150", 1},
		{"50", 0.5},
	}
	for _, tt := range tests {
		sockPath, _ := startMockMPV(t, func(req Request) []string {
			return []string{reply(req.RequestID, tt.data)}
		})
		client := connect(t, sockPath)
		got, err := client.Progress()
		if err != nil {
			t.Fatalf("Progress(%s): %v", tt.data, err)
		}
		if got != tt.want {
			t.Errorf("Progress(%s) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestClientDuration(t *testing.T) {
	sockPath, _ := startMockMPV(t, func(req Request) []string {
		return []string{reply(req.RequestID, "180.5")}
	})
	client := connect(t, sockPath)

	got, err := client.Duration()
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if want := 180*time.Second + 500*time.Millisecond; got != want {
		t.Errorf("duration = %v, want %v", got, want)
	}
}

func TestClientErrorReply(t *testing.T) {
	sockPath, _ := startMockMPV(t, func(req Request) []string {
		return []string{`{"error":"property unavailable","request_id":` + jsonInt(req.RequestID) + `}`}
	})
	client := connect(t, sockPath)

	if _, err := client.Progress(); err == nil {
		t.Error("expected error for unavailable property")
	}
}

func TestClientTimeout(t *testing.T) {
	sockPath, _ := startMockMPV(t, func(Request) []string {
		return []string{`{"event":"shutdown"}`}
	})
	client := connect(t, sockPath)
	client.timeout = 200 * time.Millisecond

	start := time.Now()
	if err := client.SetPause(true); err == nil {
		t.Error("expected error without a reply")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("command took %v", elapsed)
	}
}

func TestClientRecoversAfterTimeout(t *testing.T) {
	var calls atomic.Int32
	sockPath, _ := startMockMPV(t, func(req Request) []string {
		if calls.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		return []string{reply(req.RequestID, "")}
	})
	client := connect(t, sockPath)

	client.timeout = 100 * time.Millisecond
	if err := client.SetPause(true); err == nil {
		t.Fatal("expected timeout on slow reply")
	}

	client.timeout = 2 * time.Second
	if err := client.SetPause(false); err != nil {
		t.Fatalf("SetPause after timeout: %v", err)
	}
	if err := client.SetPause(true); err != nil {
		t.Fatalf("second SetPause after timeout: %v", err)
	}
}

func TestClientClosed(t *testing.T) {
	sockPath, _ := startMockMPV(t, func(req Request) []string {
		return []string{reply(req.RequestID, "")}
	})
	client := connect(t, sockPath)
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := client.SetPause(true); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestClientConnectionDropped(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		bufio.NewReader(conn).ReadString('\n')
		conn.Close()
	}()

	client := connect(t, sockPath)
	if err := client.Seek(0); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestClientConnectFailure(t *testing.T) {
	if _, err := Connect("/nonexistent/path/mpv.sock"); err == nil {
		t.Error("expected error connecting to nonexistent socket")
	}
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
