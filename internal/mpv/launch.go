package mpv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const launchPoll = 50 * time.Millisecond

// DefaultLaunchTimeout is how long Launch waits for the socket.
const DefaultLaunchTimeout = 5 * time.Second

// Launch starts an idle, audio-only mpv serving IPC on socketPath and
// returns a connected client along with the process. The caller owns both.
func Launch(ctx context.Context, binary, socketPath string) (*Client, *exec.Cmd, error) {
	if binary == "" {
		return nil, nil, errors.New("mpv binary not configured")
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create socket dir: %w", err)
	}
	_ = os.Remove(socketPath)

	cmd := exec.Command(binary,
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--input-ipc-server="+socketPath,
	)
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("start mpv: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, DefaultLaunchTimeout)
	defer cancel()

	ticker := time.NewTicker(launchPoll)
	defer ticker.Stop()
	for {
		client, err := Connect(socketPath)
		if err == nil {
			return client, cmd, nil
		}
		select {
		case <-waitCtx.Done():
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return nil, nil, fmt.Errorf("wait for mpv socket: %w", waitCtx.Err())
		case <-ticker.C:
		}
	}
}
