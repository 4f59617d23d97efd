package mcp

import (
	"context"
	"os"
	"time"

	"folder2github/internal/logging"
)

// WatchParent cancels the server when the parent process dies (the agent host
// disconnected or restarted), so stdio servers do not linger as zombies.
//
// It must NOT read from stdin: the SDK's StdioTransport owns stdin and any
// byte stolen here corrupts the JSON-RPC stream. Parent death is detected by
// polling the parent PID instead.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "was_pid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
