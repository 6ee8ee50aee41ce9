package logdnasdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"
)

// tailSocket runs the read and keep-alive loops of one physical connection.
type tailSocket struct {
	conn         *websocket.Conn
	pingInterval time.Duration
}

func newTailSocket(conn *websocket.Conn, pingInterval time.Duration) *tailSocket {
	return &tailSocket{conn: conn, pingInterval: pingInterval}
}

// run blocks until the connection ends. A normal close from the server
// returns nil; any other termination returns the cause.
func (t *tailSocket) run(ctx context.Context, onFrame func([]byte)) error {
	defer t.conn.CloseNow()

	var readErr error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		readErr = t.readLoop(gctx, onFrame)
		return readErr
	})

	g.Go(func() error {
		return t.pingLoop(gctx)
	})

	return classifyClose(sessionErr(g.Wait(), readErr))
}

// sessionErr picks the error that ended the session. A close frame seen by
// the reader wins since it carries the server's reason, otherwise the first
// failure does, so a ping timeout is not masked by the reader's cancellation.
func sessionErr(waitErr, readErr error) error {
	var closeErr websocket.CloseError
	if errors.As(readErr, &closeErr) {
		return readErr
	}
	return waitErr
}

// readLoop always returns a non-nil error so the ping loop is cancelled with it.
func (t *tailSocket) readLoop(ctx context.Context, onFrame func([]byte)) error {
	defer slog.Debug("tail reader shutdown")

	for {
		_, data, err := t.conn.Read(ctx)
		if err != nil {
			return err
		}
		onFrame(data)
	}
}

func (t *tailSocket) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(t.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, tailPingTimeout)
			err := t.conn.Ping(pingCtx)
			cancel()

			if err != nil {
				return fmt.Errorf("sdk: tail: ping: %w", err)
			}
		}
	}
}

// classifyClose maps the end of a connection onto the session's outcomes:
// nil for a normal close, ErrCredentialRejected when the close carries a
// 401/403, and the raw error for anything that should be retried.
func classifyClose(err error) error {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		if credentialRejectedMessage(closeErr.Reason) {
			return fmt.Errorf("%w: %s", ErrCredentialRejected, closeErr.Reason)
		}
		if closeErr.Code == websocket.StatusNormalClosure {
			return nil
		}
	}
	return err
}
