package logdnasdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// TailSession owns one live tail: it connects, decodes frames, hands records
// to the handler and reconnects with backoff when the connection drops.
type TailSession struct {
	client   *Client
	identity Identity
	filter   Filter
	handler  TailHandler
	opts     TailOptions

	mu      sync.RWMutex
	state   State
	attempt int
	lastErr error
}

// Tail prepares a session. Nothing is dialed until Run.
func (c *Client) Tail(identity Identity, filter Filter, handler TailHandler, opts *TailOptions) *TailSession {
	return &TailSession{
		client:   c,
		identity: identity,
		filter:   filter,
		handler:  handler,
		opts:     opts.withDefaults(),
		state:    StateConnecting,
	}
}

// State returns the current lifecycle state.
func (s *TailSession) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Attempt returns the current reconnect attempt, 0 while connected.
func (s *TailSession) Attempt() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attempt
}

// LastError returns the error that caused the most recent reconnect.
func (s *TailSession) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Run blocks until the session is closed. It returns nil when the server
// closed the stream normally, ErrUnauthenticated or ErrCredentialRejected for
// auth failures (never retried), ctx.Err() on cancellation, or the last
// transport error once the reconnect budget is spent.
func (s *TailSession) Run(ctx context.Context) error {
	delay := s.opts.ReconnectDelay

	for {
		s.setState(StateConnecting)

		conn, err := s.dial(ctx)
		if err == nil {
			s.onConnected()
			delay = s.opts.ReconnectDelay

			err = s.serve(ctx, conn)
			if err == nil {
				slog.Info("tail closed by server")
				return s.close(nil)
			}
		}

		if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrCredentialRejected) {
			s.setState(StateClosed)
			return err
		}

		if ctx.Err() != nil {
			s.setState(StateClosed)
			return ctx.Err()
		}

		attempt := s.onDisconnected(err)
		if s.opts.MaxReconnectAttempts > 0 && attempt > s.opts.MaxReconnectAttempts {
			slog.Error("tail reconnect budget exhausted", "attempts", attempt-1, "error", err)
			return s.close(fmt.Errorf("sdk: tail: giving up after %d attempts: %w", attempt-1, err))
		}

		wait := jitter(delay)
		slog.Warn("tail disconnected, reconnecting", "attempt", attempt, "delay", wait, "error", err)
		s.handler.OnReconnecting(attempt)

		select {
		case <-ctx.Done():
			s.setState(StateClosed)
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = min(delay*2, s.opts.MaxReconnectDelay)
	}
}

// dial signs a fresh parameter set for every physical attempt, since a
// signature's timestamp is single use.
func (s *TailSession) dial(ctx context.Context) (*websocket.Conn, error) {
	tailURL, err := s.client.tailURL(s.identity, s.filter)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.opts.DialTimeout)
	defer cancel()

	slog.Debug("tail dial", "url", s.client.apiURL+tailPath)

	conn, resp, err := websocket.Dial(dialCtx, tailURL, &websocket.DialOptions{
		HTTPHeader: commonHeaders(),
	})
	if err != nil {
		if resp != nil && IsCredentialRejectedStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: tail handshake status %d", ErrCredentialRejected, resp.StatusCode)
		}
		return nil, fmt.Errorf("sdk: tail: dial: %w", err)
	}

	conn.SetReadLimit(tailMaxFrameSize)
	return conn, nil
}

func (s *TailSession) serve(ctx context.Context, conn *websocket.Conn) error {
	sock := newTailSocket(conn, s.opts.PingInterval)
	return sock.run(ctx, s.dispatch)
}

// dispatch decodes one frame and delivers its records in payload order.
func (s *TailSession) dispatch(frame []byte) {
	records, err := DecodeFrame(frame)
	if err != nil {
		slog.Debug("tail frame rejected", "error", err)
		s.handler.OnMalformed(frame)
		return
	}
	if len(records) > 0 {
		s.handler.OnRecords(records)
	}
}

func (s *TailSession) onConnected() {
	s.mu.Lock()
	s.state = StateOpen
	s.attempt = 0
	s.mu.Unlock()

	slog.Debug("tail open")
	s.handler.OnOpen()
}

func (s *TailSession) onDisconnected(err error) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReconnecting
	s.attempt++
	s.lastErr = err
	return s.attempt
}

func (s *TailSession) close(err error) error {
	s.setState(StateClosed)
	s.handler.OnClose()
	return err
}

func (s *TailSession) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// tailURL builds ws(s)://host/ws/tail?<signed params>&<filter params>.
func (c *Client) tailURL(identity Identity, filter Filter) (string, error) {
	signed, err := c.signer.Sign(identity, nil)
	if err != nil {
		return "", err
	}
	params := append(signed, filter.Params()...)
	return toWebsocketURL(c.apiURL+tailPath) + "?" + params.Encode(), nil
}

// jitter spreads d by ±25% so many clients don't reconnect in lockstep.
func jitter(d time.Duration) time.Duration {
	factor := 1 - tailReconnectJitterFactor + rand.Float64()*2*tailReconnectJitterFactor
	return time.Duration(float64(d) * factor)
}
