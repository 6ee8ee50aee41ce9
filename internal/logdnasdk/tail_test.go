package logdnasdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu         sync.Mutex
	opens      int
	records    []LogRecord
	malformed  []string
	reconnects []int
	closes     int

	opened chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{opened: make(chan struct{}, 8)}
}

func (h *recordingHandler) OnOpen() {
	h.mu.Lock()
	h.opens++
	h.mu.Unlock()
	h.opened <- struct{}{}
}

func (h *recordingHandler) OnRecords(records []LogRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, records...)
}

func (h *recordingHandler) OnMalformed(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.malformed = append(h.malformed, string(frame))
}

func (h *recordingHandler) OnReconnecting(attempt int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reconnects = append(h.reconnects, attempt)
}

func (h *recordingHandler) OnClose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closes++
}

// tailServer serves /ws/tail with serve and records the query of every dial.
type tailServer struct {
	mu      sync.Mutex
	queries []map[string]string
}

func (ts *tailServer) dials() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.queries)
}

func newTailClient(t *testing.T, ts *tailServer, serve func(n int, w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()

	var clock atomic.Int64
	clock.Store(1700000000000)
	signer := &Signer{Now: func() time.Time { return time.UnixMilli(clock.Add(1)) }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, tailPath, r.URL.Path)

		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}

		ts.mu.Lock()
		ts.queries = append(ts.queries, q)
		n := len(ts.queries)
		ts.mu.Unlock()

		serve(n, w, r)
	}))
	t.Cleanup(server.Close)

	client, err := New(&Config{APIURL: server.URL, Signer: signer})
	require.NoError(t, err)
	return client
}

func fastTail() *TailOptions {
	return &TailOptions{
		ReconnectDelay:    5 * time.Millisecond,
		MaxReconnectDelay: 20 * time.Millisecond,
		DialTimeout:       2 * time.Second,
	}
}

func accept(t *testing.T, w http.ResponseWriter, r *http.Request) *websocket.Conn {
	conn, err := websocket.Accept(w, r, nil)
	if !assert.NoError(t, err) {
		return nil
	}
	return conn
}

func TestTail_DeliversFramesAndClosesNormally(t *testing.T) {
	ts := &tailServer{}
	client := newTailClient(t, ts, func(_ int, w http.ResponseWriter, r *http.Request) {
		conn := accept(t, w, r)
		if conn == nil {
			return
		}
		ctx := r.Context()
		_ = conn.Write(ctx, websocket.MessageText, []byte(`{"p":[{"_ts":1,"_host":"web1","_app":"api","_line":"one"},{"_ts":2,"_host":"web1","_app":"api","_line":"two"}]}`))
		_ = conn.Write(ctx, websocket.MessageText, []byte(`not json`))
		_ = conn.Write(ctx, websocket.MessageText, []byte(`{"p":{"_ts":3,"_host":"web2","_app":"cron","_line":"three"}}`))
		_ = conn.Close(websocket.StatusNormalClosure, "")
	})

	handler := newRecordingHandler()
	session := client.Tail(testIdentity, BuildFilter("error", FilterOptions{Apps: "api"}), handler, fastTail())

	err := session.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, StateClosed, session.State())

	handler.mu.Lock()
	defer handler.mu.Unlock()

	assert.Equal(t, 1, handler.opens)
	assert.Equal(t, 1, handler.closes)
	assert.Empty(t, handler.reconnects)
	assert.Equal(t, []string{"not json"}, handler.malformed)

	require.Len(t, handler.records, 3)
	assert.Equal(t, "one", handler.records[0].Line)
	assert.Equal(t, "two", handler.records[1].Line)
	assert.Equal(t, "three", handler.records[2].Line)

	require.Equal(t, 1, ts.dials())
	q := ts.queries[0]
	assert.Equal(t, "alice@example.com", q["email"])
	assert.Equal(t, "acct1", q["id"])
	assert.NotEmpty(t, q["hmac"])
	assert.Equal(t, "error level:-debug", q["q"])
	assert.Equal(t, "api", q["apps"])
}

func TestTail_UnauthenticatedNeverDials(t *testing.T) {
	ts := &tailServer{}
	client := newTailClient(t, ts, func(_ int, w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected dial")
	})

	handler := newRecordingHandler()
	err := client.Tail(Identity{Email: "alice@example.com"}, Filter{}, handler, fastTail()).Run(t.Context())

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, 0, ts.dials())
	assert.Equal(t, 0, handler.closes)
}

func TestTail_HandshakeRejectedIsNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ts := &tailServer{}
			client := newTailClient(t, ts, func(_ int, w http.ResponseWriter, r *http.Request) {
				http.Error(w, "denied", status)
			})

			handler := newRecordingHandler()
			session := client.Tail(testIdentity, Filter{}, handler, fastTail())
			err := session.Run(t.Context())

			assert.ErrorIs(t, err, ErrCredentialRejected)
			assert.Equal(t, 1, ts.dials())
			assert.Empty(t, handler.reconnects)
			assert.Equal(t, 0, handler.closes)
			assert.Equal(t, StateClosed, session.State())
		})
	}
}

func TestTail_CloseReasonRejected(t *testing.T) {
	ts := &tailServer{}
	client := newTailClient(t, ts, func(_ int, w http.ResponseWriter, r *http.Request) {
		conn := accept(t, w, r)
		if conn == nil {
			return
		}
		_ = conn.Close(websocket.StatusPolicyViolation, "401 Unauthorized")
	})

	handler := newRecordingHandler()
	err := client.Tail(testIdentity, Filter{}, handler, fastTail()).Run(t.Context())

	assert.ErrorIs(t, err, ErrCredentialRejected)
	assert.Equal(t, 1, ts.dials())
	assert.Empty(t, handler.reconnects)
}

func TestTail_ReconnectsWithFreshSignature(t *testing.T) {
	ts := &tailServer{}
	client := newTailClient(t, ts, func(n int, w http.ResponseWriter, r *http.Request) {
		conn := accept(t, w, r)
		if conn == nil {
			return
		}
		if n == 1 {
			_ = conn.CloseNow()
			return
		}
		_ = conn.Write(r.Context(), websocket.MessageText, []byte(`{"p":[{"_ts":1,"_line":"after reconnect"}]}`))
		_ = conn.Close(websocket.StatusNormalClosure, "")
	})

	handler := newRecordingHandler()
	session := client.Tail(testIdentity, Filter{}, handler, fastTail())
	err := session.Run(t.Context())
	require.NoError(t, err)

	handler.mu.Lock()
	defer handler.mu.Unlock()

	assert.Equal(t, 2, handler.opens)
	assert.Equal(t, []int{1}, handler.reconnects)
	assert.Equal(t, 1, handler.closes)
	require.Len(t, handler.records, 1)
	assert.Equal(t, "after reconnect", handler.records[0].Line)

	require.Equal(t, 2, ts.dials())
	assert.NotEqual(t, ts.queries[0]["ts"], ts.queries[1]["ts"])
	assert.NotEqual(t, ts.queries[0]["hmac"], ts.queries[1]["hmac"])
	assert.Equal(t, 0, session.Attempt())
}

func TestTail_GivesUpAfterBudget(t *testing.T) {
	ts := &tailServer{}
	client := newTailClient(t, ts, func(_ int, w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	opts := fastTail()
	opts.MaxReconnectAttempts = 2

	handler := newRecordingHandler()
	session := client.Tail(testIdentity, Filter{}, handler, opts)
	err := session.Run(t.Context())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCredentialRejected)
	assert.Equal(t, 3, ts.dials())
	assert.Equal(t, []int{1, 2}, handler.reconnects)
	assert.Equal(t, 1, handler.closes)
	assert.Equal(t, 0, handler.opens)
	assert.Error(t, session.LastError())
	assert.Equal(t, StateClosed, session.State())
}

func TestTail_ContextCancel(t *testing.T) {
	ts := &tailServer{}
	client := newTailClient(t, ts, func(_ int, w http.ResponseWriter, r *http.Request) {
		conn := accept(t, w, r)
		if conn == nil {
			return
		}
		defer conn.CloseNow()
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	handler := newRecordingHandler()
	session := client.Tail(testIdentity, Filter{}, handler, fastTail())

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	select {
	case <-handler.opened:
	case <-time.After(5 * time.Second):
		t.Fatal("tail never opened")
	}
	assert.Equal(t, StateOpen, session.State())

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("tail did not stop")
	}
	assert.Equal(t, StateClosed, session.State())
}

func TestClassifyClose(t *testing.T) {
	assert.NoError(t, classifyClose(websocket.CloseError{Code: websocket.StatusNormalClosure}))
	assert.ErrorIs(t, classifyClose(websocket.CloseError{Code: websocket.StatusPolicyViolation, Reason: "403"}), ErrCredentialRejected)

	goingAway := websocket.CloseError{Code: websocket.StatusGoingAway}
	assert.ErrorIs(t, classifyClose(goingAway), goingAway)
}

func TestSessionErr(t *testing.T) {
	pingErr := fmt.Errorf("sdk: tail: ping: %w", context.DeadlineExceeded)

	err := sessionErr(pingErr, context.Canceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, classifyClose(err), context.Canceled)

	closeErr := websocket.CloseError{Code: websocket.StatusPolicyViolation, Reason: "401 Unauthorized"}
	err = sessionErr(pingErr, fmt.Errorf("read: %w", closeErr))
	assert.ErrorIs(t, classifyClose(err), ErrCredentialRejected)

	readEOF := errors.New("EOF")
	assert.Equal(t, readEOF, sessionErr(readEOF, readEOF))
}

func TestJitterBounds(t *testing.T) {
	for range 100 {
		d := jitter(time.Second)
		assert.GreaterOrEqual(t, d, 750*time.Millisecond)
		assert.LessOrEqual(t, d, 1250*time.Millisecond)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
