package logdnasdk

import "time"

const (
	tailPath                  = "/ws/tail"
	tailReconnectDelay        = 1 * time.Second
	tailMaxReconnectDelay     = 30 * time.Second
	tailDialTimeout           = 10 * time.Second
	tailPingInterval          = 15 * time.Second
	tailPingTimeout           = 5 * time.Second
	tailMaxFrameSize          = 4 * 1024 * 1024 // 4MB
	tailReconnectJitterFactor = 0.25
)

// State is the lifecycle position of a TailSession.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateReconnecting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// TailHandler receives session events. All methods are called from the
// session's read goroutine, in the order frames arrive on the wire.
type TailHandler interface {
	// OnOpen is called every time a connection is established.
	OnOpen()
	// OnRecords delivers the records of one frame.
	OnRecords(records []LogRecord)
	// OnMalformed reports a frame that could not be decoded; the session stays open.
	OnMalformed(frame []byte)
	// OnReconnecting is called before each reconnect attempt, starting at 1.
	OnReconnecting(attempt int)
	// OnClose is called once when the session ends without an auth failure.
	OnClose()
}

// TailOptions tunes the reconnect policy. Zero values pick defaults.
type TailOptions struct {
	// MaxReconnectAttempts bounds consecutive failed attempts; 0 retries forever.
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	MaxReconnectDelay    time.Duration
	DialTimeout          time.Duration
	PingInterval         time.Duration
}

func (o *TailOptions) withDefaults() TailOptions {
	var opts TailOptions
	if o != nil {
		opts = *o
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = tailReconnectDelay
	}
	if opts.MaxReconnectDelay <= 0 {
		opts.MaxReconnectDelay = tailMaxReconnectDelay
	}
	if opts.MaxReconnectDelay < opts.ReconnectDelay {
		opts.MaxReconnectDelay = opts.ReconnectDelay
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = tailDialTimeout
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = tailPingInterval
	}
	return opts
}
