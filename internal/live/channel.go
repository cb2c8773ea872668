package live

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/five82/warpdeck/internal/logging"
)

// State is the push channel's connection state.
type State int

const (
	Connecting State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Dialer opens websocket connections. *websocket.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// Options configures a Channel. Zero durations take the defaults.
type Options struct {
	URL            string
	ReconnectDelay time.Duration
	RetargetDelay  time.Duration
	Keepalive      time.Duration
	Dialer         Dialer
	// After is the clock used for reconnect delays.
	After  func(time.Duration) <-chan time.Time
	Logger logrus.FieldLogger
	Buffer int
}

const (
	defaultReconnectDelay = 5 * time.Second
	defaultRetargetDelay  = time.Second
	defaultKeepalive      = 30 * time.Second
	handshakeTimeout      = 5 * time.Second
	writeTimeout          = 5 * time.Second
	defaultBuffer         = 32

	keepaliveFrame = "ping"
	replyFrame     = "pong"
)

// Channel maintains the push connection: Connecting → Open → Closed, then
// back to Connecting after a fixed delay, forever. Decoded events and state
// changes are delivered on Events.
type Channel struct {
	opts   Options
	log    logrus.FieldLogger
	events chan Event

	startOnce sync.Once
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
	kick      chan struct{}

	mu       sync.Mutex
	url      string
	state    State
	conn     *websocket.Conn
	retarget bool
}

// New builds a Channel. Call Start to begin connecting.
func New(opts Options) *Channel {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defaultReconnectDelay
	}
	if opts.RetargetDelay <= 0 {
		opts.RetargetDelay = defaultRetargetDelay
	}
	if opts.Keepalive <= 0 {
		opts.Keepalive = defaultKeepalive
	}
	if opts.Dialer == nil {
		opts.Dialer = &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	}
	if opts.After == nil {
		opts.After = time.After
	}
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	var log logrus.FieldLogger = opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Channel{
		opts:   opts,
		log:    log.WithField("component", "live"),
		events: make(chan Event, opts.Buffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		kick:   make(chan struct{}, 1),
		url:    opts.URL,
		state:  Closed,
	}
}

// Events returns the event stream. It is closed after Close.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// URL returns the address the channel connects to.
func (c *Channel) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

// Start launches the connection loop once.
func (c *Channel) Start() {
	c.startOnce.Do(func() {
		go c.run()
	})
}

// SetURL tears the current transport down and reconnects to url after the
// retarget delay.
func (c *Channel) SetURL(url string) {
	c.mu.Lock()
	c.url = url
	c.retarget = true
	conn := c.conn
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Close stops the loop, closes the transport and waits for the loop to exit.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		c.startOnce.Do(func() { close(c.done) })
		<-c.done
		close(c.events)
	})
}

func (c *Channel) run() {
	defer close(c.done)

	for {
		if c.stopping() {
			return
		}
		url := c.URL()
		if url == "" {
			if !c.waitForKick() {
				return
			}
			continue
		}

		c.setState(Connecting, nil)
		err := c.connectAndReadLoop(url)
		c.mu.Lock()
		c.conn = nil
		retarget := c.retarget
		c.retarget = false
		c.mu.Unlock()
		if c.stopping() {
			c.setState(Closed, nil)
			return
		}
		c.setState(Closed, err)

		delay := c.opts.ReconnectDelay
		if retarget {
			delay = c.opts.RetargetDelay
		}
		if !c.wait(delay) {
			return
		}
	}
}

// wait sleeps for delay. A SetURL during the wait restarts it with the
// retarget delay. It reports false when the channel is closing.
func (c *Channel) wait(delay time.Duration) bool {
	for {
		select {
		case <-c.stop:
			return false
		case <-c.opts.After(delay):
			return true
		case <-c.kick:
			c.mu.Lock()
			c.retarget = false
			c.mu.Unlock()
			delay = c.opts.RetargetDelay
		}
	}
}

func (c *Channel) waitForKick() bool {
	select {
	case <-c.stop:
		return false
	case <-c.kick:
		c.mu.Lock()
		c.retarget = false
		c.mu.Unlock()
		return true
	}
}

func (c *Channel) connectAndReadLoop(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
	conn, resp, err := c.opts.Dialer.DialContext(ctx, url, http.Header{})
	cancel()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		c.log.WithError(err).WithField("url", url).Debug("push channel dial failed")
		return err
	}

	c.mu.Lock()
	if c.url != url || c.stopping() {
		c.mu.Unlock()
		_ = conn.Close()
		return errors.New("push channel retargeted during dial")
	}
	c.conn = conn
	c.mu.Unlock()
	defer func() { _ = conn.Close() }()

	c.setState(Open, nil)
	c.log.WithField("url", url).Info("push channel open")

	var writeMu sync.Mutex
	stopPing := make(chan struct{})
	defer close(stopPing)
	go c.keepalive(conn, &writeMu, stopPing)

	readWindow := c.opts.Keepalive*5/2 + writeTimeout
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWindow))
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if kind != websocket.TextMessage {
			continue
		}
		text := string(msg)
		if text == keepaliveFrame || text == replyFrame {
			continue
		}
		ev, err := Decode(msg)
		if err != nil {
			c.log.WithError(err).WithField("frame", truncate(text, 200)).Warn("dropping malformed push frame")
			continue
		}
		c.emit(ev)
	}
}

func (c *Channel) keepalive(conn *websocket.Conn, writeMu *sync.Mutex, stop <-chan struct{}) {
	ticker := time.NewTicker(c.opts.Keepalive)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-c.stop:
			return
		case <-ticker.C:
			writeMu.Lock()
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.TextMessage, []byte(keepaliveFrame))
			writeMu.Unlock()
			if err != nil {
				c.log.WithError(err).Debug("keepalive write failed")
				_ = conn.Close()
				return
			}
		}
	}
}

func (c *Channel) setState(s State, err error) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	c.mu.Unlock()
	if changed {
		c.emit(Event{Kind: KindState, State: s, Err: err})
	}
}

// emit delivers ev unless the channel is closing. A full buffer blocks the
// read loop, which is the backpressure the UI applies.
func (c *Channel) emit(ev Event) {
	select {
	case c.events <- ev:
	case <-c.stop:
	}
}

func (c *Channel) stopping() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
