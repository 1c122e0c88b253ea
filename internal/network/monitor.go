// Package network tracks whether the appraisal service is reachable.
package network

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"
)

// DefaultProbeAddress is dialed to decide connectivity.
const DefaultProbeAddress = "generativelanguage.googleapis.com:443"

// DefaultProbeInterval is the time between probes.
const DefaultProbeInterval = 15 * time.Second

// Status reports connectivity.
type Status interface {
	Online() bool
}

// Dialer opens probe connections.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Monitor probes a TCP endpoint on a ticker and publishes transitions.
type Monitor struct {
	dialer      Dialer
	logger      *slog.Logger
	cancel      context.CancelFunc
	done        chan struct{}
	address     string
	subscribers []chan bool
	interval    time.Duration
	timeout     time.Duration
	mu          sync.RWMutex
	online      bool
	closed      bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithDialer replaces the network dialer.
func WithDialer(d Dialer) Option {
	return func(m *Monitor) {
		m.dialer = d
	}
}

// WithInterval sets the probe interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// NewMonitor creates a monitor that assumes it is online until the first
// probe says otherwise.
func NewMonitor(address string, logger *slog.Logger, opts ...Option) *Monitor {
	if address == "" {
		address = DefaultProbeAddress
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Monitor{
		address:  address,
		logger:   logger,
		interval: DefaultProbeInterval,
		timeout:  3 * time.Second,
		online:   true,
		dialer:   &net.Dialer{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.timeout > m.interval {
		m.timeout = m.interval
	}
	return m
}

// Online reports the last observed state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe returns a channel receiving the new state on each transition.
// The channel is closed by Close.
func (m *Monitor) Subscribe() <-chan bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan bool, 1)
	if m.closed {
		close(ch)
		return ch
	}
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// Start probes in the background, once immediately and then on every
// interval, until ctx ends or Close is called. It does not wait for the
// first probe.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil || m.closed {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		m.Probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Probe(ctx)
			}
		}
	}()
}

// Probe dials the endpoint once and records the result.
func (m *Monitor) Probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	conn, err := m.dialer.DialContext(probeCtx, "tcp", m.address)
	online := err == nil
	if conn != nil {
		_ = conn.Close()
	}
	if ctx.Err() != nil {
		return m.Online()
	}

	m.set(online)
	return online
}

func (m *Monitor) set(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.online == online {
		return
	}
	m.online = online
	m.logger.Info("connectivity changed", "online", online, "probe", m.address)

	for _, ch := range m.subscribers {
		// Keep only the latest state for slow readers.
		select {
		case <-ch:
		default:
		}
		ch <- online
	}
}

// Close stops probing and closes subscriber channels.
func (m *Monitor) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	cancel, done := m.cancel, m.done
	subs := m.subscribers
	m.subscribers = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	for _, ch := range subs {
		close(ch)
	}
	return nil
}

// Static is a fixed connectivity state.
type Static bool

// Online returns the fixed state.
func (s Static) Online() bool {
	return bool(s)
}
