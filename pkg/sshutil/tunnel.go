package sshutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/rileyhilliard/solprobe/internal/logger"
)

// Forwarder opens TCP connections on the far side of an SSH connection.
// *Client satisfies it.
type Forwarder interface {
	Dial(network, addr string) (net.Conn, error)
	SendRequest(name string, wantReply bool, payload []byte) (bool, []byte, error)
	Close() error
}

// DialFunc opens a Forwarder for host.
type DialFunc func(ctx context.Context, host string) (Forwarder, error)

var _ Forwarder = (*Client)(nil)

// keepaliveRequest is the global request OpenSSH servers answer cheaply.
const keepaliveRequest = "keepalive@openssh.com"

// Tunnel routes TCP connections through a lazily opened SSH connection,
// reopening it when it goes stale.
type Tunnel struct {
	host    string
	timeout time.Duration
	dial    DialFunc
	log     logger.Logger

	mu   sync.Mutex
	conn Forwarder
}

// TunnelOption configures a Tunnel.
type TunnelOption func(*Tunnel)

// WithDialFunc replaces how the SSH connection is opened.
func WithDialFunc(fn DialFunc) TunnelOption {
	return func(t *Tunnel) {
		t.dial = fn
	}
}

// WithTunnelLogger sets the logger for connect and reconnect events.
func WithTunnelLogger(l logger.Logger) TunnelOption {
	return func(t *Tunnel) {
		t.log = l
	}
}

// NewTunnel creates a tunnel through host. Nothing is dialed until the
// first connection is requested.
func NewTunnel(host string, timeout time.Duration, opts ...TunnelOption) *Tunnel {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	t := &Tunnel{
		host:    host,
		timeout: timeout,
		log:     logger.Noop(),
	}
	t.dial = func(ctx context.Context, host string) (Forwarder, error) {
		return Dial(ctx, host, t.timeout)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Host returns the SSH host the tunnel goes through.
func (t *Tunnel) Host() string {
	return t.host
}

// DialContext connects to addr as seen from the SSH host. A failed forward
// on a cached connection is retried once on a fresh one.
func (t *Tunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	fwd, err := t.forwarder(ctx)
	if err != nil {
		return nil, err
	}

	conn, err := fwd.Dial(network, addr)
	if err == nil {
		return conn, nil
	}

	t.log.Debug("forward to %s via %s failed, reconnecting: %v", addr, t.host, err)
	t.drop(fwd)

	fwd, err = t.forwarder(ctx)
	if err != nil {
		return nil, err
	}
	conn, err = fwd.Dial(network, addr)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach %s through '%s'", addr, t.host),
			"Check the node's RPC port is listening on the SSH host (ssh.remote_addr)")
	}
	return conn, nil
}

// HTTPClient returns an HTTP client whose connections go through the tunnel.
func (t *Tunnel) HTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:         t.DialContext,
			MaxIdleConns:        4,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// Close closes the SSH connection if one is open.
func (t *Tunnel) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// forwarder returns the cached connection if it still answers keepalives,
// otherwise opens a new one.
func (t *Tunnel) forwarder(ctx context.Context) (Forwarder, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		if isAlive(t.conn) {
			return t.conn, nil
		}
		t.log.Debug("SSH connection to %s went stale", t.host)
		_ = t.conn.Close()
		t.conn = nil
	}

	fwd, err := t.dial(ctx, t.host)
	if err != nil {
		return nil, err
	}
	t.log.Debug("SSH connection to %s established", t.host)
	t.conn = fwd
	return fwd, nil
}

// drop closes fwd if it is still the cached connection.
func (t *Tunnel) drop(fwd Forwarder) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == fwd {
		_ = t.conn.Close()
		t.conn = nil
	}
}

func isAlive(fwd Forwarder) bool {
	_, _, err := fwd.SendRequest(keepaliveRequest, true, nil)
	return err == nil
}
