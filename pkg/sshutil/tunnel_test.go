package sshutil

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/solprobe/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeForwarder forwards every Dial to target on the local network.
type fakeForwarder struct {
	mu       sync.Mutex
	target   string
	dead     bool
	failDial bool
	closed   bool
	dialed   []string
}

func (f *fakeForwarder) Dial(network, addr string) (net.Conn, error) {
	f.mu.Lock()
	f.dialed = append(f.dialed, addr)
	fail := f.failDial
	f.mu.Unlock()

	if fail {
		return nil, stderrors.New("ssh: rejected: connect failed (Connection refused)")
	}
	return net.Dial(network, f.target)
}

func (f *fakeForwarder) SendRequest(name string, wantReply bool, payload []byte) (bool, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dead || f.closed {
		return false, nil, io.EOF
	}
	return false, nil, nil
}

func (f *fakeForwarder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// dialRecorder hands out forwarders and counts how many were opened.
type dialRecorder struct {
	mu      sync.Mutex
	target  string
	opened  []*fakeForwarder
	failErr error
}

func (d *dialRecorder) dial(ctx context.Context, host string) (Forwarder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failErr != nil {
		return nil, d.failErr
	}
	f := &fakeForwarder{target: d.target}
	d.opened = append(d.opened, f)
	return f, nil
}

func (d *dialRecorder) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.opened)
}

func newRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":"ok"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTunnel_LazyConnect(t *testing.T) {
	srv := newRPCServer(t)
	rec := &dialRecorder{target: srv.Listener.Addr().String()}
	tun := NewTunnel("validator", time.Second, WithDialFunc(rec.dial))

	assert.Equal(t, 0, rec.count(), "nothing dialed before first use")
	assert.Equal(t, "validator", tun.Host())

	conn, err := tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()

	conn, err = tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()

	assert.Equal(t, 1, rec.count(), "live connection is reused")
	assert.Equal(t, []string{"127.0.0.1:8899", "127.0.0.1:8899"}, rec.opened[0].dialed)
}

func TestTunnel_ReconnectsWhenStale(t *testing.T) {
	srv := newRPCServer(t)
	rec := &dialRecorder{target: srv.Listener.Addr().String()}
	tun := NewTunnel("validator", time.Second, WithDialFunc(rec.dial))

	conn, err := tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()

	rec.opened[0].mu.Lock()
	rec.opened[0].dead = true
	rec.opened[0].mu.Unlock()

	conn, err = tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()

	assert.Equal(t, 2, rec.count())
	assert.True(t, rec.opened[0].closed)
}

func TestTunnel_RetriesFailedForwardOnce(t *testing.T) {
	srv := newRPCServer(t)
	rec := &dialRecorder{target: srv.Listener.Addr().String()}
	tun := NewTunnel("validator", time.Second, WithDialFunc(rec.dial))

	conn, err := tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()

	rec.opened[0].mu.Lock()
	rec.opened[0].failDial = true
	rec.opened[0].mu.Unlock()

	conn, err = tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err, "second forwarder succeeds")
	conn.Close()
	assert.Equal(t, 2, rec.count())
}

func TestTunnel_ForwardFailsTwice(t *testing.T) {
	rec := &dialRecorder{target: "127.0.0.1:1"}
	tun := NewTunnel("validator", time.Second, WithDialFunc(func(ctx context.Context, host string) (Forwarder, error) {
		f, _ := rec.dial(ctx, host)
		f.(*fakeForwarder).failDial = true
		return f, nil
	}))

	_, err := tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
	assert.Contains(t, err.Error(), "127.0.0.1:8899")
}

func TestTunnel_DialError(t *testing.T) {
	dialErr := errors.New(errors.ErrSSH, "Can't reach 'validator'", "ping it")
	rec := &dialRecorder{failErr: dialErr}
	tun := NewTunnel("validator", time.Second, WithDialFunc(rec.dial))

	_, err := tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	assert.ErrorIs(t, err, dialErr)
}

func TestTunnel_HTTPClient(t *testing.T) {
	srv := newRPCServer(t)
	rec := &dialRecorder{target: srv.Listener.Addr().String()}
	tun := NewTunnel("validator", time.Second, WithDialFunc(rec.dial))
	defer tun.Close()

	// The URL names the address on the SSH host; the tunnel carries it.
	resp, err := tun.HTTPClient(2*time.Second).Post("http://127.0.0.1:8899", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"result":"ok"`)
	assert.Equal(t, 1, rec.count())
}

func TestTunnel_Close(t *testing.T) {
	srv := newRPCServer(t)
	rec := &dialRecorder{target: srv.Listener.Addr().String()}
	tun := NewTunnel("validator", time.Second, WithDialFunc(rec.dial))

	assert.NoError(t, tun.Close(), "closing an unused tunnel is fine")

	conn, err := tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()

	require.NoError(t, tun.Close())
	assert.True(t, rec.opened[0].closed)

	conn, err = tun.DialContext(context.Background(), "tcp", "127.0.0.1:8899")
	require.NoError(t, err)
	conn.Close()
	assert.Equal(t, 2, rec.count(), "reopens after Close")
}

func TestNewTunnel_DefaultTimeout(t *testing.T) {
	tun := NewTunnel("validator", 0)
	assert.Equal(t, 10*time.Second, tun.timeout)
	assert.NotNil(t, tun.dial)
}
