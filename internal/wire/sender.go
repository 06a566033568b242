package wire

import (
	"context"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Sender owns a single TCP connection to the coordinator and emits
// back-to-back Packet records on it. It never reads a response; the
// coordinator is fire-and-forget from this side. Connection failures are
// logged and retried with exponential backoff rather than surfaced as a
// fatal error, since the caller's FoundQueue keeps undrained nonces safe
// until the next send tick.
type Sender struct {
	addr string
	log  zerolog.Logger
	conn net.Conn
}

// NewSender returns a Sender for the given "host:port" address.
func NewSender(addr string, log zerolog.Logger) *Sender {
	return &Sender{addr: addr, log: log}
}

// Send writes packets back to back on the current connection, dialing (or
// redialing) as needed. On a network error the connection is dropped and
// the next Send call redials from scratch; the caller is expected to keep
// any undelivered packets and retry the send on its next tick.
func (s *Sender) Send(ctx context.Context, packets []Packet) error {
	if len(packets) == 0 {
		return nil
	}

	if s.conn == nil {
		if err := s.dial(ctx); err != nil {
			return err
		}
	}

	for _, p := range packets {
		if _, err := s.conn.Write(p[:]); err != nil {
			s.log.Warn().Err(err).Str("addr", s.addr).Msg("wire send failed, dropping connection")
			_ = s.conn.Close()
			s.conn = nil
			return err
		}
	}

	return nil
}

func (s *Sender) dial(ctx context.Context) error {
	operation := func() error {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", s.addr)
		if err != nil {
			s.log.Warn().Err(err).Str("addr", s.addr).Msg("wire dial failed, retrying")
			return err
		}
		s.conn = conn
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 0 // retry indefinitely; the caller controls lifetime via ctx

	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

// Close releases the underlying connection, if any.
func (s *Sender) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
