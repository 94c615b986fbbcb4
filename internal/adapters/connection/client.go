// Package connection implements a line-oriented TCP client whose socket
// errors are contained according to a Mode.
package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"github.com/rsnakamura/theape/internal/engine/contain"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds connecting and each exchange.
const DefaultTimeout = 10 * time.Second

// Mode selects what happens to socket errors.
type Mode uint8

const (
	// Handle logs socket errors and returns them as domain.ErrConnection.
	Handle Mode = iota
	// Suppress logs socket errors and carries on with an empty reply.
	Suppress
)

// Client sends newline-terminated commands to Address and reads one reply
// line per command. The connection is opened on first use.
type Client struct {
	Address  string
	Username string
	Timeout  time.Duration
	Mode     Mode

	logger ports.Logger
	conn   net.Conn
	reader *bufio.Reader
}

// NewClient creates a client for address.
func NewClient(address string, logger ports.Logger) *Client {
	return &Client{Address: address, Timeout: DefaultTimeout, logger: logger}
}

// Exec sends command and returns the reply without its line terminator.
func (c *Client) Exec(ctx context.Context, command string) (string, error) {
	return contain.Value(c.guard(), func() (string, error) {
		return c.exchange(ctx, command)
	})
}

func (c *Client) guard() contain.Guard {
	return contain.Guard{
		Match: socketError,
		Convert: func(err error) error {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrConnection, err), "error with connection"), "address", c.Address)
		},
		Report: func(err error) {
			c.logger.Error(err)
			c.reset()
		},
		Continue: c.Mode == Suppress,
	}
}

// socketError matches network errors that are not interruptions of ctx.
func socketError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return contain.As[net.Error]()(err)
}

func (c *Client) exchange(ctx context.Context, command string) (string, error) {
	if err := c.connect(ctx); err != nil {
		return "", err
	}

	deadline := time.Now().Add(c.timeout())
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return "", err
	}

	if _, err := fmt.Fprintf(c.conn, "%s\n", command); err != nil {
		return "", err
	}
	reply, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

func (c *Client) connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	dialer := net.Dialer{Timeout: c.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		return err
	}
	c.logger.Debug("connected to " + c.Address)
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Client) reset() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.reader = nil
}

// Connected reports whether a connection is open.
func (c *Client) Connected() bool {
	return c.conn != nil
}

// Close closes the connection if one is open.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrConnection, err), "failed to close connection"), "address", c.Address)
	}
	return nil
}

func (c *Client) String() string {
	return fmt.Sprintf("Username: %s,Address: %s,Timeout: %s", c.Username, c.Address, c.timeout())
}
