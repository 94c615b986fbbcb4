package connection_test

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rsnakamura/theape/internal/adapters/connection"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// echoServer replies to every line with the line upper-cased.
func echoServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer func() { _ = conn.Close() }()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					_, _ = conn.Write([]byte(strings.ToUpper(scanner.Text()) + "\n"))
				}
			}()
		}
	}()
	return ln.Addr().String()
}

// closedAddress returns an address nothing listens on.
func closedAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestClient_Exec(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).Times(1)

	c := connection.NewClient(echoServer(t), log)
	c.Timeout = time.Second

	reply, err := c.Exec(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "PING", reply)

	reply, err = c.Exec(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, "AGAIN", reply)

	assert.True(t, c.Connected())
	require.NoError(t, c.Close())
	assert.False(t, c.Connected())
	require.NoError(t, c.Close())
}

func TestClient_HandleSocketErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Times(1)

	c := connection.NewClient(closedAddress(t), log)
	c.Timeout = time.Second

	_, err := c.Exec(context.Background(), "ping")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.ErrorIs(t, err, domain.ErrUnitFailure)
	var netErr net.Error
	assert.ErrorAs(t, err, &netErr)
	assert.False(t, c.Connected())
}

func TestClient_SuppressSocketErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Times(1)

	c := connection.NewClient(closedAddress(t), log)
	c.Mode = connection.Suppress
	c.Timeout = time.Second

	reply, err := c.Exec(context.Background(), "ping")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestClient_InterruptIsNotASocketError(t *testing.T) {
	for _, mode := range []connection.Mode{connection.Handle, connection.Suppress} {
		ctrl := gomock.NewController(t)
		// Neither reported nor swallowed.
		log := mocks.NewMockLogger(ctrl)

		c := connection.NewClient(closedAddress(t), log)
		c.Mode = mode

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Exec(ctx, "ping")
		require.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, domain.ErrConnection)
		assert.False(t, c.Connected())
	}
}

func TestClient_String(t *testing.T) {
	c := connection.NewClient("example.com:23", nil)
	c.Username = "tester"
	assert.Equal(t, "Username: tester,Address: example.com:23,Timeout: 10s", c.String())
}
