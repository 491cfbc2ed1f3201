package port

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// occupyTCP binds an ephemeral TCP port and returns its number.
// The listener is closed automatically when the test finishes.
func occupyTCP(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })
	return listener.Addr().(*net.TCPAddr).Port
}

// TestIsPortAvailable verifies detection of free and occupied ports.
func TestIsPortAvailable(t *testing.T) {
	s := NewScanner()

	t.Run("occupied TCP port is unavailable", func(t *testing.T) {
		port := occupyTCP(t)
		assert.False(t, s.IsPortAvailable(port, "tcp"))
	})

	t.Run("freed TCP port becomes available", func(t *testing.T) {
		listener, err := net.Listen("tcp", ":0")
		require.NoError(t, err)
		port := listener.Addr().(*net.TCPAddr).Port
		require.NoError(t, listener.Close())

		assert.True(t, s.IsPortAvailable(port, "tcp"))
	})

	t.Run("occupied UDP port is unavailable", func(t *testing.T) {
		conn, err := net.ListenPacket("udp", ":0")
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		port := conn.LocalAddr().(*net.UDPAddr).Port

		assert.False(t, s.IsPortAvailable(port, "udp"))
	})

	t.Run("unknown protocol fails safe", func(t *testing.T) {
		assert.False(t, s.IsPortAvailable(50000, "sctp"))
	})
}

// TestFindAvailablePort verifies range scanning, including the skip over
// an occupied port and the exhausted-range error.
func TestFindAvailablePort(t *testing.T) {
	s := NewScanner()

	t.Run("skips an occupied port", func(t *testing.T) {
		occupied := occupyTCP(t)

		found, err := s.FindAvailablePort(occupied, occupied+10, "tcp")
		require.NoError(t, err)
		assert.NotEqual(t, occupied, found)
		assert.GreaterOrEqual(t, found, occupied)
		assert.LessOrEqual(t, found, occupied+10)
	})

	t.Run("exhausted range is an error", func(t *testing.T) {
		occupied := occupyTCP(t)

		_, err := s.FindAvailablePort(occupied, occupied, "tcp")
		require.Error(t, err)
		assert.Contains(t, err.Error(), fmt.Sprintf("%d-%d", occupied, occupied))
	})
}
