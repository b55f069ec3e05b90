package daemon_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheeler-host/wheeler/driver"
	"github.com/wheeler-host/wheeler/gamepad"
	"github.com/wheeler-host/wheeler/internal/daemon"
	"github.com/wheeler-host/wheeler/protocol"
)

// startLoopback runs a daemon against an in-process driver on an
// ephemeral port and returns the device plus a UDP sender.
func startLoopback(t *testing.T) (*driver.Device, net.Conn) {
	t.Helper()

	dev := driver.New(nil, nil)
	require.NoError(t, dev.Start())
	t.Cleanup(dev.Stop)

	d := daemon.New(daemon.Config{Addr: "127.0.0.1:0"}, driver.Open(dev), nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	select {
	case <-d.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not become ready")
	}

	conn, err := net.Dial("udp", d.LocalAddr().String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return dev, conn
}

func TestValidPacketReachesDriver(t *testing.T) {
	dev, conn := startLoopback(t)

	pkt := protocol.ControlPacket{SteerAngle: 900, Throttle: 1, Buttons: gamepad.ButtonA}
	buf, err := pkt.MarshalBinary()
	require.NoError(t, err)

	want, err := gamepad.FromPacket(&pkt, gamepad.DefaultMapping()).MarshalBinary()
	require.NoError(t, err)

	_, err = conn.Write(buf)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, dev.GetState())
	}, 2*time.Second, 5*time.Millisecond, "driver state must reflect the pushed packet")
}

func TestWrongSizedDatagramsAreDiscarded(t *testing.T) {
	dev, conn := startLoopback(t)

	// Establish a known non-neutral state first.
	pkt := protocol.ControlPacket{Throttle: 1}
	buf, err := pkt.MarshalBinary()
	require.NoError(t, err)
	want, err := gamepad.FromPacket(&pkt, gamepad.DefaultMapping()).MarshalBinary()
	require.NoError(t, err)

	_, err = conn.Write(buf)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, dev.GetState())
	}, 2*time.Second, 5*time.Millisecond)

	// A truncated and an oversized datagram must both be ignored without
	// touching the driver.
	for _, size := range []int{protocol.PacketSize - 1, protocol.PacketSize + 1} {
		junk := make([]byte, size)
		for i := range junk {
			junk[i] = 0xFF
		}
		_, err = conn.Write(junk)
		require.NoError(t, err)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, want, dev.GetState(), "malformed datagrams must not alter driver state")
}

func TestDriverFailureDoesNotStopLoop(t *testing.T) {
	dev := driver.New(nil, nil)
	require.NoError(t, dev.Start())
	defer dev.Stop()

	conn := driver.Open(dev)
	require.NoError(t, conn.Close()) // every push will fail

	d := daemon.New(daemon.Config{Addr: "127.0.0.1:0", FailureLogEvery: 2}, conn, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	select {
	case <-d.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not become ready")
	}

	sender, err := net.Dial("udp", d.LocalAddr().String())
	require.NoError(t, err)
	defer sender.Close()

	pkt := protocol.ControlPacket{}
	buf, err := pkt.MarshalBinary()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = sender.Write(buf)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case err := <-done:
		t.Fatalf("loop terminated on driver failure: %v", err)
	case <-time.After(100 * time.Millisecond):
		// Still running: driver unavailability is transient by design.
	}
}
