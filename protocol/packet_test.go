package protocol_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheeler-host/wheeler/protocol"
)

func TestRoundTrip(t *testing.T) {
	in := protocol.ControlPacket{
		SteerAngle:  -450.5,
		Throttle:    0.75,
		Brake:       0.25,
		Buttons:     0xDEADBEEF,
		LeftStickX:  0.1,
		LeftStickY:  -0.2,
		RightStickX: 0.3,
		RightStickY: -1,
	}

	buf, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, protocol.PacketSize)

	var out protocol.ControlPacket
	require.NoError(t, out.UnmarshalBinary(buf))
	assert.Equal(t, in, out)
}

func TestUnmarshalRejectsWrongSizes(t *testing.T) {
	for _, size := range []int{0, 1, 31, 33, 64} {
		var p protocol.ControlPacket
		err := p.UnmarshalBinary(make([]byte, size))
		assert.Error(t, err, "size %d must be rejected", size)
		assert.Equal(t, protocol.ControlPacket{}, p, "failed decode must not touch the receiver")
	}
}

func TestWireLayout(t *testing.T) {
	p := protocol.ControlPacket{
		SteerAngle: 900,
		Throttle:   1,
		Brake:      0.5,
		Buttons:    0x00010203,
		LeftStickY: -1,
	}

	buf, err := p.MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, float32(900), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, uint32(0x00010203), binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, float32(0), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:24])))
}
