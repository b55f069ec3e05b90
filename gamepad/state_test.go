package gamepad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheeler-host/wheeler/gamepad"
	"github.com/wheeler-host/wheeler/protocol"
)

func TestFromPacketSteering(t *testing.T) {
	cases := []struct {
		name  string
		angle float32
		want  int16
	}{
		{"center", 0, 0},
		{"full right", 900, 32767},
		{"full left", -900, -32767},
		{"half right", 450, 16383},
		{"clamped beyond right lock", 1200, 32767},
		{"clamped beyond left lock", -2000, -32767},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pkt := protocol.ControlPacket{SteerAngle: tc.angle}
			st := gamepad.FromPacket(&pkt, gamepad.DefaultMapping())
			assert.Equal(t, tc.want, st.LX)
		})
	}
}

func TestFromPacketTriggers(t *testing.T) {
	cases := []struct {
		name            string
		throttle, brake float32
		wantRT, wantLT  uint8
	}{
		{"released", 0, 0, 0, 0},
		{"floored", 1, 1, 255, 255},
		{"half throttle", 0.5, 0, 127, 0},
		{"out of range clamps high", 1.5, 2, 255, 255},
		{"out of range clamps low", -0.5, -1, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pkt := protocol.ControlPacket{Throttle: tc.throttle, Brake: tc.brake}
			st := gamepad.FromPacket(&pkt, gamepad.DefaultMapping())
			assert.Equal(t, tc.wantRT, st.RT, "right trigger")
			assert.Equal(t, tc.wantLT, st.LT, "left trigger")
		})
	}
}

func TestFromPacketButtonsAndHat(t *testing.T) {
	pkt := protocol.ControlPacket{Buttons: 0xFFFF0000 | gamepad.ButtonA | gamepad.ButtonStart}
	st := gamepad.FromPacket(&pkt, gamepad.DefaultMapping())

	assert.Equal(t, uint16(gamepad.ButtonA|gamepad.ButtonStart), st.Buttons, "high 16 bits must be truncated")
	// The wire protocol carries no hat field; the dpad stays centered.
	assert.Equal(t, uint8(gamepad.HatCenter), st.DPad)
}

func TestFromPacketSticks(t *testing.T) {
	pkt := protocol.ControlPacket{LeftStickY: -1, RightStickX: 0.5, RightStickY: 2}
	st := gamepad.FromPacket(&pkt, gamepad.DefaultMapping())

	assert.Equal(t, int16(-32767), st.LY)
	assert.Equal(t, int16(16383), st.RX)
	assert.Equal(t, int16(32767), st.RY, "out-of-range stick input clamps instead of wrapping")
}

func TestFromPacketMapping(t *testing.T) {
	t.Run("deadzone", func(t *testing.T) {
		pkt := protocol.ControlPacket{LeftStickY: 0.05, RightStickX: -0.2}
		st := gamepad.FromPacket(&pkt, gamepad.Mapping{MaxSteerAngle: 900, Deadzone: 0.1})
		assert.Equal(t, int16(0), st.LY)
		assert.Equal(t, int16(-6553), st.RX)
	})

	t.Run("invert steering", func(t *testing.T) {
		pkt := protocol.ControlPacket{SteerAngle: 900}
		st := gamepad.FromPacket(&pkt, gamepad.Mapping{MaxSteerAngle: 900, InvertSteering: true})
		assert.Equal(t, int16(-32767), st.LX)
	})

	t.Run("smaller lock-to-lock", func(t *testing.T) {
		pkt := protocol.ControlPacket{SteerAngle: 270}
		st := gamepad.FromPacket(&pkt, gamepad.Mapping{MaxSteerAngle: 540})
		assert.Equal(t, int16(16383), st.LX)
	})
}

func TestStateRoundTrip(t *testing.T) {
	in := gamepad.State{
		LX: -32768, LY: 32767, RX: -1, RY: 1,
		LT: 12, RT: 255,
		Buttons: 0xA55A,
		DPad:    gamepad.HatDownLeft,
	}

	buf, err := in.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, buf, gamepad.StateSize)

	var out gamepad.State
	require.NoError(t, out.UnmarshalBinary(buf))
	assert.Equal(t, in, out)
}

func TestStateUnmarshalRejectsWrongSizes(t *testing.T) {
	for _, size := range []int{0, 12, 14} {
		var s gamepad.State
		assert.Error(t, s.UnmarshalBinary(make([]byte, size)), "size %d must be rejected", size)
	}
}

func TestBuildReport(t *testing.T) {
	cases := []struct {
		name  string
		state gamepad.State
		want  []byte
	}{
		{
			name:  "neutral",
			state: gamepad.State{},
			want: []byte{
				0x01,       // report ID
				0x00, 0x80, // LX 0 -> 32768
				0x00, 0x80, // LY
				0x00, 0x80, // RX
				0x00, 0x80, // RY
				0x00,       // LT
				0x00,       // RT
				0x00, 0x00, // buttons
				0x00, // dpad
			},
		},
		{
			name: "extremes",
			state: gamepad.State{
				LX: -32768, LY: 32767, RX: -32768, RY: 32767,
				LT: 255, RT: 1,
				Buttons: 0x8001,
				DPad:    gamepad.HatUp,
			},
			want: []byte{
				0x01,
				0x00, 0x00, // -32768 -> 0
				0xFF, 0xFF, // 32767 -> 65535
				0x00, 0x00,
				0xFF, 0xFF,
				0xFF,
				0x01,
				0x01, 0x80,
				0x01,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.state.BuildReport()
			require.Len(t, got, gamepad.ReportSize)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	st := gamepad.State{LX: 1234, RT: 99, Buttons: 0x0042}
	assert.Equal(t, st.BuildReport(), st.BuildReport())
}

// Decode -> convert -> pack keeps every report field inside its declared
// bit width for in-range control inputs.
func TestPipelineRangePreservation(t *testing.T) {
	pkts := []protocol.ControlPacket{
		{SteerAngle: 900, Throttle: 1, Brake: 1, Buttons: 0xFFFFFFFF, LeftStickY: 1, RightStickX: -1, RightStickY: 1},
		{SteerAngle: -900, LeftStickY: -1},
		{},
	}

	for _, pkt := range pkts {
		buf, err := pkt.MarshalBinary()
		require.NoError(t, err)

		var decoded protocol.ControlPacket
		require.NoError(t, decoded.UnmarshalBinary(buf))

		report := gamepad.FromPacket(&decoded, gamepad.DefaultMapping()).BuildReport()
		require.Len(t, report, gamepad.ReportSize)
		assert.Equal(t, uint8(gamepad.ReportID), report[0])
		assert.LessOrEqual(t, report[13], uint8(gamepad.HatUpLeft), "hat value out of range")
	}
}
