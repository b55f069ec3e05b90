// Package gamepad holds the canonical state of the Wheeler virtual gamepad
// and its translations: from the network control packet in, to the HID
// input report out.
package gamepad

import (
	"encoding/binary"
	"io"

	"github.com/wheeler-host/wheeler/protocol"
)

// StateSize is the packed size of State: 4 x int16 + 2 x uint8 + uint16 + uint8.
const StateSize = 13

// ReportSize is the size of the packed input report for report ID 1.
const ReportSize = 14

// ReportID identifies the gamepad input report.
const ReportID = 1

// State is the canonical gamepad state. Every field stays inside its
// declared range at all times; producers clamp before assignment. The
// struct is replaced whole, never field-by-field.
//
// Packed layout (13 bytes, little-endian):
//
//	 0-1:  LX (int16, -32768..32767)
//	 2-3:  LY (int16)
//	 4-5:  RX (int16)
//	 6-7:  RY (int16)
//	 8:    LT (uint8, 0..255)
//	 9:    RT (uint8)
//	10-11: Buttons (uint16 bitmask)
//	12:    DPad (uint8, 0=center, 1-8 compass)
type State struct {
	LX, LY  int16
	RX, RY  int16
	LT, RT  uint8
	Buttons uint16
	DPad    uint8
}

// MarshalBinary encodes the state to its 13-byte packed form. The value
// receiver keeps it callable on unaddressed results such as FromPacket's.
func (s State) MarshalBinary() ([]byte, error) {
	b := make([]byte, StateSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(s.LX))
	binary.LittleEndian.PutUint16(b[2:4], uint16(s.LY))
	binary.LittleEndian.PutUint16(b[4:6], uint16(s.RX))
	binary.LittleEndian.PutUint16(b[6:8], uint16(s.RY))
	b[8] = s.LT
	b[9] = s.RT
	binary.LittleEndian.PutUint16(b[10:12], s.Buttons)
	b[12] = s.DPad
	return b, nil
}

// UnmarshalBinary decodes exactly 13 bytes into the state.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return io.ErrUnexpectedEOF
	}
	s.LX = int16(binary.LittleEndian.Uint16(data[0:2]))
	s.LY = int16(binary.LittleEndian.Uint16(data[2:4]))
	s.RX = int16(binary.LittleEndian.Uint16(data[4:6]))
	s.RY = int16(binary.LittleEndian.Uint16(data[6:8]))
	s.LT = data[8]
	s.RT = data[9]
	s.Buttons = binary.LittleEndian.Uint16(data[10:12])
	s.DPad = data[12]
	return nil
}

// BuildReport encodes the state into the 14-byte HID input report for
// report ID 1. Signed stick values shift into the unsigned 0-65535 domain
// by adding 32768; the signed range covers the target exactly, so no
// clamping is needed.
//
// Layout (indices in the returned slice):
//
//	 0:    0x01            - Report ID
//	 1-2:  LX + 32768 (little-endian uint16)
//	 3-4:  LY + 32768
//	 5-6:  RX + 32768
//	 7-8:  RY + 32768
//	 9:    LT (0-255)
//	10:    RT (0-255)
//	11-12: Buttons (little-endian uint16)
//	13:    DPad (0=center, 1-8 compass)
func (s State) BuildReport() []byte {
	b := make([]byte, ReportSize)
	b[0] = ReportID
	binary.LittleEndian.PutUint16(b[1:3], uint16(s.LX)+32768)
	binary.LittleEndian.PutUint16(b[3:5], uint16(s.LY)+32768)
	binary.LittleEndian.PutUint16(b[5:7], uint16(s.RX)+32768)
	binary.LittleEndian.PutUint16(b[7:9], uint16(s.RY)+32768)
	b[9] = s.LT
	b[10] = s.RT
	binary.LittleEndian.PutUint16(b[11:13], s.Buttons)
	b[13] = s.DPad
	return b
}

// Mapping controls how control packets translate into gamepad state.
type Mapping struct {
	// MaxSteerAngle is the full-lock angle in degrees; ±MaxSteerAngle maps
	// to full left-stick deflection.
	MaxSteerAngle float64
	// Deadzone zeroes stick axes whose magnitude is below it (0..1).
	Deadzone float64
	// InvertSteering flips the sign of the steering axis.
	InvertSteering bool
}

// DefaultMapping matches the original Wheeler translation: 900 degree
// lock-to-lock, no deadzone, no inversion.
func DefaultMapping() Mapping {
	return Mapping{MaxSteerAngle: MaxSteerAngle}
}

// FromPacket translates one control packet into a complete gamepad state.
// All inputs are clamped to their documented ranges before scaling, so the
// State range invariant holds even for hostile packets. The hat is not
// carried by the wire protocol and is always centered.
func FromPacket(p *protocol.ControlPacket, m Mapping) State {
	maxAngle := m.MaxSteerAngle
	if maxAngle <= 0 {
		maxAngle = MaxSteerAngle
	}
	steer := clamp(float64(p.SteerAngle)/maxAngle, -1, 1)
	if m.InvertSteering {
		steer = -steer
	}

	return State{
		LX:      axis(steer, 0),
		LY:      axis(clamp(float64(p.LeftStickY), -1, 1), m.Deadzone),
		RX:      axis(clamp(float64(p.RightStickX), -1, 1), m.Deadzone),
		RY:      axis(clamp(float64(p.RightStickY), -1, 1), m.Deadzone),
		LT:      trigger(float64(p.Brake)),
		RT:      trigger(float64(p.Throttle)),
		Buttons: uint16(p.Buttons & 0xffff),
		DPad:    HatCenter,
	}
}

// axis scales a normalized value to the signed 16-bit stick range,
// truncating toward zero like the original bridge did.
func axis(v, deadzone float64) int16 {
	if v > -deadzone && v < deadzone {
		return 0
	}
	return int16(v * 32767)
}

func trigger(v float64) uint8 {
	return uint8(clamp(v, 0, 1) * 255)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
