// Package protocol defines the wire format spoken by Wheeler control
// sources (phone app, test clients) over UDP.
package protocol

import (
	"encoding/binary"
	"io"
	"math"
)

// PacketSize is the exact size of a control datagram. Anything else on the
// wire is not a control packet and must be discarded whole.
const PacketSize = 32

// ControlPacket is a single control sample. The protocol defines no byte
// order; every known sender is little-endian, so the codec fixes LE
// explicitly rather than inheriting the host representation.
//
// Wire layout (32 bytes, little-endian):
//
//	 0-3:  SteerAngle (float32, degrees, nominal ±900)
//	 4-7:  Throttle (float32, 0.0-1.0)
//	 8-11: Brake (float32, 0.0-1.0)
//	12-15: Buttons (uint32 bitmask)
//	16-19: LeftStickX (float32, ±1.0)
//	20-23: LeftStickY (float32, ±1.0)
//	24-27: RightStickX (float32, ±1.0)
//	28-31: RightStickY (float32, ±1.0)
type ControlPacket struct {
	SteerAngle  float32
	Throttle    float32
	Brake       float32
	Buttons     uint32
	LeftStickX  float32
	LeftStickY  float32
	RightStickX float32
	RightStickY float32
}

// MarshalBinary encodes the packet to its 32-byte wire form.
func (p *ControlPacket) MarshalBinary() ([]byte, error) {
	b := make([]byte, PacketSize)
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(p.SteerAngle))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(p.Throttle))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(p.Brake))
	binary.LittleEndian.PutUint32(b[12:16], p.Buttons)
	binary.LittleEndian.PutUint32(b[16:20], math.Float32bits(p.LeftStickX))
	binary.LittleEndian.PutUint32(b[20:24], math.Float32bits(p.LeftStickY))
	binary.LittleEndian.PutUint32(b[24:28], math.Float32bits(p.RightStickX))
	binary.LittleEndian.PutUint32(b[28:32], math.Float32bits(p.RightStickY))
	return b, nil
}

// UnmarshalBinary decodes exactly 32 bytes into the packet. Any other
// length fails without touching the receiver; there is no partial decode.
func (p *ControlPacket) UnmarshalBinary(data []byte) error {
	if len(data) != PacketSize {
		return io.ErrUnexpectedEOF
	}
	p.SteerAngle = math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	p.Throttle = math.Float32frombits(binary.LittleEndian.Uint32(data[4:8]))
	p.Brake = math.Float32frombits(binary.LittleEndian.Uint32(data[8:12]))
	p.Buttons = binary.LittleEndian.Uint32(data[12:16])
	p.LeftStickX = math.Float32frombits(binary.LittleEndian.Uint32(data[16:20]))
	p.LeftStickY = math.Float32frombits(binary.LittleEndian.Uint32(data[20:24]))
	p.RightStickX = math.Float32frombits(binary.LittleEndian.Uint32(data[24:28]))
	p.RightStickY = math.Float32frombits(binary.LittleEndian.Uint32(data[28:32]))
	return nil
}
