// Package hid carries the static HID descriptor data for the Wheeler
// virtual gamepad: the report descriptor consumed by the host input
// subsystem and the device attributes reported alongside it.
package hid

import "encoding/binary"

// Attributes identify the virtual device to the host.
type Attributes struct {
	VendorID      uint16
	ProductID     uint16
	VersionNumber uint16
}

// GamepadAttributes are the identifiers of the primary (gamepad report)
// implementation.
var GamepadAttributes = Attributes{
	VendorID:      0x1234,
	ProductID:     0x5678,
	VersionNumber: 0x0100,
}

// GamepadReportDescriptor declares one application collection with report
// ID 1: two 16-bit-axis pointer collections (left and right stick), two
// 8-bit trigger axes, 16 button bits and a 4-bit hat switch with 4 bits of
// padding. The packed input report is gamepad.ReportSize bytes.
var GamepadReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x05, // Usage (Game Pad)
	0xA1, 0x01, // Collection (Application)
	0x85, 0x01, //   Report ID (1)

	// Left stick: X, Y as unsigned 16-bit axes
	0x09, 0x01, //   Usage (Pointer)
	0xA1, 0x00, //   Collection (Physical)
	0x09, 0x30, //     Usage (X)
	0x09, 0x31, //     Usage (Y)
	0x15, 0x00, //     Logical Minimum (0)
	0x26, 0xFF, 0xFF, // Logical Maximum (65535)
	0x35, 0x00, //     Physical Minimum (0)
	0x46, 0xFF, 0xFF, // Physical Maximum (65535)
	0x75, 0x10, //     Report Size (16)
	0x95, 0x02, //     Report Count (2)
	0x81, 0x02, //     Input (Data,Var,Abs)
	0xC0, //          End Collection

	// Right stick: Rx, Ry
	0x09, 0x01, //   Usage (Pointer)
	0xA1, 0x00, //   Collection (Physical)
	0x09, 0x33, //     Usage (Rx)
	0x09, 0x34, //     Usage (Ry)
	0x15, 0x00, //     Logical Minimum (0)
	0x26, 0xFF, 0xFF, // Logical Maximum (65535)
	0x35, 0x00, //     Physical Minimum (0)
	0x46, 0xFF, 0xFF, // Physical Maximum (65535)
	0x75, 0x10, //     Report Size (16)
	0x95, 0x02, //     Report Count (2)
	0x81, 0x02, //     Input (Data,Var,Abs)
	0xC0, //          End Collection

	// Triggers: Z (left), Rz (right)
	0x09, 0x32, //   Usage (Z)
	0x09, 0x35, //   Usage (Rz)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0xFF, //   Logical Maximum (255)
	0x35, 0x00, //   Physical Minimum (0)
	0x45, 0xFF, //   Physical Maximum (255)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x02, //   Report Count (2)
	0x81, 0x02, //   Input (Data,Var,Abs)

	// 16 buttons
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x01, //   Usage Minimum (1)
	0x29, 0x10, //   Usage Maximum (16)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x10, //   Report Count (16)
	0x81, 0x02, //   Input (Data,Var,Abs)

	// Hat switch, 4 bits + 4 bits padding
	0x05, 0x01, //   Usage Page (Generic Desktop)
	0x09, 0x39, //   Usage (Hat switch)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x07, //   Logical Maximum (7)
	0x35, 0x00, //   Physical Minimum (0)
	0x46, 0x3B, 0x01, // Physical Maximum (315)
	0x65, 0x14, //   Unit (Degrees)
	0x75, 0x04, //   Report Size (4)
	0x95, 0x01, //   Report Count (1)
	0x81, 0x42, //   Input (Data,Var,Abs,Null State)
	0x75, 0x04, //   Report Size (4)
	0x95, 0x01, //   Report Count (1)
	0x81, 0x01, //   Input (Const)

	0xC0, // End Collection
}

// Descriptor is the class descriptor (type 0x21) a HID transport hands out
// ahead of the report descriptor.
//
// Packed layout (9 bytes, little-endian):
//
//	0:   bLength (9)
//	1:   bDescriptorType (0x21)
//	2-3: bcdHID
//	4:   bCountry
//	5:   bNumDescriptors
//	6:   bReportType (0x22)
//	7-8: wReportLength
type Descriptor struct {
	BcdHID       uint16
	Country      uint8
	ReportLength uint16
}

// DescriptorSize is the packed size of Descriptor.
const DescriptorSize = 9

const (
	descTypeHID       = 0x21
	descTypeHIDReport = 0x22
)

// MarshalBinary encodes the descriptor to its 9-byte packed form.
func (d *Descriptor) MarshalBinary() ([]byte, error) {
	b := make([]byte, DescriptorSize)
	b[0] = DescriptorSize
	b[1] = descTypeHID
	binary.LittleEndian.PutUint16(b[2:4], d.BcdHID)
	b[4] = d.Country
	b[5] = 0x01 // one class descriptor follows
	b[6] = descTypeHIDReport
	binary.LittleEndian.PutUint16(b[7:9], d.ReportLength)
	return b, nil
}
