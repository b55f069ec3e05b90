// Package minidrv implements the Windows-variant report path: a HID
// minidriver surface where reads from the HID class driver pend on a
// manual queue until user space submits an input report through a vendor
// control code. Reports are the generic 64-byte vendor layout rather than
// the typed gamepad report.
package minidrv

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/wheeler-host/wheeler/hid"
)

// attributesSize is the packed size of the device attributes block:
// uint32 size + three uint16 identifiers + two bytes of tail padding.
const attributesSize = 12

// Dispatcher handles device-control requests for the vendor-report
// device. Descriptor and attribute requests complete synchronously; read
// requests pend on the internal queue until a submit-input call supplies
// data.
type Dispatcher struct {
	attrs  hid.Attributes
	reads  queue
	logger *slog.Logger
}

// NewDispatcher returns a dispatcher advertising the vendor-variant
// identifiers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{attrs: hid.VendorAttributes, logger: logger}
}

// Control dispatches one device-control request. input is the request's
// structure input, outSize the caller's output buffer capacity. A non-nil
// pending result means the request was queued (read report) and will be
// completed through SubmitInput; output and err are meaningful only when
// pending is nil.
func (d *Dispatcher) Control(code uint32, input []byte, outSize int) (output []byte, pending *Request, err error) {
	switch code {
	case IoctlHidGetDeviceDescriptor:
		out, err := d.deviceDescriptor(outSize)
		return out, nil, err
	case IoctlHidGetReportDescriptor:
		out, err := copySized(hid.VendorReportDescriptor, outSize)
		return out, nil, err
	case IoctlHidGetDeviceAttributes:
		out, err := d.attributes(outSize)
		return out, nil, err
	case IoctlHidReadReport:
		req := newRequest()
		d.reads.push(req)
		return nil, req, nil
	case IoctlHidWriteReport, IoctlHidSetFeature:
		// Accepted and discarded; the device has no writable state yet.
		return nil, nil, nil
	case IoctlHidGetFeature:
		return make([]byte, min(outSize, hid.VendorReportSize)), nil, nil
	case IoctlSubmitInput:
		return nil, nil, d.SubmitInput(input)
	default:
		return nil, nil, fmt.Errorf("%w: control code 0x%08x", ErrNotSupported, code)
	}
}

// SubmitInput accepts a 64-byte input report from user space and
// completes the head-of-queue read request with it. The payload must
// carry report ID 1. If no read is pending the report is dropped; there
// is no buffering beyond the in-flight submission.
func (d *Dispatcher) SubmitInput(report []byte) error {
	if len(report) != hid.VendorReportSize || report[0] != hid.VendorReportInput {
		return fmt.Errorf("%w: want %d byte report with ID %d", ErrInvalidParameter, hid.VendorReportSize, hid.VendorReportInput)
	}
	req := d.reads.pop()
	if req == nil {
		d.logger.Debug("input report dropped, no pending read")
		return nil
	}
	buf := make([]byte, len(report))
	copy(buf, report)
	req.complete(buf)
	return nil
}

// PendingReads reports how many read requests are queued.
func (d *Dispatcher) PendingReads() int {
	return d.reads.len()
}

func (d *Dispatcher) deviceDescriptor(outSize int) ([]byte, error) {
	desc := hid.Descriptor{
		BcdHID:       0x0100,
		ReportLength: uint16(len(hid.VendorReportDescriptor)),
	}
	buf, err := desc.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return copySized(buf, outSize)
}

func (d *Dispatcher) attributes(outSize int) ([]byte, error) {
	buf := make([]byte, attributesSize)
	binary.LittleEndian.PutUint32(buf[0:4], attributesSize)
	binary.LittleEndian.PutUint16(buf[4:6], d.attrs.VendorID)
	binary.LittleEndian.PutUint16(buf[6:8], d.attrs.ProductID)
	binary.LittleEndian.PutUint16(buf[8:10], d.attrs.VersionNumber)
	return copySized(buf, outSize)
}

func copySized(src []byte, outSize int) ([]byte, error) {
	if outSize < len(src) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, len(src), outSize)
	}
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}
