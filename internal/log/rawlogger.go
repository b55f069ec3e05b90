package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger handles raw packet/report logging with optional file output.
type RawLogger interface {
	Log(dir Direction, data []byte)
}

// Direction labels which hop of the bridge a raw dump belongs to.
type Direction int

const (
	// DirNetToDriver is a control datagram arriving from the network.
	DirNetToDriver Direction = iota
	// DirDriverToHID is an input report handed to the host input stack.
	DirDriverToHID
)

func (d Direction) String() string {
	if d == DirNetToDriver {
		return "NET->DRV"
	}
	return "DRV->HID"
}

// rawLogger implements RawLogger with thread-safe output.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits a single-line raw dump with timestamp and hex bytes.
func (r *rawLogger) Log(dir Direction, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	var hexbuf bytes.Buffer
	const hexdigits = "0123456789abcdef"
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %d bytes, hex: %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		len(data),
		hexbuf.String())

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
