package driver

import (
	"fmt"
	"sync"

	"github.com/wheeler-host/wheeler/gamepad"
)

// Control interface selectors.
const (
	// SelectorUpdateState takes the packed gamepad state as structure
	// input and produces no output.
	SelectorUpdateState uint32 = 0
	// SelectorGetState takes no input and returns the packed state.
	SelectorGetState uint32 = 1

	selectorCount = 2
)

// UserClient dispatches integer-addressed control calls onto a Device.
// Both sides of every call are size-checked before any state is touched.
type UserClient struct {
	dev *Device
}

// NewUserClient returns a user client bound to dev.
func NewUserClient(dev *Device) *UserClient {
	return &UserClient{dev: dev}
}

// Call invokes the operation addressed by selector. input carries the
// structure input; outputSize is the caller's expected structure output
// size. An unknown selector or a size mismatch on either side fails with
// ErrBadArgument.
func (c *UserClient) Call(selector uint32, input []byte, outputSize int) ([]byte, error) {
	if selector >= selectorCount {
		return nil, fmt.Errorf("%w: selector %d", ErrBadArgument, selector)
	}
	switch selector {
	case SelectorUpdateState:
		if len(input) != gamepad.StateSize || outputSize != 0 {
			return nil, fmt.Errorf("%w: update state wants %d byte input, no output", ErrBadArgument, gamepad.StateSize)
		}
		return nil, c.dev.UpdateState(input)
	case SelectorGetState:
		if len(input) != 0 || outputSize != gamepad.StateSize {
			return nil, fmt.Errorf("%w: get state wants no input, %d byte output", ErrBadArgument, gamepad.StateSize)
		}
		return c.dev.GetState(), nil
	}
	return nil, ErrBadArgument
}

// Conn is a user-space handle to the driver control interface, the
// counterpart of the host's service-open facility. Implementations must
// be safe for use from a single goroutine at a time.
type Conn interface {
	Call(selector uint32, input []byte, outputSize int) ([]byte, error)
	Close() error
}

// Open connects to a running device in-process. It stands in for service
// matching against the loaded driver; tests and the loopback daemon mode
// use it directly.
func Open(dev *Device) Conn {
	return &localConn{client: NewUserClient(dev)}
}

type localConn struct {
	mu     sync.Mutex
	client *UserClient
	closed bool
}

func (c *localConn) Call(selector uint32, input []byte, outputSize int) ([]byte, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	return c.client.Call(selector, input, outputSize)
}

func (c *localConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}
