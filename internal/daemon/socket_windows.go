//go:build windows

package daemon

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// reuseAddr sets SO_REUSEADDR before bind so a restarted daemon can
// reclaim the control port immediately.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		opErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return opErr
}
