package vm

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// Terminal adapts the controlling terminal to the LC-3's keyboard
// model: unbuffered, unechoed single-keystroke input, restored on
// Disable. It implements Keyboard.
type Terminal struct {
	in       *os.File
	fd       int
	isTTY    bool
	original unix.Termios
}

// NewTerminal binds a Terminal to stdin.
func NewTerminal() *Terminal {
	return NewTerminalFile(os.Stdin)
}

// NewTerminalFile binds a Terminal to an arbitrary file, so tests can
// stand in a pipe for the controlling terminal. Ready/ReadByte work
// against any readable file descriptor; Enable/Disable are no-ops
// unless in is an actual TTY.
func NewTerminalFile(in *os.File) *Terminal {
	fd := int(in.Fd())
	return &Terminal{in: in, fd: fd, isTTY: xterm.IsTerminal(fd)}
}

// Enable captures the current terminal settings and switches to
// canonical-off, echo-off mode. If stdin is not a terminal (a pipe or
// redirected file), Enable does nothing; Ready and ReadByte still
// poll and read that file as it is.
func (t *Terminal) Enable() error {
	if !t.isTTY {
		return nil
	}
	if err := termios.Tcgetattr(uintptr(t.fd), &t.original); err != nil {
		return err
	}
	raw := t.original
	raw.Lflag &^= unix.ICANON | unix.ECHO
	return termios.Tcsetattr(uintptr(t.fd), termios.TCSANOW, &raw)
}

// Disable restores the terminal settings captured by Enable. It is a
// no-op if Enable never put the terminal in raw mode.
func (t *Terminal) Disable() error {
	if !t.isTTY {
		return nil
	}
	return termios.Tcsetattr(uintptr(t.fd), termios.TCSANOW, &t.original)
}

// Ready performs a zero-timeout readiness poll of the bound file: it
// reports whether at least one byte is available to read, without
// consuming it and without blocking.
func (t *Terminal) Ready() bool {
	var fds unix.FdSet
	fdSet(&fds, t.fd)
	timeout := unix.Timeval{Sec: 0, Usec: 0}
	n, err := unix.Select(t.fd+1, &fds, nil, nil, &timeout)
	return err == nil && n > 0
}

// fdSet marks fd as a member of an otherwise-empty unix.FdSet.
func fdSet(fds *unix.FdSet, fd int) {
	fds.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

// ReadByte blocks until one byte is available on the bound file and
// returns it.
func (t *Terminal) ReadByte() byte {
	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			return buf[0]
		}
		if err != nil {
			return 0
		}
	}
}
