package wifi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport represents an established, bidirectional byte stream to a
// WiFi module.
//
// A Transport is assumed to be already connected and ready for use. It
// provides the low-level I/O primitives required to send AT commands and
// receive responses. Typical implementations include serial ports, TCP
// connections to emulators, or in-memory fakes used for testing.
//
// The Session relies on the transport's own read timeout to bound a
// blocking Read; a timed-out read is expected to return 0 bytes.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to a WiFi module.
//
// Dialer abstracts how the module connection is created (for example, via
// a serial port, TCP-based emulator, or test double) and is intended to be
// used during session construction only. Once a Transport is obtained, the
// Dialer is no longer needed.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport.
	// It may perform blocking operations and should respect cancellation and
	// deadlines provided by the context. Dial returns an error if the
	// transport cannot be established.
	Dial(ctx context.Context) (Transport, error)
}

// SerialDialer opens a WiFi module over a serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the path to the serial device (e.g. "/dev/ttyUSB0").
	PortName string
	// Mode configures baud rate, parity, data and stop bits.
	// When nil, 115200 8N1 is used.
	Mode *serial.Mode
	// ReadTimeout bounds each blocking read on the port. A timed-out read
	// returns 0 bytes, which the Session surfaces as a truncated response.
	// When zero, 30 seconds is used.
	ReadTimeout time.Duration
}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("wifi: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("wifi: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		mode = &serial.Mode{
			BaudRate: 115200,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", d.PortName, err)
	}

	timeout := d.ReadTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %q: %w", d.PortName, err)
	}

	return port, nil
}
