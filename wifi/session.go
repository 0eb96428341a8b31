package wifi

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/espkit/espgw/at"
)

// Session owns one transport to a WiFi module and drives command/response
// exchanges over it.
//
// A Session is synchronous and single-caller: one exchange fully completes
// (write, read until a terminator, decode) before control returns, and no
// two commands may overlap on the same session. There is no cancellation
// mid-exchange; a blocked read is bounded only by the transport's own read
// timeout. Callers that share a session across goroutines must serialize
// access themselves.
type Session struct {
	// transport provides the physical connection to the module
	transport Transport
	// logger receives request/response traffic at debug level
	logger *slog.Logger
	// chunkSize is the size of each blocking read
	chunkSize int
	// closed indicates the session has been shut down
	closed bool
}

// New creates a Session by dialing the module through config.Dialer.
//
// The returned session exclusively owns the transport until Close.
func New(ctx context.Context, config Config) (*Session, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	return &Session{
		transport: transport,
		logger:    config.Logger,
		chunkSize: config.ReadChunkSize,
	}, nil
}

// Close shuts down the session and closes the underlying transport.
// After Close the session cannot be reused.
func (s *Session) Close() error {
	if s.closed {
		return ErrAlreadyClosed
	}
	s.closed = true
	return s.transport.Close()
}

// exchange writes one encoded request and reads the response until a
// terminator phrase resolves the frame. On success it returns the body
// with the trailing "\r\nOK\r\n" stripped. The returned buffer is only
// valid until the next exchange.
func (s *Session) exchange(request []byte) ([]byte, error) {
	if s.closed {
		return nil, ErrAlreadyClosed
	}

	s.logger.Debug("request", "line", trimmed(request))
	if _, err := s.transport.Write(request); err != nil {
		return nil, fmt.Errorf("wifi: write request %q: %w", trimmed(request), err)
	}

	var buffer []byte
	chunk := make([]byte, s.chunkSize)
	for {
		n, err := s.transport.Read(chunk)
		if err != nil {
			return nil, fmt.Errorf("wifi: read response: %w", err)
		}
		if n == 0 {
			// Serial read timeout surfaces as a zero-byte read.
			return nil, &TruncatedError{Partial: buffer}
		}
		buffer = append(buffer, chunk[:n]...)

		// Either terminator may arrive split across reads, so always
		// match against the tail of the whole accumulated buffer.
		if bytes.HasSuffix(buffer, []byte(at.EndPhrase)) {
			body := buffer[:len(buffer)-len(at.EndPhrase)]
			s.logger.Debug("response", "body", trimmed(body))
			return body, nil
		}
		if bytes.HasSuffix(buffer, []byte(at.ErrorPhrase)) {
			return nil, &ProtocolError{Response: string(buffer)}
		}
	}
}
