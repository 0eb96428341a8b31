package wifi

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDialer is returned when a Session is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the module.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrAlreadyClosed is returned when Close is called on a Session that has
	// already been closed, or when a command is sent after Close.
	ErrAlreadyClosed = errors.New("session already closed")

	// ErrCommandFailed is returned when the module answered a command with
	// the ERROR phrase instead of OK.
	ErrCommandFailed = errors.New("module reported ERROR")

	// ErrMalformedResponse is returned when a response was framed correctly
	// but its body could not be decoded: a missing delimiter or terminator,
	// invalid text encoding, an unparseable numeric field, or an
	// unrecognized enumeration value.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrTruncatedResponse is returned when the transport stopped producing
	// bytes before either response terminator was seen.
	//
	// With a serial transport this typically means the read timeout expired.
	ErrTruncatedResponse = errors.New("truncated response")
)

// ProtocolError reports that the module rejected a command.
type ProtocolError struct {
	Response string // Full accumulated response text, ERROR phrase included
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wifi: command failed: %q", e.Response)
}

func (e *ProtocolError) Unwrap() error {
	return ErrCommandFailed
}

// DecodeError provides detailed information about a response decoding error.
type DecodeError struct {
	Reason string // Human-readable explanation naming the offending input
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wifi: decode response: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrMalformedResponse
}

// TruncatedError reports a response that ended before a terminator arrived.
type TruncatedError struct {
	Partial []byte // Whatever was accumulated before the transport dried up
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("wifi: truncated response: %q", e.Partial)
}

func (e *TruncatedError) Unwrap() error {
	return ErrTruncatedResponse
}
