package wifi

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/espkit/espgw/at"
)

// Command is one request to the WiFi module, parameterized by the type of
// its decoded result.
//
// Encode writes the complete request, including the trailing CRLF; a
// request without it is a programmer error that Send rejects before
// anything reaches the wire. Decode receives the response body with the
// trailing "\r\nOK\r\n" already stripped by the Session. It must not
// mutate or retain the buffer: any result that outlives the call has to
// be a copy.
type Command[T any] interface {
	Encode(w io.Writer) error
	Decode(body []byte) (T, error)
}

// Send performs one complete command/response exchange on the session and
// decodes the framed response body into the command's result type.
//
// Failures are distinguishable with errors.Is / errors.As: an ERROR reply
// from the module is a *ProtocolError, a body the command cannot make
// sense of is a *DecodeError, and a transport that stops producing bytes
// mid-response is a *TruncatedError. Transport read/write errors are
// wrapped and propagated unchanged otherwise.
func Send[T any](s *Session, cmd Command[T]) (T, error) {
	var zero T

	var request bytes.Buffer
	if err := cmd.Encode(&request); err != nil {
		return zero, fmt.Errorf("wifi: encode %T: %w", cmd, err)
	}
	if !bytes.HasSuffix(request.Bytes(), []byte(at.CRLF)) {
		return zero, fmt.Errorf("wifi: encode %T: request %q does not end with CRLF", cmd, request.String())
	}

	body, err := s.exchange(request.Bytes())
	if err != nil {
		return zero, err
	}

	result, err := cmd.Decode(body)
	if err != nil {
		return zero, err
	}
	return result, nil
}

// trimmed renders wire bytes for logging.
func trimmed(b []byte) string {
	return strings.TrimSpace(string(b))
}
