package wifi

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/espkit/espgw/at"
)

var testBlob = []byte("AT" + at.CRLF)

// Test checks that the AT command system works: the module echoes the
// request back verbatim.
type Test struct{}

func (Test) Encode(w io.Writer) error {
	_, err := w.Write(testBlob)
	return err
}

// Decode reports whether the response body is byte-for-byte the request.
func (Test) Decode(body []byte) (bool, error) {
	return bytes.Equal(body, testBlob), nil
}

// Restart resets the module.
//
// Note: the serial connection is often reset along with the module. To be
// safe, re-dial after sending this command.
type Restart struct{}

func (Restart) Encode(w io.Writer) error {
	_, err := io.WriteString(w, "AT+RST"+at.CRLF)
	return err
}

func (Restart) Decode(body []byte) (struct{}, error) {
	return struct{}{}, nil
}

// Disconnect drops the current access point association.
type Disconnect struct{}

func (Disconnect) Encode(w io.Writer) error {
	_, err := io.WriteString(w, "AT+CWQAP"+at.CRLF)
	return err
}

func (Disconnect) Decode(body []byte) (struct{}, error) {
	return struct{}{}, nil
}

// GetVersion reads the firmware version string.
type GetVersion struct{}

func (GetVersion) Encode(w io.Writer) error {
	_, err := io.WriteString(w, "AT+GMR"+at.CRLF)
	return err
}

// Decode drops the echoed command line and returns the rest of the body
// with surrounding whitespace trimmed.
func (GetVersion) Decode(body []byte) (string, error) {
	if !utf8.Valid(body) {
		return "", &DecodeError{Reason: fmt.Sprintf("version response is not valid UTF-8: %q", body)}
	}
	i := bytes.IndexByte(body, '\n')
	if i < 0 {
		return "", &DecodeError{Reason: fmt.Sprintf("no line terminator in version response %q", body)}
	}
	return strings.TrimSpace(string(body[i+1:])), nil
}
