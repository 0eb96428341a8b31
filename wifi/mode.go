package wifi

import (
	"bytes"
	"fmt"
	"io"

	"github.com/espkit/espgw/at"
)

// Mode is the operating mode of the module. The three modes are mutually
// exclusive and appear on the wire as the ASCII digits '1' through '3'.
type Mode uint8

const (
	// ModeStation joins existing access points as a client.
	ModeStation Mode = 1
	// ModeSoftAP runs the module's own access point.
	ModeSoftAP Mode = 2
	// ModeStationSoftAP runs both at once.
	ModeStationSoftAP Mode = 3
)

func (m Mode) String() string {
	switch m {
	case ModeStation:
		return "station"
	case ModeSoftAP:
		return "softap"
	case ModeStationSoftAP:
		return "station+softap"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

func (m Mode) valid() bool {
	return m >= ModeStation && m <= ModeStationSoftAP
}

// GetMode queries the current operating mode.
type GetMode struct{}

func (GetMode) Encode(w io.Writer) error {
	_, err := io.WriteString(w, "AT+CWMODE?"+at.CRLF)
	return err
}

// Decode extracts the mode digit.
//
// The body is the echoed command followed by "+CWMODE:<digit>", so the
// digit is the byte after the first ':'.
func (GetMode) Decode(body []byte) (Mode, error) {
	i := bytes.IndexByte(body, ':')
	if i < 0 {
		return 0, &DecodeError{Reason: fmt.Sprintf("no ':' in mode response %q", body)}
	}
	if i+1 >= len(body) {
		return 0, &DecodeError{Reason: fmt.Sprintf("mode response %q ends at ':'", body)}
	}

	switch b := body[i+1]; b {
	case '1':
		return ModeStation, nil
	case '2':
		return ModeSoftAP, nil
	case '3':
		return ModeStationSoftAP, nil
	default:
		return 0, &DecodeError{Reason: fmt.Sprintf("unknown wifi mode %q, expected '1', '2' or '3'", b)}
	}
}

// SetMode switches the module to the given operating mode.
type SetMode struct {
	Mode Mode
}

func (c SetMode) Encode(w io.Writer) error {
	if !c.Mode.valid() {
		return fmt.Errorf("invalid wifi mode %d", uint8(c.Mode))
	}
	_, err := fmt.Fprintf(w, "AT+CWMODE=%d%s", uint8(c.Mode), at.CRLF)
	return err
}

// Decode ignores the acknowledged body.
func (SetMode) Decode(body []byte) (struct{}, error) {
	return struct{}{}, nil
}
