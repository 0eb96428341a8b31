package wifi

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/espkit/espgw/at"
)

// Encryption is the encryption scheme code (ECN) a network reports.
//
// The five codes below are the ones current firmware documents. Newer
// firmware revisions introduce codes this package does not know about;
// those are carried through as-is rather than rejected, so a scan never
// fails over an unrecognized scheme. Use IsKnown to tell the two apart.
type Encryption uint8

const (
	EncryptionOpen Encryption = iota
	EncryptionWEP
	EncryptionWPAPSK
	EncryptionWPA2PSK
	EncryptionWPAWPA2PSK
)

// IsKnown reports whether the code is one of the documented schemes.
func (e Encryption) IsKnown() bool {
	return e <= EncryptionWPAWPA2PSK
}

func (e Encryption) String() string {
	switch e {
	case EncryptionOpen:
		return "open"
	case EncryptionWEP:
		return "wep"
	case EncryptionWPAPSK:
		return "wpa-psk"
	case EncryptionWPA2PSK:
		return "wpa2-psk"
	case EncryptionWPAWPA2PSK:
		return "wpa/wpa2-psk"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(e))
	}
}

// AccessPoint is one network found by a scan.
type AccessPoint struct {
	Encryption Encryption
	SSID       string // May be empty for hidden networks
	RSSI       int16  // Signal strength in dBm
	MAC        string // Hardware address in colon-hex form
	Channel    uint8
}

// recordPrefix starts every scan record line; anything else in the scan
// body (the echoed command, firmware chatter) is skipped.
const recordPrefix = "+CWLAP:("

// ListAPs scans for access points in range.
//
// Note: the module must be in ModeStation. Check with GetMode and switch
// with SetMode first.
type ListAPs struct{}

func (ListAPs) Encode(w io.Writer) error {
	_, err := io.WriteString(w, "AT+CWLAP"+at.CRLF)
	return err
}

// Decode parses the scan record lines.
//
// Each record is "+CWLAP:(<ecn>,"<ssid>","<rssi>","<mac>",<channel>)" with
// the fields comma-delimited and the last one closed by ')'. Delimiters
// inside quoted values do not split fields. Lines without the record
// prefix are silently skipped; a kept line that is missing a delimiter or
// carries an unparseable number is a decode error.
func (ListAPs) Decode(body []byte) ([]AccessPoint, error) {
	if !utf8.Valid(body) {
		return nil, &DecodeError{Reason: fmt.Sprintf("scan response is not valid UTF-8: %q", body)}
	}

	var result []AccessPoint
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Split(at.Splitter)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, recordPrefix) {
			continue
		}
		record, err := parseAccessPoint(line[len(recordPrefix):])
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}

	return result, nil
}

// parseAccessPoint decodes one record with the leading "+CWLAP:(" already
// stripped.
func parseAccessPoint(line string) (AccessPoint, error) {
	fields := line
	next := func(delim byte) (string, error) {
		field, rest, ok := at.Field(fields, delim)
		if !ok {
			return "", &DecodeError{Reason: fmt.Sprintf("no %q delimiter in scan record %q", delim, line)}
		}
		fields = rest
		return field, nil
	}

	ecnField, err := next(',')
	if err != nil {
		return AccessPoint{}, err
	}
	ssid, err := next(',')
	if err != nil {
		return AccessPoint{}, err
	}
	rssiField, err := next(',')
	if err != nil {
		return AccessPoint{}, err
	}
	mac, err := next(',')
	if err != nil {
		return AccessPoint{}, err
	}
	channelField, err := next(')')
	if err != nil {
		return AccessPoint{}, err
	}

	ecn, err := strconv.ParseUint(ecnField, 10, 8)
	if err != nil {
		return AccessPoint{}, &DecodeError{Reason: fmt.Sprintf("invalid encryption code %q: %v", ecnField, err)}
	}
	rssi, err := strconv.ParseInt(rssiField, 10, 16)
	if err != nil {
		return AccessPoint{}, &DecodeError{Reason: fmt.Sprintf("invalid RSSI %q: %v", rssiField, err)}
	}
	channel, err := strconv.ParseUint(channelField, 10, 8)
	if err != nil {
		return AccessPoint{}, &DecodeError{Reason: fmt.Sprintf("invalid channel %q: %v", channelField, err)}
	}

	return AccessPoint{
		Encryption: Encryption(ecn),
		SSID:       ssid,
		RSSI:       int16(rssi),
		MAC:        mac,
		Channel:    uint8(channel),
	}, nil
}

// Join associates the module with an access point.
type Join struct {
	SSID     string
	Password string
}

func (c Join) Encode(w io.Writer) error {
	_, err := fmt.Fprintf(w, "AT+CWJAP=%q,%q%s", c.SSID, c.Password, at.CRLF)
	return err
}

// Decode ignores the acknowledged body.
func (Join) Decode(body []byte) (struct{}, error) {
	return struct{}{}, nil
}

// noAssociation is what the module prints instead of a record when it is
// not connected to anything.
const noAssociation = "No AP"

// CurrentAP queries the currently associated access point.
type CurrentAP struct{}

func (CurrentAP) Encode(w io.Writer) error {
	_, err := io.WriteString(w, "AT+CWJAP?"+at.CRLF)
	return err
}

// Decode returns the SSID of the current association, or nil when the
// module is not connected.
//
// The body is the echoed command followed by either "No AP" or
// `+CWJAP:"<ssid>","<mac>",...`; the SSID sits between the first ':' and
// the first ',' of that second line.
func (CurrentAP) Decode(body []byte) (*string, error) {
	if !utf8.Valid(body) {
		return nil, &DecodeError{Reason: fmt.Sprintf("association response is not valid UTF-8: %q", body)}
	}

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Split(at.Splitter)
	if !scanner.Scan() || !scanner.Scan() {
		return nil, &DecodeError{Reason: fmt.Sprintf("association response %q has no second line", body)}
	}
	line := strings.TrimSpace(scanner.Text())

	if line == noAssociation {
		return nil, nil
	}

	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("no ':' in association record %q", line)}
	}
	comma := strings.IndexByte(line, ',')
	if comma < 0 {
		return nil, &DecodeError{Reason: fmt.Sprintf("no ',' in association record %q", line)}
	}
	if comma < colon {
		return nil, &DecodeError{Reason: fmt.Sprintf("',' precedes ':' in association record %q", line)}
	}

	name := at.Unquote(line[colon+1 : comma])
	return &name, nil
}
