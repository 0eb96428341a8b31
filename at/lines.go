package at

import (
	"bufio"
	"bytes"
)

// Splitter is used for tokenizing AT command responses. It uses the
// signature of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// It splits the input by CRLF line endings. The command's own echo, which
// the module repeats as the first line of every response, is returned as a
// regular token; parsers that need to skip it do so themselves.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token, so a
// response body whose last line carries no trailing CRLF still yields
// that line.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.Index(data, []byte(CRLF)); i >= 0 {
		return i + len(CRLF), data[0:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter
